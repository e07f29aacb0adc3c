package fontkit

import "sync"

// GlyphID identifies a glyph inside a face.
type GlyphID uint16

// Rect is a glyph bounding box in font units, y axis pointing up.
type Rect struct {
	XMin, YMin, XMax, YMax int16
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() int16 { return r.XMax - r.XMin }

// Height returns the vertical extent of the box.
func (r Rect) Height() int16 { return r.YMax - r.YMin }

// Well-known OpenType name table identifiers.
const (
	NameIDFamily               = 1
	NameIDSubfamily            = 2
	NameIDFull                 = 4
	NameIDPostScript           = 6
	NameIDTypographicFamily    = 16
	NameIDTypographicSubfamily = 17
)

// Name is a single decoded name table record.
type Name struct {
	ID         uint16
	Text       string
	LanguageID uint16
}

// VariationAxis describes one fvar axis of a variable font.
type VariationAxis struct {
	Tag     string
	Min     float32
	Default float32
	Max     float32
}

// NamedInstance is one fvar named instance: per-axis coordinates plus the
// name IDs resolved against the face's name table.
type NamedInstance struct {
	// Coords holds one value per axis, in fvar axis order.
	Coords []float32

	// SubfamilyNameID names the instance style ("Bold Condensed").
	SubfamilyNameID uint16

	// PostScriptNameID names the instance postscript name, or 0 if absent.
	PostScriptNameID uint16
}

// KernSubtable is one horizontal kerning subtable. Lookups are in font
// units; last subtable that defines a pair wins.
type KernSubtable interface {
	// Horizontal reports whether the subtable applies to horizontal text.
	Horizontal() bool

	// Variable reports whether the subtable carries variation-dependent
	// values. Variable subtables are skipped during shaping.
	Variable() bool

	// Lookup returns the kerning adjustment between two glyphs.
	Lookup(left, right GlyphID) (int16, bool)
}

// FaceHandle is a parsed face opened on a font buffer. Handles are cheap
// and short-lived: one is created per query result and discarded with it.
//
// All metric values are in font units.
type FaceHandle interface {
	// GlyphIndex maps a rune to its glyph, reporting false for .notdef.
	GlyphIndex(r rune) (GlyphID, bool)

	// GlyphAdvance returns the horizontal advance of a glyph.
	GlyphAdvance(g GlyphID) (uint16, bool)

	// GlyphBoundingBox returns the bounding box of a glyph. ok is false
	// for glyphs without outlines (spaces).
	GlyphBoundingBox(g GlyphID) (Rect, bool)

	// GlyphSideBearing returns the left side bearing of a glyph.
	GlyphSideBearing(g GlyphID) int16

	// KernSubtables returns the face's horizontal kerning subtables, in
	// table order.
	KernSubtables() []KernSubtable

	// Ascender is the typographic ascender, positive up.
	Ascender() int16

	// Descender is the typographic descender, negative below baseline.
	Descender() int16

	// LineGap is the recommended extra leading.
	LineGap() int16

	// UnitsPerEm is the design grid size, typically 1000 or 2048.
	UnitsPerEm() uint16

	// Names returns the decoded name table records.
	Names() []Name

	// Axes returns the fvar axes, empty for static fonts.
	Axes() []VariationAxis

	// Instances returns the fvar named instances, empty for static fonts.
	Instances() []NamedInstance

	// Aspect returns the face-level weight, width class and italic flag
	// as declared by the font (OS/2 or equivalent).
	Aspect() (weight uint16, stretch uint16, italic bool)

	// SetVariation pins one variation axis for subsequent metric queries.
	// Reports false if the backend or the face does not support the axis.
	SetVariation(axis string, value float32) bool
}

// Parser is a font parsing backend. It abstracts the underlying font
// library so it can be swapped or extended (collections, test fakes).
//
// The default implementation uses github.com/go-text/typesetting.
type Parser interface {
	// NumFaces returns how many faces the buffer holds (1 for plain
	// TTF/OTF, N for TTC collections).
	NumFaces(data []byte) (int, error)

	// Parse opens face index within the buffer.
	Parse(data []byte, index int) (FaceHandle, error)
}

// defaultParserName is the name of the default parser.
const defaultParserName = "gotext"

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]Parser{
		"gotext": gotextParser{},
		"xsfnt":  xsfntParser{},
	}
)

// RegisterParser registers a custom font parser under name, replacing any
// previous parser with the same name.
func RegisterParser(name string, p Parser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = p
}

// getParser returns the parser registered under name, falling back to the
// default backend for unknown names.
func getParser(name string) Parser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
