package fontkit

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// xsfntParser implements Parser using golang.org/x/image/font/sfnt.
//
// The sfnt package exposes glyph metrics but not OS/2 aspect, fvar or the
// kern table, so those are read from the raw table directory. Variations
// cannot be applied with this backend.
type xsfntParser struct{}

// NumFaces implements Parser.NumFaces.
func (xsfntParser) NumFaces(data []byte) (int, error) {
	if sniffBuffer(data) != kindTTC {
		return 1, nil
	}
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return 0, &ParseError{Backend: "xsfnt", Err: err}
	}
	return c.NumFonts(), nil
}

// Parse implements Parser.Parse.
func (xsfntParser) Parse(data []byte, index int) (FaceHandle, error) {
	var f *sfnt.Font
	var err error
	if sniffBuffer(data) == kindTTC {
		var c *sfnt.Collection
		c, err = sfnt.ParseCollection(data)
		if err == nil {
			f, err = c.Font(index)
		}
	} else {
		f, err = sfnt.Parse(data)
	}
	if err != nil {
		return nil, &ParseError{Backend: "xsfnt", Index: index, Err: err}
	}

	face := &xsfntFace{
		font: f,
		upem: uint16(f.UnitsPerEm()),
		ppem: fixed.Int26_6(int32(f.UnitsPerEm()) * 64),
	}

	// Pull the tables sfnt does not surface from the raw directory.
	if tables, derr := sfntDirectory(data, index); derr == nil {
		face.names = parseNameTable(tables["name"])
		if w, s, it, ok := parseOS2Aspect(tables["OS/2"]); ok {
			face.weight, face.widthClass, face.italic = w, s, it
		}
		face.axes, face.instances = parseFvar(tables["fvar"])
		face.kern = parseKern(tables["kern"])
	}
	if face.weight == 0 {
		face.weight = 400
	}
	if face.widthClass == 0 {
		face.widthClass = 5
	}
	return face, nil
}

// xsfntFace implements FaceHandle on an sfnt.Font. Metric queries run at
// ppem == upem with hinting disabled so results come back in font units.
type xsfntFace struct {
	font *sfnt.Font
	upem uint16
	ppem fixed.Int26_6

	names      []Name
	weight     uint16
	widthClass uint16
	italic     bool
	axes       []VariationAxis
	instances  []NamedInstance
	kern       []KernSubtable
}

func (f *xsfntFace) GlyphIndex(r rune) (GlyphID, bool) {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

func (f *xsfntFace) GlyphAdvance(g GlyphID) (uint16, bool) {
	var buf sfnt.Buffer
	adv, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(g), f.ppem, font.HintingNone)
	if err != nil {
		return 0, false
	}
	return uint16(adv / 64), true
}

func (f *xsfntFace) GlyphBoundingBox(g GlyphID) (Rect, bool) {
	var buf sfnt.Buffer
	bounds, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(g), f.ppem, font.HintingNone)
	if err != nil || bounds.Empty() {
		return Rect{}, false
	}
	// sfnt bounds are y-down, flip to font-unit convention (y up).
	return Rect{
		XMin: int16(bounds.Min.X / 64),
		XMax: int16(bounds.Max.X / 64),
		YMin: int16(-bounds.Max.Y / 64),
		YMax: int16(-bounds.Min.Y / 64),
	}, true
}

func (f *xsfntFace) GlyphSideBearing(g GlyphID) int16 {
	var buf sfnt.Buffer
	bounds, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(g), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return int16(bounds.Min.X / 64)
}

func (f *xsfntFace) KernSubtables() []KernSubtable { return f.kern }

func (f *xsfntFace) Ascender() int16 {
	m, err := f.metrics()
	if err != nil {
		return 0
	}
	return int16(m.Ascent / 64)
}

func (f *xsfntFace) Descender() int16 {
	m, err := f.metrics()
	if err != nil {
		return 0
	}
	return int16(-m.Descent / 64)
}

func (f *xsfntFace) LineGap() int16 {
	m, err := f.metrics()
	if err != nil {
		return 0
	}
	gap := (m.Height - m.Ascent - m.Descent) / 64
	if gap < 0 {
		gap = 0
	}
	return int16(gap)
}

func (f *xsfntFace) metrics() (font.Metrics, error) {
	var buf sfnt.Buffer
	return f.font.Metrics(&buf, f.ppem, font.HintingNone)
}

func (f *xsfntFace) UnitsPerEm() uint16 { return f.upem }

func (f *xsfntFace) Names() []Name { return f.names }

func (f *xsfntFace) Axes() []VariationAxis { return f.axes }

func (f *xsfntFace) Instances() []NamedInstance { return f.instances }

func (f *xsfntFace) Aspect() (uint16, uint16, bool) {
	return f.weight, f.widthClass, f.italic
}

// SetVariation is unsupported: sfnt reads only the default instance.
func (f *xsfntFace) SetVariation(string, float32) bool { return false }
