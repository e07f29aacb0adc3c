package fontkit

import (
	"bytes"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// gotextParser implements Parser using github.com/go-text/typesetting.
// This is the default backend: it understands collections and variable
// fonts, and its faces honor SetVariation.
type gotextParser struct{}

// NumFaces implements Parser.NumFaces.
func (gotextParser) NumFaces(data []byte) (int, error) {
	lds, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return 0, &ParseError{Backend: "gotext", Err: err}
	}
	return len(lds), nil
}

// Parse implements Parser.Parse.
func (gotextParser) Parse(data []byte, index int) (FaceHandle, error) {
	lds, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Backend: "gotext", Index: index, Err: err}
	}
	if index < 0 || index >= len(lds) {
		return nil, &ParseError{Backend: "gotext", Index: index, Err: ErrUnrecognizedBuffer}
	}
	ld := lds[index]

	ft, err := font.NewFont(ld)
	if err != nil {
		return nil, &ParseError{Backend: "gotext", Index: index, Err: err}
	}
	face := &gotextFace{face: font.NewFace(ft)}

	desc, _ := font.Describe(ld, nil)
	face.weight = uint16(desc.Aspect.Weight)
	face.widthClass = stretchFromWidthAxis(float32(desc.Aspect.Stretch) * 100)
	face.italic = desc.Aspect.Style >= font.StyleItalic

	if raw, err := ld.RawTable(ot.MustNewTag("name")); err == nil {
		face.names = parseNameTable(raw)
	}
	if raw, err := ld.RawTable(ot.MustNewTag("fvar")); err == nil {
		face.axes, face.instances = parseFvar(raw)
	}
	if raw, err := ld.RawTable(ot.MustNewTag("kern")); err == nil {
		face.kern = parseKern(raw)
	}
	return face, nil
}

// gotextFace implements FaceHandle on a typesetting font.Face.
// All typesetting metrics are float32 font units already.
type gotextFace struct {
	face *font.Face

	names      []Name
	weight     uint16
	widthClass uint16
	italic     bool
	axes       []VariationAxis
	instances  []NamedInstance
	kern       []KernSubtable

	// variations accumulates SetVariation calls; Face.SetVariations
	// replaces the whole list each time.
	variations []font.Variation
}

func (f *gotextFace) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

func (f *gotextFace) GlyphAdvance(g GlyphID) (uint16, bool) {
	adv := f.face.HorizontalAdvance(font.GID(g))
	if adv < 0 {
		return 0, false
	}
	return uint16(adv), true
}

func (f *gotextFace) GlyphBoundingBox(g GlyphID) (Rect, bool) {
	ext, ok := f.face.GlyphExtents(font.GID(g))
	if !ok || (ext.Width == 0 && ext.Height == 0) {
		return Rect{}, false
	}
	// Extents report the top-left bearing; Height grows downwards.
	return Rect{
		XMin: int16(ext.XBearing),
		XMax: int16(ext.XBearing + ext.Width),
		YMax: int16(ext.YBearing),
		YMin: int16(ext.YBearing + ext.Height),
	}, true
}

func (f *gotextFace) GlyphSideBearing(g GlyphID) int16 {
	ext, ok := f.face.GlyphExtents(font.GID(g))
	if !ok {
		return 0
	}
	return int16(ext.XBearing)
}

func (f *gotextFace) KernSubtables() []KernSubtable { return f.kern }

func (f *gotextFace) Ascender() int16 {
	if ext, ok := f.face.FontHExtents(); ok {
		return int16(ext.Ascender)
	}
	return 0
}

func (f *gotextFace) Descender() int16 {
	if ext, ok := f.face.FontHExtents(); ok {
		return int16(ext.Descender)
	}
	return 0
}

func (f *gotextFace) LineGap() int16 {
	if ext, ok := f.face.FontHExtents(); ok {
		return int16(ext.LineGap)
	}
	return 0
}

func (f *gotextFace) UnitsPerEm() uint16 { return f.face.Upem() }

func (f *gotextFace) Names() []Name { return f.names }

func (f *gotextFace) Axes() []VariationAxis { return f.axes }

func (f *gotextFace) Instances() []NamedInstance { return f.instances }

func (f *gotextFace) Aspect() (uint16, uint16, bool) {
	return f.weight, f.widthClass, f.italic
}

func (f *gotextFace) SetVariation(axis string, value float32) bool {
	if len(axis) != 4 {
		return false
	}
	tag := ot.MustNewTag(axis)
	found := false
	for _, a := range f.axes {
		if a.Tag == axis {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := range f.variations {
		if f.variations[i].Tag == tag {
			f.variations[i].Value = value
			f.face.SetVariations(f.variations)
			return true
		}
	}
	f.variations = append(f.variations, font.Variation{Tag: tag, Value: value})
	f.face.SetVariations(f.variations)
	return true
}
