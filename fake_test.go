package fontkit

import (
	"fmt"
	"testing"
)

// Test fakes for the parser backend. Buffers carry a TTF magic so they
// pass sniffing; byte 5 selects which font the fakeParser serves, so one
// registered parser can back several independent fonts.

// fakeBuf returns a minimal buffer that sniffs as TTF and selects font n.
func fakeBuf(n byte) []byte {
	return []byte{0x00, 0x01, 0x00, 0x00, 0x00, n, 0x00, 0x00}
}

type fakeKern struct {
	horizontal bool
	variable   bool
	pairs      map[[2]GlyphID]int16
}

func (k *fakeKern) Horizontal() bool { return k.horizontal }
func (k *fakeKern) Variable() bool   { return k.variable }

func (k *fakeKern) Lookup(left, right GlyphID) (int16, bool) {
	v, ok := k.pairs[[2]GlyphID{left, right}]
	return v, ok
}

type fakeFace struct {
	names     []Name
	weight    uint16
	stretch   uint16
	italic    bool
	axes      []VariationAxis
	instances []NamedInstance
	glyphs    map[rune]GlyphID
	advances  map[GlyphID]uint16
	boxes     map[GlyphID]Rect
	noBox     map[GlyphID]bool
	kerns     []KernSubtable
	upem      uint16
	ascender  int16
	descender int16
	lineGap   int16
	set       map[string]float32
}

// newFakeFace builds a static face covering printable ASCII, with a
// uniform advance of 600 units on a 1000 unit grid.
func newFakeFace(family string, weight uint16, italic bool, stretch uint16) *fakeFace {
	f := &fakeFace{
		names: []Name{
			{ID: NameIDFamily, Text: family, LanguageID: 0x409},
			{ID: NameIDSubfamily, Text: "Regular", LanguageID: 0x409},
		},
		weight:    weight,
		stretch:   stretch,
		italic:    italic,
		glyphs:    make(map[rune]GlyphID),
		advances:  make(map[GlyphID]uint16),
		boxes:     make(map[GlyphID]Rect),
		noBox:     make(map[GlyphID]bool),
		upem:      1000,
		ascender:  800,
		descender: -200,
		set:       make(map[string]float32),
	}
	for r := rune(' '); r <= '~'; r++ {
		g := GlyphID(r - ' ' + 1)
		f.glyphs[r] = g
		f.advances[g] = 600
		f.boxes[g] = Rect{XMin: 50, YMin: 0, XMax: 550, YMax: 700}
	}
	f.noBox[f.glyphs[' ']] = true
	return f
}

// cover adds coverage for extra runes, giving each a fresh glyph id.
func (f *fakeFace) cover(runes ...rune) *fakeFace {
	for _, r := range runes {
		g := GlyphID(1000 + len(f.glyphs))
		f.glyphs[r] = g
		f.advances[g] = 600
		f.boxes[g] = Rect{XMin: 50, YMin: 0, XMax: 550, YMax: 700}
	}
	return f
}

func (f *fakeFace) GlyphIndex(r rune) (GlyphID, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

func (f *fakeFace) GlyphAdvance(g GlyphID) (uint16, bool) {
	a, ok := f.advances[g]
	return a, ok
}

func (f *fakeFace) GlyphBoundingBox(g GlyphID) (Rect, bool) {
	if f.noBox[g] {
		return Rect{}, false
	}
	b, ok := f.boxes[g]
	return b, ok
}

func (f *fakeFace) GlyphSideBearing(g GlyphID) int16 { return 50 }
func (f *fakeFace) KernSubtables() []KernSubtable    { return f.kerns }
func (f *fakeFace) Ascender() int16                  { return f.ascender }
func (f *fakeFace) Descender() int16                 { return f.descender }
func (f *fakeFace) LineGap() int16                   { return f.lineGap }
func (f *fakeFace) UnitsPerEm() uint16               { return f.upem }
func (f *fakeFace) Names() []Name                    { return f.names }
func (f *fakeFace) Axes() []VariationAxis            { return f.axes }
func (f *fakeFace) Instances() []NamedInstance       { return f.instances }

func (f *fakeFace) Aspect() (uint16, uint16, bool) {
	return f.weight, f.stretch, f.italic
}

func (f *fakeFace) SetVariation(axis string, value float32) bool {
	for _, a := range f.axes {
		if a.Tag == axis {
			f.set[axis] = value
			return true
		}
	}
	return false
}

type fakeParser struct {
	fonts [][]*fakeFace
}

func (p *fakeParser) NumFaces(data []byte) (int, error) {
	if int(data[5]) >= len(p.fonts) {
		return 0, fmt.Errorf("fake parser: font %d not registered", data[5])
	}
	return len(p.fonts[data[5]]), nil
}

func (p *fakeParser) Parse(data []byte, index int) (FaceHandle, error) {
	faces := p.fonts[data[5]]
	if index < 0 || index >= len(faces) {
		return nil, fmt.Errorf("fake parser: face index %d out of range", index)
	}
	return faces[index], nil
}

// fakeKit registers one single-face font per fake under a dedicated parser
// name and returns a registry using that parser.
func fakeKit(t *testing.T, name string, faces ...*fakeFace) *FontKit {
	t.Helper()
	fonts := make([][]*fakeFace, len(faces))
	for i, f := range faces {
		fonts[i] = []*fakeFace{f}
	}
	RegisterParser(name, &fakeParser{fonts: fonts})
	kit := New(WithParser(name))
	for i := range fonts {
		if _, err := kit.AddFontFromBuffer(fakeBuf(byte(i))); err != nil {
			t.Fatalf("AddFontFromBuffer(font %d): %v", i, err)
		}
	}
	return kit
}
