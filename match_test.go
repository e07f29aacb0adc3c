package fontkit

import "testing"

// TestQueryFamilyMandatory tests that matching never succeeds without a
// family.
func TestQueryFamilyMandatory(t *testing.T) {
	kit := fakeKit(t, "fake-family", newFakeFace("Demo Sans", 400, false, 5))

	if face := kit.Query(FontKey{}); face != nil {
		t.Errorf("Query(empty key) = %v, want nil", face.Key())
	}
	if face := kit.Query(NewFontKey("Nope Sans")); face != nil {
		t.Errorf("Query(unknown family) = %v, want nil", face.Key())
	}
	if face := kit.Query(NewFontKey("Demo Sans")); face == nil {
		t.Fatal("Query(known family) = nil, want a face")
	}
}

// TestQueryExactWeight tests exact selection when the weight exists.
func TestQueryExactWeight(t *testing.T) {
	kit := fakeKit(t, "fake-weight",
		newFakeFace("Demo Sans", 400, false, 5),
		newFakeFace("Demo Sans", 700, false, 5),
	)

	face := kit.Query(FontKey{Family: "Demo Sans", Weight: 700})
	if face == nil {
		t.Fatal("Query = nil, want bold face")
	}
	if got := face.Key().Weight; got != 700 {
		t.Errorf("Weight = %d, want 700", got)
	}
}

// TestQueryWeightFallback tests that a weight with no exact match drops
// the weight constraint and picks the numerically closest candidate.
func TestQueryWeightFallback(t *testing.T) {
	tests := []struct {
		name    string
		weights []uint16
		request uint16
		want    uint16
	}{
		{"500 prefers 400", []uint16{400, 700}, 500, 400},
		{"600 prefers 700", []uint16{400, 700}, 600, 700},
		{"equidistant prefers first registered", []uint16{300, 500}, 400, 300},
		{"below range", []uint16{400, 700}, 100, 400},
		{"above range", []uint16{400, 700}, 900, 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faces := make([]*fakeFace, len(tt.weights))
			for i, w := range tt.weights {
				faces[i] = newFakeFace("Demo Sans", w, false, 5)
			}
			kit := fakeKit(t, "fake-"+tt.name, faces...)

			face := kit.Query(FontKey{Family: "Demo Sans", Weight: tt.request})
			if face == nil {
				t.Fatal("Query = nil, want a face")
			}
			if got := face.Key().Weight; got != tt.want {
				t.Errorf("Weight = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestQueryItalic tests the italic filter and its relaxation.
func TestQueryItalic(t *testing.T) {
	kit := fakeKit(t, "fake-italic",
		newFakeFace("Demo Sans", 400, false, 5),
		newFakeFace("Demo Sans", 400, true, 5),
	)

	face := kit.Query(FontKey{Family: "Demo Sans", Italic: ItalicYes})
	if face == nil {
		t.Fatal("Query(italic) = nil, want italic face")
	}
	if face.Key().Italic != ItalicYes {
		t.Errorf("Italic = %v, want ItalicYes", face.Key().Italic)
	}

	face = kit.Query(NewFontKey("Demo Sans"))
	if face == nil {
		t.Fatal("Query(upright) = nil, want upright face")
	}
	if face.Key().Italic != ItalicNo {
		t.Errorf("Italic = %v, want ItalicNo", face.Key().Italic)
	}
}

// TestQueryItalicRelaxed tests that requesting italic from an
// upright-only family still matches.
func TestQueryItalicRelaxed(t *testing.T) {
	kit := fakeKit(t, "fake-italic-relaxed", newFakeFace("Demo Sans", 400, false, 5))

	face := kit.Query(FontKey{Family: "Demo Sans", Italic: ItalicYes})
	if face == nil {
		t.Fatal("Query = nil, want the upright face")
	}
	if face.Key().Italic != ItalicNo {
		t.Errorf("Italic = %v, want ItalicNo", face.Key().Italic)
	}
}

// TestQueryStretch tests width class selection and distance tie-break.
func TestQueryStretch(t *testing.T) {
	kit := fakeKit(t, "fake-stretch",
		newFakeFace("Demo Sans", 400, false, 5),
		newFakeFace("Demo Sans", 400, false, 3),
	)

	face := kit.Query(FontKey{Family: "Demo Sans", Stretch: 3})
	if face == nil {
		t.Fatal("Query(condensed) = nil, want a face")
	}
	if got := face.Key().Stretch; got != 3 {
		t.Errorf("Stretch = %d, want 3", got)
	}

	// No semi-condensed face exists; 5 and 3 are equidistant from 4, so
	// the first registered wins.
	face = kit.Query(FontKey{Family: "Demo Sans", Stretch: 4})
	if face == nil {
		t.Fatal("Query(semi-condensed) = nil, want a face")
	}
	if got := face.Key().Stretch; got != 5 {
		t.Errorf("Stretch = %d, want 5", got)
	}
}

// TestQuerySecondaryNames tests matching against full and postscript
// names.
func TestQuerySecondaryNames(t *testing.T) {
	f := newFakeFace("Demo Sans", 400, false, 5)
	f.names = append(f.names,
		Name{ID: NameIDPostScript, Text: "DemoSans-Regular", LanguageID: 0x409},
		Name{ID: NameIDFull, Text: "Demo Sans Regular", LanguageID: 0x409},
	)
	kit := fakeKit(t, "fake-secondary", f)

	for _, family := range []string{"Demo Sans", "DemoSans-Regular", "Demo Sans Regular", "demo sans"} {
		if face := kit.Query(NewFontKey(family)); face == nil {
			t.Errorf("Query(%q) = nil, want a face", family)
		}
	}
}

// variableFace builds a variable font fake with wght 100-900 and two
// named instances, Regular and Bold.
func variableFace() *fakeFace {
	f := newFakeFace("Vario", 400, false, 5)
	f.names = append(f.names,
		Name{ID: NameIDPostScript, Text: "Vario-Regular", LanguageID: 0x409},
		Name{ID: 256, Text: "Regular", LanguageID: 0x409},
		Name{ID: 257, Text: "Bold", LanguageID: 0x409},
	)
	f.axes = []VariationAxis{{Tag: "wght", Min: 100, Default: 400, Max: 900}}
	f.instances = []NamedInstance{
		{Coords: []float32{400}, SubfamilyNameID: 256},
		{Coords: []float32{700}, SubfamilyNameID: 257},
	}
	return f
}

// TestVariableInstances tests that named instances register as separate
// keys with resolved weights.
func TestVariableInstances(t *testing.T) {
	kit := fakeKit(t, "fake-variable", variableFace())

	if got := kit.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	face := kit.Query(FontKey{Family: "Vario", Weight: 700})
	if face == nil {
		t.Fatal("Query(bold instance) = nil, want a face")
	}
	key := face.Key()
	if key.Weight != 700 {
		t.Errorf("Weight = %d, want 700", key.Weight)
	}
	if len(key.Variations) != 1 || key.Variations[0] != (Variation{Axis: "wght", Value: 700}) {
		t.Errorf("Variations = %v, want [wght=700]", key.Variations)
	}

	// Opening the face must pin the instance coordinates on the backend.
	h := face.Handle().(*fakeFace)
	if got := h.set["wght"]; got != 700 {
		t.Errorf("backend wght = %g, want 700", got)
	}
}

// TestVariableInstanceByStyleName tests the postscript-name inflection:
// the instance subfamily substituted into the base postscript name.
func TestVariableInstanceByStyleName(t *testing.T) {
	kit := fakeKit(t, "fake-variable-name", variableFace())

	face := kit.Query(NewFontKey("Vario-Bold"))
	if face == nil {
		t.Fatal("Query(Vario-Bold) = nil, want the bold instance")
	}
	if got := face.Key().Weight; got != 700 {
		t.Errorf("Weight = %d, want 700", got)
	}
}

// TestQueryVariations tests explicit axis requests.
func TestQueryVariations(t *testing.T) {
	kit := fakeKit(t, "fake-variations", variableFace())

	face := kit.Query(FontKey{
		Family:     "Vario",
		Variations: []Variation{{Axis: "wght", Value: 700}},
	})
	if face == nil {
		t.Fatal("Query = nil, want the bold instance")
	}
	if got := face.Key().Weight; got != 700 {
		t.Errorf("Weight = %d, want 700", got)
	}
}

// TestExactMatch tests that ExactMatch rejects approximate results.
func TestExactMatch(t *testing.T) {
	kit := fakeKit(t, "fake-exact", newFakeFace("Demo Sans", 400, false, 5))

	if face := kit.ExactMatch(NewFontKey("Demo Sans")); face == nil {
		t.Error("ExactMatch(registered key) = nil, want a face")
	}
	if face := kit.ExactMatch(FontKey{Family: "Demo Sans", Weight: 700}); face != nil {
		t.Errorf("ExactMatch(weight 700) = %v, want nil", face.Key())
	}
	if face := kit.ExactMatch(FontKey{Family: "Demo Sans", Italic: ItalicYes}); face != nil {
		t.Errorf("ExactMatch(italic) = %v, want nil", face.Key())
	}
}

// TestFontFace tests variant selection directly on a Font.
func TestFontFace(t *testing.T) {
	RegisterParser("fake-font-face", &fakeParser{fonts: [][]*fakeFace{{
		newFakeFace("Demo Sans", 400, false, 5),
		newFakeFace("Demo Sans", 700, false, 5),
	}}})
	font, err := newFont(fakeBuf(0), getParser("fake-font-face"), nil)
	if err != nil {
		t.Fatalf("newFont: %v", err)
	}
	if got := len(font.Variants()); got != 2 {
		t.Fatalf("Variants = %d, want 2", got)
	}

	face, err := font.Face(FontKey{Family: "Demo Sans", Weight: 700})
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if got := face.Key().Weight; got != 700 {
		t.Errorf("Weight = %d, want 700", got)
	}

	if _, err := font.Face(NewFontKey("Other")); err == nil {
		t.Error("Face(unknown family) = nil error, want ErrFontNotFound")
	}
}
