package fontkit

import (
	"strings"

	"github.com/go-text/typesetting/font"
)

// VariationData describes one selectable face: either a static font, one
// sub-face of a collection, or one named instance of a variable font. Its
// Key carries the resolved identity used for matching and registration.
type VariationData struct {
	// Key is the resolved identity of this face.
	Key FontKey

	// Names holds the family-level name records (family, full,
	// postscript, typographic family).
	Names []Name

	// StyleNames holds the subfamily name records.
	StyleNames []Name

	// Index is the face index inside the buffer (0 for plain fonts).
	Index uint32

	// instanceSubfamily and instancePostScript are set for named
	// instances of variable fonts.
	instanceSubfamily  string
	instancePostScript string
	variable           bool
}

// IsVariable reports whether this variant is a variable-font instance.
func (v *VariationData) IsVariable() bool { return v.variable }

// familyNameIDs are the name records treated as family-level names.
var familyNameIDs = [...]uint16{NameIDFamily, NameIDTypographicFamily, NameIDFull, NameIDPostScript}

// styleNameIDs are the name records treated as style names.
var styleNameIDs = [...]uint16{NameIDSubfamily, NameIDTypographicSubfamily}

// buildVariants resolves the selectable variants of one parsed face.
// A static font yields a single variant; a variable font yields one
// variant per named instance.
func buildVariants(h FaceHandle, index uint32) ([]*VariationData, error) {
	all := h.Names()

	var names, styleNames []Name
	for _, n := range all {
		for _, id := range familyNameIDs {
			if n.ID == id {
				rec := n
				if id == NameIDPostScript {
					rec.Text = strings.ReplaceAll(rec.Text, " ", "-")
				}
				names = append(names, rec)
			}
		}
		for _, id := range styleNameIDs {
			if n.ID == id {
				styleNames = append(styleNames, n)
			}
		}
	}
	if len(names) == 0 {
		return nil, ErrEmptyName
	}

	weight, stretch, italic := h.Aspect()
	base := FontKey{
		Family:  canonicalFamily(names),
		Weight:  weight,
		Stretch: stretch,
		Italic:  ItalicNo,
	}
	if italic {
		base.Italic = ItalicYes
	}

	axes := h.Axes()
	instances := h.Instances()
	if len(axes) == 0 || len(instances) == 0 {
		v := &VariationData{Key: base, Names: names, StyleNames: styleNames, Index: index}
		return []*VariationData{v}, nil
	}

	variants := make([]*VariationData, 0, len(instances))
	for _, inst := range instances {
		key := base
		key.Variations = make([]Variation, 0, len(axes))
		for a, axis := range axes {
			if a >= len(inst.Coords) {
				break
			}
			value := inst.Coords[a]
			key.Variations = append(key.Variations, Variation{Axis: axis.Tag, Value: value})
			switch axis.Tag {
			case "wght":
				key.Weight = uint16(value)
			case "wdth":
				key.Stretch = stretchFromWidthAxis(value)
			case "ital", "slnt":
				if value != 0 {
					key.Italic = ItalicYes
				}
			}
		}
		variants = append(variants, &VariationData{
			Key:                key,
			Names:              names,
			StyleNames:         styleNames,
			Index:              index,
			instanceSubfamily:  nameText(all, inst.SubfamilyNameID),
			instancePostScript: strings.ReplaceAll(nameText(all, inst.PostScriptNameID), " ", "-"),
			variable:           true,
		})
	}
	return variants, nil
}

// canonicalFamily selects the preferred family name: the shortest ASCII
// name longer than 3 characters, ties broken by fewest dashes. Leading
// dots (hidden system fonts) are stripped. Falls back to the first name
// when no candidate qualifies.
func canonicalFamily(names []Name) string {
	best := ""
	bestDashes := 0
	for _, n := range names {
		t := strings.TrimPrefix(n.Text, ".")
		if len(t) <= 3 || !isASCII(t) {
			continue
		}
		dashes := strings.Count(t, "-")
		if best == "" || len(t) < len(best) || (len(t) == len(best) && dashes < bestDashes) {
			best = t
			bestDashes = dashes
		}
	}
	if best != "" {
		return best
	}
	return strings.TrimPrefix(names[0].Text, ".")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// nameText returns the text of the first record with the given ID,
// preferring Windows US English.
func nameText(names []Name, id uint16) string {
	if id == 0 {
		return ""
	}
	fallback := ""
	for _, n := range names {
		if n.ID != id {
			continue
		}
		if n.LanguageID == 0x409 {
			return n.Text
		}
		if fallback == "" {
			fallback = n.Text
		}
	}
	return fallback
}

// sameFamily compares family names case-insensitively, ignoring spacing
// differences.
func sameFamily(a, b string) bool {
	return font.NormalizeFamily(a) == font.NormalizeFamily(b)
}

// fulfilsFamily reports whether this variant answers to the requested
// family: the canonical family, any secondary name, or (for variable
// instances) the instance postscript name. As a last resort the instance
// subfamily is converted to PascalCase and substituted into the base
// postscript name, which recovers names like "SourceSans-BoldItalic".
func (v *VariationData) fulfilsFamily(family string) bool {
	if sameFamily(v.Key.Family, family) {
		return true
	}
	for _, n := range v.Names {
		if sameFamily(n.Text, family) {
			return true
		}
	}
	if !v.variable {
		return false
	}
	if v.instancePostScript != "" && sameFamily(v.instancePostScript, family) {
		return true
	}
	if v.instanceSubfamily == "" {
		return false
	}
	ps := nameText(v.Names, NameIDPostScript)
	if ps == "" {
		return false
	}
	base, _, _ := strings.Cut(ps, "-")
	inflected := base + "-" + pascalCase(v.instanceSubfamily)
	return sameFamily(inflected, family)
}

// pascalCase converts "extra bold italic" to "ExtraBoldItalic".
func pascalCase(s string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(s) {
		for i, r := range word {
			if i == 0 && r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// fulfils reports whether the variant passes one matching filter.
func (v *VariationData) fulfils(f filter) bool {
	key := v.Key.Defaulted()
	switch f.kind {
	case filterFamily:
		return v.fulfilsFamily(f.family)
	case filterItalic:
		return key.Italic == f.italic
	case filterWeight:
		return f.weight == 0 || key.Weight == f.weight
	case filterStretch:
		return key.Stretch == f.stretch
	case filterVariations:
		for _, want := range f.variations {
			found := false
			for _, have := range v.Key.Variations {
				if have == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}
