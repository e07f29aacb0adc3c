package fontkit

import (
	"fmt"
	"strings"
)

// Italic is a tri-state italic flag. The zero value ItalicUnset acts as a
// wildcard during matching, not as "upright".
type Italic uint8

const (
	// ItalicUnset leaves the italic axis unconstrained.
	ItalicUnset Italic = iota
	// ItalicNo requests an upright face.
	ItalicNo
	// ItalicYes requests an italic face.
	ItalicYes
)

// String returns the string representation of the italic flag.
func (i Italic) String() string {
	switch i {
	case ItalicNo:
		return "false"
	case ItalicYes:
		return "true"
	default:
		return "unset"
	}
}

// Variation is a single variable-font axis setting.
type Variation struct {
	Axis  string
	Value float32
}

// FontKey is the logical identity of a font request or of a concrete face.
//
// Weight, Italic and Stretch are optional: a zero value means "unset" and
// acts as a wildcard during matching. Two keys name the literal same font
// iff all fields are equal after defaulting (weight 400, stretch 5,
// upright).
type FontKey struct {
	// Family is the font family name. It is the only mandatory field.
	Family string

	// Weight is the CSS-style weight, 1-1000. Zero means unset.
	Weight uint16

	// Italic selects between upright and italic faces.
	Italic Italic

	// Stretch is the CSS width class, 1 (ultra-condensed) to 9
	// (ultra-expanded). Zero means unset.
	Stretch uint16

	// Variations holds explicit variable-font axis settings, in order.
	Variations []Variation
}

// NewFontKey returns a fully-defaulted key for family: weight 400, upright,
// stretch 5 (normal).
func NewFontKey(family string) FontKey {
	return FontKey{
		Family:  family,
		Weight:  400,
		Italic:  ItalicNo,
		Stretch: 5,
	}
}

// Defaulted returns a copy of the key with unset fields replaced by their
// defaults (weight 400, upright, stretch 5). Family and Variations are
// kept as-is.
func (k FontKey) Defaulted() FontKey {
	if k.Weight == 0 {
		k.Weight = 400
	}
	if k.Italic == ItalicUnset {
		k.Italic = ItalicNo
	}
	if k.Stretch == 0 {
		k.Stretch = 5
	}
	return k
}

// Equal reports whether two keys name the same font after defaulting.
// Variations must match pairwise in order.
func (k FontKey) Equal(o FontKey) bool {
	return k.Defaulted().id() == o.Defaulted().id()
}

// String implements fmt.Stringer.
func (k FontKey) String() string {
	d := k.Defaulted()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(weight=%d, italic=%s, stretch=%d", d.Family, d.Weight, d.Italic, d.Stretch)
	for _, v := range d.Variations {
		fmt.Fprintf(&sb, ", %s=%g", v.Axis, v.Value)
	}
	sb.WriteByte(')')
	return sb.String()
}

// keyID is a comparable identity usable as a map key. Variations are
// flattened into a string because slices cannot be compared.
type keyID struct {
	family     string
	weight     uint16
	italic     Italic
	stretch    uint16
	variations string
}

func (k FontKey) id() keyID {
	var sb strings.Builder
	for _, v := range k.Variations {
		fmt.Fprintf(&sb, "%s=%g;", v.Axis, v.Value)
	}
	return keyID{
		family:     k.Family,
		weight:     k.Weight,
		italic:     k.Italic,
		stretch:    k.Stretch,
		variations: sb.String(),
	}
}

// cacheFileName returns the deterministic file name used when persisting
// the font buffer: family_italic_stretch_weight.ttf with '.' and spaces
// replaced by '_'.
func (k FontKey) cacheFileName() string {
	d := k.Defaulted()
	name := fmt.Sprintf("%s_%s_%d_%d", d.Family, d.Italic, d.Stretch, d.Weight)
	name = strings.ReplaceAll(name, ".", "_")
	return strings.ReplaceAll(name, " ", "_") + ".ttf"
}

// stretchNames maps CSS width classes 1-9 to their canonical names.
var stretchNames = [...]string{
	1: "ultra-condensed",
	2: "extra-condensed",
	3: "condensed",
	4: "semi-condensed",
	5: "normal",
	6: "semi-expanded",
	7: "expanded",
	8: "extra-expanded",
	9: "ultra-expanded",
}

// StretchName returns the canonical name of a CSS width class, or "normal"
// for out-of-range values.
func StretchName(v uint16) string {
	if v < 1 || v > 9 {
		return "normal"
	}
	return stretchNames[v]
}

// StretchFromName parses a CSS stretch name into a width class.
// Unknown names map to 5 (normal).
func StretchFromName(s string) uint16 {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 1; i < len(stretchNames); i++ {
		if stretchNames[i] == s {
			return uint16(i)
		}
	}
	return 5
}

// stretchFromWidthAxis converts a wdth axis value (percent of normal) to a
// CSS width class, clamped to the 1-9 range.
func stretchFromWidthAxis(wdth float32) uint16 {
	v := uint16(wdth / 100 * 5)
	if v < 1 {
		v = 1
	}
	if v > 9 {
		v = 9
	}
	return v
}
