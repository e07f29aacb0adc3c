package fontkit

// Level is a bidi embedding level. Even levels run left-to-right, odd
// levels right-to-left.
type Level int8

const (
	// LevelUnset marks characters outside any resolved bidi run.
	LevelUnset Level = -1
	// LevelLTR is the base left-to-right level.
	LevelLTR Level = 0
	// LevelRTL is the first right-to-left level.
	LevelRTL Level = 1
)

// IsRTL reports whether the level is right-to-left.
func (l Level) IsRTL() bool { return l > 0 && l%2 == 1 }

// CharMetrics is the shaping result for a single character.
//
// Advance, LSB and BBox are in the font units of the face that provided
// the glyph; Units and Height carry that face's design grid and content
// height so spliced fallback characters scale correctly.
type CharMetrics struct {
	Rune    rune
	Glyph   GlyphID
	Advance uint16
	LSB     int16
	BBox    Rect
	Units   uint16
	Height  int16
	Missing bool
}

// PositionedChar is one shaped character with its kerning adjustment
// relative to the previous character and its bidi level.
type PositionedChar struct {
	Metrics CharMetrics
	Kerning int16
	Level   Level
}

// TextMetrics is the shaping result for a string: one positioned entry
// per character, in visual order, plus the face-level vertical metrics.
type TextMetrics struct {
	positions     []PositionedChar
	value         []rune
	units         uint16
	ascender      int16
	contentHeight int16
	lineGap       int16
}

// NewTextMetrics returns placeholder metrics for value: every character
// is marked missing with zero advance. Useful as a stand-in before real
// shaping happens.
func NewTextMetrics(value string) *TextMetrics {
	runes := []rune(value)
	t := &TextMetrics{
		positions: make([]PositionedChar, 0, len(runes)),
		value:     runes,
		units:     1000,
	}
	for _, r := range runes {
		t.positions = append(t.positions, PositionedChar{
			Metrics: CharMetrics{Rune: r, Units: 1000, Missing: true},
			Level:   LevelUnset,
		})
	}
	return t
}

// NewShapedMetrics builds metrics from externally shaped positions. The
// positions must be in visual order and aligned one-to-one with the
// characters of value.
func NewShapedMetrics(value string, positions []PositionedChar, units uint16, ascender, descender, lineGap int16) *TextMetrics {
	return &TextMetrics{
		positions:     positions,
		value:         []rune(value),
		units:         units,
		ascender:      ascender,
		contentHeight: ascender - descender,
		lineGap:       lineGap,
	}
}

// Count returns the number of positioned characters.
func (t *TextMetrics) Count() int { return len(t.positions) }

// Value returns the shaped character string, in the same (visual) order
// as the positions.
func (t *TextMetrics) Value() string { return string(t.value) }

// Positions returns the positioned characters. The slice is shared with
// the metrics and must be treated as read-only.
func (t *TextMetrics) Positions() []PositionedChar { return t.positions }

// UnitsPerEm returns the design grid of the primary face.
func (t *TextMetrics) UnitsPerEm() uint16 { return t.units }

// Validate reports a desynchronization between value and positions.
func (t *TextMetrics) Validate() error {
	if len(t.value) != len(t.positions) {
		return &MetricsMismatchError{Chars: len(t.value), Positions: len(t.positions)}
	}
	return nil
}

// charWidth is the pixel width contribution of one positioned character.
func (t *TextMetrics) charWidth(p PositionedChar, size, letterSpacing float64) float64 {
	units := p.Metrics.Units
	if units == 0 {
		units = t.units
	}
	if units == 0 {
		return letterSpacing
	}
	return (float64(p.Kerning)+float64(p.Metrics.Advance))*size/float64(units) + letterSpacing
}

// CharWidth returns the width contribution of the character at index i,
// kerning and letter spacing included. Out-of-range indices return 0.
func (t *TextMetrics) CharWidth(i int, size, letterSpacing float64) float64 {
	if i < 0 || i >= len(t.positions) {
		return 0
	}
	return t.charWidth(t.positions[i], size, letterSpacing)
}

// Width returns the total advance width in pixels at the given font size
// and per-character letter spacing.
func (t *TextMetrics) Width(size, letterSpacing float64) float64 {
	return t.WidthUntil(size, letterSpacing, len(t.positions))
}

// WidthUntil returns the width of the first n positioned characters.
// n is clamped to the available range.
func (t *TextMetrics) WidthUntil(size, letterSpacing float64, n int) float64 {
	if n > len(t.positions) {
		n = len(t.positions)
	}
	w := 0.0
	for _, p := range t.positions[:n] {
		w += t.charWidth(p, size, letterSpacing)
	}
	return w
}

// Height returns the line height in pixels. A positive lineHeight
// overrides the font-derived value.
func (t *TextMetrics) Height(size, lineHeight float64) float64 {
	if lineHeight > 0 {
		return lineHeight
	}
	if t.units == 0 {
		return 0
	}
	return float64(int32(t.contentHeight)+int32(t.lineGap)) * size / float64(t.units)
}

// Ascender returns the ascender in pixels at the given size.
func (t *TextMetrics) Ascender(size float64) float64 {
	if t.units == 0 {
		return 0
	}
	return float64(t.ascender) * size / float64(t.units)
}

// LineGap returns the line gap in pixels at the given size.
func (t *TextMetrics) LineGap(size float64) float64 {
	if t.units == 0 {
		return 0
	}
	return float64(t.lineGap) * size / float64(t.units)
}

// HasMissing reports whether any character lacked a glyph.
func (t *TextMetrics) HasMissing() bool {
	for _, p := range t.positions {
		if p.Metrics.Missing {
			return true
		}
	}
	return false
}

// IsRTL reports whether every positioned character is right-to-left.
// Empty metrics are not RTL.
func (t *TextMetrics) IsRTL() bool {
	if len(t.positions) == 0 {
		return false
	}
	for _, p := range t.positions {
		if !p.Level.IsRTL() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (t *TextMetrics) Clone() *TextMetrics {
	c := *t
	c.positions = append([]PositionedChar(nil), t.positions...)
	c.value = append([]rune(nil), t.value...)
	return &c
}

// Append concatenates other's characters onto t, keeping t's vertical
// metrics.
func (t *TextMetrics) Append(other *TextMetrics) {
	t.positions = append(t.positions, other.positions...)
	t.value = append(t.value, other.value...)
}

// Slice returns a copy of the [start, start+count) character range,
// clamped to the available range.
func (t *TextMetrics) Slice(start, count int) *TextMetrics {
	if start < 0 {
		start = 0
	}
	if start > len(t.positions) {
		start = len(t.positions)
	}
	end := start + count
	if end > len(t.positions) {
		end = len(t.positions)
	}
	c := *t
	c.positions = append([]PositionedChar(nil), t.positions[start:end]...)
	c.value = append([]rune(nil), t.value[start:end]...)
	return &c
}

// SplitOff removes the characters from index n onward and returns them as
// new metrics with the same vertical metrics. n is clamped.
func (t *TextMetrics) SplitOff(n int) *TextMetrics {
	if n < 0 {
		n = 0
	}
	if n > len(t.positions) {
		n = len(t.positions)
	}
	tail := *t
	tail.positions = append([]PositionedChar(nil), t.positions[n:]...)
	tail.value = append([]rune(nil), t.value[n:]...)
	t.positions = t.positions[:n]
	t.value = t.value[:n]
	return &tail
}

// Pop removes the last character, if any.
func (t *TextMetrics) Pop() {
	if n := len(t.positions); n > 0 {
		t.positions = t.positions[:n-1]
		t.value = t.value[:len(t.value)-1]
	}
}

// TrimStart removes leading space characters.
func (t *TextMetrics) TrimStart() {
	i := 0
	for i < len(t.value) && i < len(t.positions) && t.value[i] == ' ' {
		i++
	}
	if i > 0 {
		t.positions = t.positions[i:]
		t.value = t.value[i:]
	}
}

// Reverse reverses the character order in place.
func (t *TextMetrics) Reverse() {
	for i, j := 0, len(t.positions)-1; i < j; i, j = i+1, j-1 {
		t.positions[i], t.positions[j] = t.positions[j], t.positions[i]
	}
	for i, j := 0, len(t.value)-1; i < j; i, j = i+1, j-1 {
		t.value[i], t.value[j] = t.value[j], t.value[i]
	}
}

// Replace substitutes t's positioned characters and vertical metrics with
// other's, keeping nothing of the previous shaping.
func (t *TextMetrics) Replace(other *TextMetrics) {
	t.positions = append(t.positions[:0], other.positions...)
	t.value = append(t.value[:0], other.value...)
	t.units = other.units
	t.ascender = other.ascender
	t.contentHeight = other.contentHeight
	t.lineGap = other.lineGap
}
