package fontkit

import (
	"errors"
	"testing"
)

// syntheticMetrics builds metrics with one 600-unit character per rune of
// value, on a 1000 unit grid.
func syntheticMetrics(value string) *TextMetrics {
	runes := []rune(value)
	positions := make([]PositionedChar, len(runes))
	for i, r := range runes {
		positions[i] = PositionedChar{
			Metrics: CharMetrics{Rune: r, Glyph: GlyphID(i + 1), Advance: 600, Units: 1000, Height: 1000},
			Level:   LevelLTR,
		}
	}
	return NewShapedMetrics(value, positions, 1000, 800, -200, 0)
}

// TestMetricsSlice tests range extraction with clamping.
func TestMetricsSlice(t *testing.T) {
	m := syntheticMetrics("abcdef")

	tests := []struct {
		name         string
		start, count int
		want         string
	}{
		{"middle", 2, 2, "cd"},
		{"prefix", 0, 3, "abc"},
		{"suffix clamped", 4, 10, "ef"},
		{"start clamped", -2, 2, "ab"},
		{"past end", 10, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := m.Slice(tt.start, tt.count)
			if got := s.Value(); got != tt.want {
				t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.count, got, tt.want)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
		})
	}

	// Slicing must not disturb the source.
	if got := m.Value(); got != "abcdef" {
		t.Errorf("source Value = %q, want %q", got, "abcdef")
	}
}

// TestMetricsSplitOff tests in-place truncation.
func TestMetricsSplitOff(t *testing.T) {
	m := syntheticMetrics("abcdef")
	tail := m.SplitOff(4)

	if got := m.Value(); got != "abcd" {
		t.Errorf("head Value = %q, want %q", got, "abcd")
	}
	if got := tail.Value(); got != "ef" {
		t.Errorf("tail Value = %q, want %q", got, "ef")
	}
	if got := tail.UnitsPerEm(); got != 1000 {
		t.Errorf("tail UnitsPerEm = %d, want 1000", got)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("head Validate = %v", err)
	}
	if err := tail.Validate(); err != nil {
		t.Errorf("tail Validate = %v", err)
	}
}

// TestMetricsPop tests removing the trailing character.
func TestMetricsPop(t *testing.T) {
	m := syntheticMetrics("ab")
	m.Pop()
	if got := m.Value(); got != "a" {
		t.Errorf("Value = %q, want %q", got, "a")
	}
	m.Pop()
	m.Pop() // on empty metrics, a no-op
	if got := m.Count(); got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
}

// TestMetricsTrimStart tests leading space removal.
func TestMetricsTrimStart(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  ab", "ab"},
		{"ab", "ab"},
		{"   ", ""},
		{"a b", "a b"},
	}
	for _, tt := range tests {
		m := syntheticMetrics(tt.in)
		m.TrimStart()
		if got := m.Value(); got != tt.want {
			t.Errorf("TrimStart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestMetricsReverse tests in-place reversal.
func TestMetricsReverse(t *testing.T) {
	m := syntheticMetrics("abc")
	m.Reverse()
	if got := m.Value(); got != "cba" {
		t.Errorf("Value = %q, want %q", got, "cba")
	}
	if got := m.Positions()[0].Metrics.Rune; got != 'c' {
		t.Errorf("Positions[0].Rune = %q, want 'c'", got)
	}
	m.Reverse()
	if got := m.Value(); got != "abc" {
		t.Errorf("double Reverse = %q, want %q", got, "abc")
	}
}

// TestMetricsCloneIsolation tests that clones do not share backing
// arrays.
func TestMetricsCloneIsolation(t *testing.T) {
	m := syntheticMetrics("ab")
	c := m.Clone()
	c.Pop()
	c.Positions()[0].Kerning = -99

	if got := m.Count(); got != 2 {
		t.Errorf("source Count = %d, want 2", got)
	}
	if got := m.Positions()[0].Kerning; got != 0 {
		t.Errorf("source Kerning = %d, want 0", got)
	}
}

// TestMetricsAppend tests concatenation.
func TestMetricsAppend(t *testing.T) {
	a := syntheticMetrics("ab")
	b := syntheticMetrics("cd")
	a.Append(b)
	if got := a.Value(); got != "abcd" {
		t.Errorf("Value = %q, want %q", got, "abcd")
	}
	if got := a.Width(10, 0); got != 24 {
		t.Errorf("Width = %g, want 24", got)
	}
}

// TestMetricsReplace tests wholesale substitution.
func TestMetricsReplace(t *testing.T) {
	a := syntheticMetrics("ab")
	b := NewShapedMetrics("xyz", syntheticMetrics("xyz").Positions(), 2000, 1600, -400, 100)
	a.Replace(b)
	if got := a.Value(); got != "xyz" {
		t.Errorf("Value = %q, want %q", got, "xyz")
	}
	if got := a.UnitsPerEm(); got != 2000 {
		t.Errorf("UnitsPerEm = %d, want 2000", got)
	}
}

// TestMetricsValidateMismatch tests desynchronization reporting.
func TestMetricsValidateMismatch(t *testing.T) {
	m := NewShapedMetrics("abc", make([]PositionedChar, 2), 1000, 800, -200, 0)
	err := m.Validate()
	if err == nil {
		t.Fatal("Validate = nil, want error")
	}
	var mm *MetricsMismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("Validate error type = %T, want *MetricsMismatchError", err)
	}
	if mm.Chars != 3 || mm.Positions != 2 {
		t.Errorf("mismatch = %d chars / %d positions, want 3/2", mm.Chars, mm.Positions)
	}
}

// TestMixedUnitsWidth tests that spliced characters scale by their own
// design grid.
func TestMixedUnitsWidth(t *testing.T) {
	positions := []PositionedChar{
		{Metrics: CharMetrics{Rune: 'a', Advance: 600, Units: 1000}},
		{Metrics: CharMetrics{Rune: 'b', Advance: 1200, Units: 2000}},
	}
	m := NewShapedMetrics("ab", positions, 1000, 800, -200, 0)

	// Both characters are 0.6 em wide despite different grids.
	if got := m.Width(10, 0); got != 12 {
		t.Errorf("Width = %g, want 12", got)
	}
}
