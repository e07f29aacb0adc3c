package layout

import "testing"

// TestClassifyRune tests rune classification for line breaking.
func TestClassifyRune(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want breakClass
	}{
		{"space", ' ', breakSpace},
		{"tab", '\t', breakSpace},
		{"zero-width space", '​', breakZero},
		{"open paren", '(', breakOpen},
		{"close paren", ')', breakClose},
		{"open bracket", '[', breakOpen},
		{"close brace", '}', breakClose},
		{"left double quote", '“', breakOpen},
		{"right single quote", '’', breakClose},
		{"comma", ',', breakClose},
		{"period", '.', breakClose},
		{"CJK ideograph", '一', breakIdeographic},
		{"hiragana", 'あ', breakIdeographic},
		{"katakana", 'ア', breakIdeographic},
		{"hangul", '가', breakIdeographic},
		{"hyphen is not special", '-', breakOther},
		{"latin a", 'a', breakOther},
		{"digit 1", '1', breakOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyRune(tt.r); got != tt.want {
				t.Errorf("classifyRune(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

// TestBreakOpportunities tests break placement between classes.
func TestBreakOpportunities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []bool
	}{
		{
			"word boundary",
			"ab cd",
			[]bool{false, false, false, true, false},
		},
		{
			"no break before space or comma",
			"a, b cd",
			[]bool{false, false, false, true, false, true, false},
		},
		{
			"opener sticks to what follows",
			"a (b)",
			[]bool{false, false, true, false, false},
		},
		{
			"hyphen does not break",
			"co-op",
			[]bool{false, false, false, false, false},
		},
		{
			"ideographs break on both sides",
			"a一丁b",
			[]bool{false, true, true, true},
		},
		{
			"zero-width space breaks after",
			"a​b",
			[]bool{false, false, true},
		},
		{
			"consecutive spaces",
			"a  b",
			[]bool{false, false, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := breakOpportunities([]rune(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("breaks[%d] = %v, want %v (input %q)", i, got[i], tt.want[i], tt.in)
				}
			}
		})
	}
}
