package layout

// Simplified UAX #14 line breaking: only the classes the wrapper cares
// about. Hyphens are deliberately not break points.

type breakClass uint8

const (
	breakOther breakClass = iota
	breakSpace
	breakZero
	breakOpen
	breakClose
	breakIdeographic
)

// classifyRune returns the break class of a rune.
func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t':
		return breakSpace
	case '​': // zero-width space
		return breakZero
	case '(', '[', '{', '“', '‘':
		return breakOpen
	case ')', ']', '}', '”', '’', ',', '.', ';', ':', '!', '?':
		return breakClose
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

// isCJKRune reports CJK characters that allow breaking on either side.
func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0x3040 && r <= 0x309F) || // Hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // Katakana
		(r >= 0xAC00 && r <= 0xD7AF) || // Hangul Syllables
		(r >= 0xFF00 && r <= 0xFFEF) // Fullwidth forms
}

// breakOpportunities reports, for each rune index, whether a line may
// break before it. Index 0 is never a break point.
func breakOpportunities(runes []rune) []bool {
	n := len(runes)
	breaks := make([]bool, n)
	for i := 1; i < n; i++ {
		prev := classifyRune(runes[i-1])
		cur := classifyRune(runes[i])
		switch {
		case cur == breakSpace || cur == breakClose:
			// Trailing spaces and closing punctuation stick to the word.
		case prev == breakSpace || prev == breakZero:
			breaks[i] = true
		case prev == breakOpen:
			// Nothing separates an opener from what it opens.
		case prev == breakIdeographic || cur == breakIdeographic:
			breaks[i] = true
		}
	}
	return breaks
}
