package fontkit

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Contextual shaping for Arabic via Unicode presentation forms
// (U+FE70..U+FEFC). Each letter in the U+0621..U+064A range is rewritten
// to its final, initial, medial or isolated form depending on whether its
// neighbors connect to it. The lam-alef pairs collapse into the dedicated
// ligature codepoints.

const (
	formFinal = iota
	formInitial
	formMedial
	formIsolated
)

// arabicForms maps letters 0x621..0x64A (row = codepoint - 0x621) to
// their [final, initial, medial, isolated] presentation forms. Letters
// without presentation forms map to themselves.
var arabicForms = [42][4]rune{
	{0xfe80, 0xfe80, 0xfe80, 0xfe80}, // 0x621 hamza
	{0xfe82, 0xfe81, 0xfe82, 0xfe81},
	{0xfe84, 0xfe83, 0xfe84, 0xfe83},
	{0xfe86, 0xfe85, 0xfe86, 0xfe85},
	{0xfe88, 0xfe87, 0xfe88, 0xfe87},
	{0xfe8a, 0xfe8b, 0xfe8c, 0xfe89},
	{0xfe8e, 0xfe8d, 0xfe8e, 0xfe8d},
	{0xfe90, 0xfe91, 0xfe92, 0xfe8f}, // 0x628 beh
	{0xfe94, 0xfe93, 0xfe93, 0xfe93},
	{0xfe96, 0xfe97, 0xfe98, 0xfe95}, // 0x62A teh
	{0xfe9a, 0xfe9b, 0xfe9c, 0xfe99},
	{0xfe9e, 0xfe9f, 0xfea0, 0xfe9d},
	{0xfea2, 0xfea3, 0xfea4, 0xfea1},
	{0xfea6, 0xfea7, 0xfea8, 0xfea5},
	{0xfeaa, 0xfea9, 0xfeaa, 0xfea9},
	{0xfeac, 0xfeab, 0xfeac, 0xfeab}, // 0x630 thal
	{0xfeae, 0xfead, 0xfeae, 0xfead},
	{0xfeb0, 0xfeaf, 0xfeb0, 0xfeaf},
	{0xfeb2, 0xfeb3, 0xfeb4, 0xfeb1},
	{0xfeb6, 0xfeb7, 0xfeb8, 0xfeb5},
	{0xfeba, 0xfebb, 0xfebc, 0xfeb9},
	{0xfebe, 0xfebf, 0xfec0, 0xfebd},
	{0xfec2, 0xfec3, 0xfec4, 0xfec1},
	{0xfec6, 0xfec7, 0xfec8, 0xfec5}, // 0x638 zah
	{0xfeca, 0xfecb, 0xfecc, 0xfec9},
	{0xfece, 0xfecf, 0xfed0, 0xfecd}, // 0x63A ghain
	{0x63b, 0x63b, 0x63b, 0x63b},
	{0x63c, 0x63c, 0x63c, 0x63c},
	{0x63d, 0x63d, 0x63d, 0x63d},
	{0x63e, 0x63e, 0x63e, 0x63e},
	{0x63f, 0x63f, 0x63f, 0x63f},
	{0x640, 0x640, 0x640, 0x640}, // 0x640 tatweel
	{0xfed2, 0xfed3, 0xfed4, 0xfed1},
	{0xfed6, 0xfed7, 0xfed8, 0xfed5},
	{0xfeda, 0xfedb, 0xfedc, 0xfed9},
	{0xfede, 0xfedf, 0xfee0, 0xfedd},
	{0xfee2, 0xfee3, 0xfee4, 0xfee1},
	{0xfee6, 0xfee7, 0xfee8, 0xfee5},
	{0xfeea, 0xfeeb, 0xfeec, 0xfee9},
	{0xfeee, 0xfeed, 0xfeee, 0xfeed}, // 0x648 waw
	{0xfef0, 0xfeef, 0xfef0, 0xfeef},
	{0xfef2, 0xfef3, 0xfef4, 0xfef1}, // 0x64A yeh
}

// lamAlefBehind lists the alef variants that form a lam-alef ligature,
// row-aligned with lamAlefForms.
var lamAlefBehind = [4]rune{0x622, 0x623, 0x625, 0x627}

// lamAlefForms holds the [isolated, final] lam-alef ligatures.
var lamAlefForms = [4][2]rune{
	{0xFEF5, 0xFEF6},
	{0xFEF7, 0xFEF8},
	{0xFEF9, 0xFEFA},
	{0xFEFB, 0xFEFC},
}

// arabicFrontSet holds the letters that connect forward (to the letter
// after them in reading order).
var arabicFrontSet = [...]rune{
	0x62c, 0x62d, 0x62e, 0x647, 0x639, 0x63a, 0x641, 0x642, 0x62b, 0x635, 0x636, 0x637, 0x643,
	0x645, 0x646, 0x62a, 0x644, 0x628, 0x64a, 0x633, 0x634, 0x638, 0x626,
}

// arabicBehindSet holds the letters that connect backward.
var arabicBehindSet = [...]rune{
	0x62c, 0x62d, 0x62e, 0x647, 0x639, 0x63a, 0x641, 0x642, 0x62b, 0x635, 0x636, 0x637, 0x643,
	0x645, 0x646, 0x62a, 0x644, 0x628, 0x64a, 0x633, 0x634, 0x638, 0x626, 0x627, 0x623, 0x625,
	0x622, 0x62f, 0x630, 0x631, 0x632, 0x648, 0x624, 0x629, 0x649,
}

func inFrontSet(r rune) bool {
	for _, c := range arabicFrontSet {
		if c == r {
			return true
		}
	}
	return false
}

func inBehindSet(r rune) bool {
	for _, c := range arabicBehindSet {
		if c == r {
			return true
		}
	}
	return false
}

func needsShaping(r rune) bool { return r >= 0x621 && r <= 0x64A }

// zeroWidthMark reports combining marks that take no horizontal space and
// must not break a ligature between their neighbors.
func zeroWidthMark(r rune) bool {
	return (r >= 0x610 && r <= 0x61A) ||
		(r >= 0x64B && r <= 0x65F) ||
		r == 0x670 ||
		(r >= 0x6D6 && r <= 0x6ED)
}

// shapeLetter picks the presentation form of curr given its neighbors in
// reading order. front is the previous letter, behind the next; 0 means
// none.
func shapeLetter(curr, front, behind rune) rune {
	forms := arabicForms[curr-0x621]
	switch {
	case inFrontSet(front) && inBehindSet(behind):
		return forms[formMedial]
	case inFrontSet(front):
		return forms[formFinal]
	case inBehindSet(behind):
		return forms[formInitial]
	default:
		return forms[formIsolated]
	}
}

// lamAlefLigature returns the ligature for lam followed by behind, or 0
// if the pair does not ligate.
func lamAlefLigature(front, behind rune) rune {
	for i, alef := range lamAlefBehind {
		if alef == behind {
			if inFrontSet(front) {
				return lamAlefForms[i][1]
			}
			return lamAlefForms[i][0]
		}
	}
	return 0
}

// ContainsArabic reports whether the string has any Arabic-script rune.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// FixArabicLigatures rewrites Arabic letters to their contextual
// presentation forms. Zero-width vowel marks are carried over without
// breaking the ligature between their neighbors. The input is NFC
// normalized first; text already in presentation forms passes through
// unchanged, so the transform is idempotent.
func FixArabicLigatures(text string) string {
	var res, vowels strings.Builder

	runes := []rune(norm.NFC.String(text))
	pos := 0
	next := func() (rune, bool) {
		if pos >= len(runes) {
			return 0, false
		}
		r := runes[pos]
		pos++
		return r, true
	}

	var front rune
	behind, behindOK := next()
	curr, currOK := behind, behindOK

	for currOK {
		if vowels.Len() > 0 {
			res.WriteString(vowels.String())
			vowels.Reset()
		}
		cha := curr
		behind, behindOK = next()
		// Buffer a zero-width mark and look one further ahead, so the
		// mark does not hide the real neighbor.
		if behindOK && zeroWidthMark(behind) {
			vowels.WriteRune(behind)
			behind, behindOK = next()
		}

		switch {
		case needsShaping(cha) && cha == 0x644 && lamAlefLigature(front, behind) != 0:
			res.WriteRune(lamAlefLigature(front, behind))
			// The alef is consumed by the ligature.
			curr, currOK = behind, behindOK
			behind, behindOK = next()
		case needsShaping(cha):
			res.WriteRune(shapeLetter(cha, front, behind))
		default:
			res.WriteRune(cha)
		}
		front = curr
		curr, currOK = behind, behindOK
	}

	if vowels.Len() > 0 {
		res.WriteString(vowels.String())
	}
	return res.String()
}
