package fontkit

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

// bidiReorder resolves the bidi runs of text paragraph by paragraph and
// returns the runes in visual order together with one embedding level per
// rune. When the text holds no right-to-left run at all the input comes
// back untouched with every level set to LevelLTR.
func bidiReorder(text string) (visual string, levels []Level, hasRTL bool) {
	paragraphs := strings.Split(text, "\n")
	var sb strings.Builder

	for pi, para := range paragraphs {
		if pi > 0 {
			sb.WriteByte('\n')
			levels = append(levels, LevelLTR)
		}
		if para == "" {
			continue
		}

		var p bidi.Paragraph
		p.SetString(para)
		ordering, err := p.Order()
		if err != nil {
			sb.WriteString(para)
			for range para {
				levels = append(levels, LevelLTR)
			}
			continue
		}

		for i := 0; i < ordering.NumRuns(); i++ {
			run := ordering.Run(i)
			runes := []rune(run.String())
			level := LevelLTR
			if run.Direction() == bidi.RightToLeft {
				level = LevelRTL
				hasRTL = true
				for a, b := 0, len(runes)-1; a < b; a, b = a+1, b-1 {
					runes[a], runes[b] = runes[b], runes[a]
				}
			}
			for _, r := range runes {
				sb.WriteRune(r)
				levels = append(levels, level)
			}
		}
	}

	if !hasRTL {
		levels = make([]Level, len([]rune(text)))
		return text, levels, false
	}
	return sb.String(), levels, true
}

// shapeText measures text against a single face: Arabic contextual forms,
// bidi reordering, NFC normalization, then one positioned entry per
// character with kerning against the previous glyph. Characters without a
// glyph are marked missing with a 1x1 placeholder box.
func shapeText(h FaceHandle, text string) *TextMetrics {
	if ContainsArabic(text) {
		text = FixArabicLigatures(text)
	}
	// Normalize before resolving levels so composing sequences cannot
	// shift the rune-to-level alignment.
	text = norm.NFC.String(text)
	visual, levels, _ := bidiReorder(text)

	upem := h.UnitsPerEm()
	ascender := h.Ascender()
	content := ascender - h.Descender()
	t := &TextMetrics{
		units:         upem,
		ascender:      ascender,
		contentHeight: content,
		lineGap:       h.LineGap(),
	}

	subtables := h.KernSubtables()
	var prev GlyphID
	havePrev := false

	for i, r := range []rune(visual) {
		if r == '\n' {
			havePrev = false
			continue
		}
		level := LevelUnset
		if i < len(levels) {
			level = levels[i]
		}

		cm := CharMetrics{Rune: r, Units: upem, Height: content}
		gid, ok := h.GlyphIndex(r)
		if !ok {
			cm.Missing = true
			cm.BBox = Rect{XMin: 0, YMin: 0, XMax: 1, YMax: 1}
		} else {
			cm.Glyph = gid
			if adv, aok := h.GlyphAdvance(gid); aok {
				cm.Advance = adv
			}
			if bb, bok := h.GlyphBoundingBox(gid); bok {
				cm.BBox = bb
			} else {
				// Blank glyph (space): synthesize a box from the advance.
				cm.BBox = Rect{XMin: 0, YMin: 0, XMax: int16(cm.Advance), YMax: int16(upem)}
			}
			cm.LSB = h.GlyphSideBearing(gid)
		}

		var kerning int16
		if havePrev && ok {
			// Later subtables override earlier ones for the same pair.
			for _, s := range subtables {
				if !s.Horizontal() || s.Variable() {
					continue
				}
				if v, kok := s.Lookup(prev, gid); kok {
					kerning = v
				}
			}
		}

		t.positions = append(t.positions, PositionedChar{Metrics: cm, Kerning: kerning, Level: level})
		t.value = append(t.value, r)
		prev, havePrev = gid, ok
	}
	return t
}
