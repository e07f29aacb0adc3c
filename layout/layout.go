// Package layout arranges shaped text metrics into width-constrained
// lines: greedy word wrapping without hyphenation, RTL-aware span
// reordering, and ellipsis truncation.
package layout

import (
	"strings"

	"github.com/typekit/fontkit"
)

// Span is a run of uniformly styled text with its shaped metrics.
// The type parameter carries caller data (color, link target) through
// wrapping untouched.
type Span[T any] struct {
	// FontKey identifies the font the metrics were shaped with.
	FontKey fontkit.FontKey

	// Size is the font size in pixels.
	Size float64

	// LetterSpacing is extra per-character spacing in pixels.
	LetterSpacing float64

	// LineHeight overrides the font-derived line height when positive.
	LineHeight float64

	// BrokeFromPrev marks a span created by wrapping: it continues the
	// last span of the previous line.
	BrokeFromPrev bool

	// SwallowLeadingSpace hides the leading space of a span that starts
	// a wrapped line.
	SwallowLeadingSpace bool

	// Metrics holds the shaped characters of this span.
	Metrics *fontkit.TextMetrics

	// Payload is caller data carried through layout.
	Payload T
}

// clone deep-copies the span, including its metrics.
func (s *Span[T]) clone() *Span[T] {
	c := *s
	if s.Metrics != nil {
		c.Metrics = s.Metrics.Clone()
	}
	return &c
}

// swallowedIndex returns the character index hidden by
// SwallowLeadingSpace, or -1. For RTL metrics the leading character in
// reading order sits at the visual end.
func (s *Span[T]) swallowedIndex() int {
	if !s.SwallowLeadingSpace || s.Metrics == nil || s.Metrics.Count() == 0 {
		return -1
	}
	idx := 0
	if s.Metrics.IsRTL() {
		idx = s.Metrics.Count() - 1
	}
	if []rune(s.Metrics.Value())[idx] != ' ' {
		return -1
	}
	return idx
}

// Width returns the rendered width of the span in pixels.
func (s *Span[T]) Width() float64 {
	if s.Metrics == nil || s.Metrics.Count() == 0 {
		return 0
	}
	w := s.Metrics.Width(s.Size, s.LetterSpacing)
	if idx := s.swallowedIndex(); idx >= 0 {
		w -= s.Metrics.CharWidth(idx, s.Size, s.LetterSpacing)
	}
	return w
}

// widthUntil returns the width of the first n characters.
func (s *Span[T]) widthUntil(n int) float64 {
	if s.Metrics == nil {
		return 0
	}
	w := s.Metrics.WidthUntil(s.Size, s.LetterSpacing, n)
	if idx := s.swallowedIndex(); idx >= 0 && idx < n {
		w -= s.Metrics.CharWidth(idx, s.Size, s.LetterSpacing)
	}
	return w
}

// Height returns the line height of the span in pixels.
func (s *Span[T]) Height() float64 {
	if s.Metrics == nil {
		return 0
	}
	return s.Metrics.Height(s.Size, s.LineHeight)
}

// IsRTL reports whether every character of the span is right-to-left.
func (s *Span[T]) IsRTL() bool {
	return s.Metrics != nil && s.Metrics.IsRTL()
}

// Value returns the span's characters.
func (s *Span[T]) Value() string {
	if s.Metrics == nil {
		return ""
	}
	return s.Metrics.Value()
}

// Line is a horizontal run of spans. HardBreak marks lines that start at
// an explicit newline rather than at a wrap point.
type Line[T any] struct {
	Spans     []*Span[T]
	HardBreak bool
}

// NewLine builds a hard line from spans.
func NewLine[T any](spans ...*Span[T]) *Line[T] {
	return &Line[T]{Spans: spans, HardBreak: true}
}

func (l *Line[T]) clone() *Line[T] {
	c := &Line[T]{HardBreak: l.HardBreak, Spans: make([]*Span[T], 0, len(l.Spans))}
	for _, s := range l.Spans {
		c.Spans = append(c.Spans, s.clone())
	}
	return c
}

// Width returns the total span width of the line.
func (l *Line[T]) Width() float64 {
	w := 0.0
	for _, s := range l.Spans {
		w += s.Width()
	}
	return w
}

// Height returns the tallest span height of the line.
func (l *Line[T]) Height() float64 {
	h := 0.0
	for _, s := range l.Spans {
		if sh := s.Height(); sh > h {
			h = sh
		}
	}
	return h
}

// Value returns the concatenated span text of the line.
func (l *Line[T]) Value() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Value())
	}
	return sb.String()
}

// IsRTL reports whether every span of the line is right-to-left.
func (l *Line[T]) IsRTL() bool {
	if len(l.Spans) == 0 {
		return false
	}
	for _, s := range l.Spans {
		if !s.IsRTL() {
			return false
		}
	}
	return true
}

// charCount returns the number of characters on the line.
func (l *Line[T]) charCount() int {
	n := 0
	for _, s := range l.Spans {
		if s.Metrics != nil {
			n += s.Metrics.Count()
		}
	}
	return n
}

// Area is a block of lines: the unit wrap, unwrap and ellipsis operate
// on.
type Area[T any] struct {
	Lines []*Line[T]
}

// NewArea creates an empty area.
func NewArea[T any]() *Area[T] {
	return &Area[T]{}
}

// AddLine appends a line.
func (a *Area[T]) AddLine(line *Line[T]) {
	a.Lines = append(a.Lines, line)
}

// SpanCount returns the number of spans across all lines.
func (a *Area[T]) SpanCount() int {
	n := 0
	for _, l := range a.Lines {
		n += len(l.Spans)
	}
	return n
}

// Width returns the widest line width.
func (a *Area[T]) Width() float64 {
	w := 0.0
	for _, l := range a.Lines {
		if lw := l.Width(); lw > w {
			w = lw
		}
	}
	return w
}

// Height returns the sum of all line heights.
func (a *Area[T]) Height() float64 {
	h := 0.0
	for _, l := range a.Lines {
		h += l.Height()
	}
	return h
}

// Value returns the area text with lines joined by newlines.
func (a *Area[T]) Value() string {
	parts := make([]string, len(a.Lines))
	for i, l := range a.Lines {
		parts[i] = l.Value()
	}
	return strings.Join(parts, "\n")
}

// Validate reports the first metrics desynchronization in the area.
func (a *Area[T]) Validate() error {
	for _, l := range a.Lines {
		for _, s := range l.Spans {
			if s.Metrics == nil {
				continue
			}
			if err := s.Metrics.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// isRTL reports whether every span of every line is right-to-left.
func (a *Area[T]) isRTL() bool {
	sawSpan := false
	for _, l := range a.Lines {
		for _, s := range l.Spans {
			sawSpan = true
			if !s.IsRTL() {
				return false
			}
		}
	}
	return sawSpan
}
