package layout

// widthTolerance absorbs floating point noise in width comparisons: a
// line is considered to fit when it exceeds the budget by less than this
// many pixels.
const widthTolerance = 0.1

// WrapText re-flows the area so no line exceeds width pixels, preferring
// word boundaries and falling back to character splits for words wider
// than the budget. Spans created by splitting are marked BrokeFromPrev,
// and a space landing at the start of a wrapped line is swallowed.
//
// The area is left untouched when wrapping cannot make progress (a budget
// no character fits into) or when a span's metrics are inconsistent, in
// which case the error is returned.
func (a *Area[T]) WrapText(width float64) error {
	if width <= 0 || len(a.Lines) == 0 {
		return nil
	}
	if err := a.Validate(); err != nil {
		return err
	}
	rtl := a.isRTL()

	// Work on deep copies; a.Lines is replaced only on success.
	pending := make([]*Line[T], 0, len(a.Lines))
	for _, l := range a.Lines {
		pending = append(pending, l.clone())
	}
	if rtl {
		for i, j := 0, len(pending)-1; i < j; i, j = i+1, j-1 {
			pending[i], pending[j] = pending[j], pending[i]
		}
	}

	var result []*Line[T]
	current := &Line[T]{HardBreak: true}
	currentWidth := 0.0
	first := true
	failedNoAccept := false

	for len(pending) > 0 {
		line := pending[0]
		pending = pending[1:]

		if line.HardBreak && !first {
			result = append(result, current)
			current = &Line[T]{HardBreak: true}
			currentWidth = 0
		}
		first = false

		if width-(line.Width()+currentWidth) >= -widthTolerance {
			current.Spans = append(current.Spans, line.Spans...)
			currentWidth += line.Width()
			continue
		}
		if rtl {
			reverseSpans(line.Spans)
		}

		// Accept the spans that fit whole.
		overflow := -1
		for i, s := range line.Spans {
			sw := s.Width()
			if currentWidth+sw-width <= widthTolerance {
				currentWidth += sw
			} else {
				overflow = i
				break
			}
		}
		if overflow < 0 {
			current.Spans = append(current.Spans, line.Spans...)
			continue
		}
		approved := line.Spans[:overflow]
		rest := line.Spans[overflow:]

		if len(approved) == 0 {
			if failedNoAccept {
				// Two consecutive rounds placed nothing: give up and
				// keep the area as it was.
				return nil
			}
			failedNoAccept = true
		} else {
			failedNoAccept = false
		}
		current.Spans = append(current.Spans, approved...)

		// Split the overflowing span in reading order.
		span := rest[0]
		if rtl {
			span.Metrics.Reverse()
		}
		total := span.Metrics.Count()

		// Naive split: the longest prefix that fits.
		naive := 0
		for n := total - 1; n >= 1; n-- {
			if currentWidth+span.widthUntil(n)-width <= widthTolerance {
				naive = n
				break
			}
		}
		if naive == 0 && len(current.Spans) == 0 {
			// A single character wider than the budget is placed alone.
			naive = 1
		}

		// Prefer the furthest word boundary that still fits; trailing
		// spaces before the boundary do not count against the budget.
		split := 0
		breaks := breakOpportunities([]rune(span.Metrics.Value()))
		for i := 1; i < total; i++ {
			if !breaks[i] {
				continue
			}
			if currentWidth+span.widthUntil(trimTrailingSpaces(span, i))-width <= widthTolerance {
				split = i
			} else {
				break
			}
		}
		if split == 0 {
			split = naive
		}

		tail := span.Metrics.SplitOff(split)
		if rtl {
			span.Metrics.Reverse()
			tail.Reverse()
		}

		newSpan := span.clone()
		newSpan.Metrics = tail
		newSpan.BrokeFromPrev = true
		newSpan.SwallowLeadingSpace = leadingSpace(newSpan)

		if span.Metrics.Count() > 0 {
			current.Spans = append(current.Spans, span)
		}
		result = append(result, current)
		current = &Line[T]{}
		currentWidth = 0

		if newSpan.Metrics.Count() > 0 || len(rest) > 1 {
			newLine := &Line[T]{Spans: append([]*Span[T]{newSpan}, rest[1:]...)}
			if rtl {
				reverseSpans(newLine.Spans)
			}
			pending = append([]*Line[T]{newLine}, pending...)
		}

		if split != 0 {
			failedNoAccept = false
		}
	}

	if len(current.Spans) > 0 {
		result = append(result, current)
	}
	if len(result) == 0 || len(result[0].Spans) == 0 {
		return nil
	}
	a.Lines = result
	return nil
}

// UnwrapText merges soft-wrapped lines back together, rejoining spans
// that WrapText split and unhiding swallowed spaces. Hard lines stay
// separate.
func (a *Area[T]) UnwrapText() {
	if len(a.Lines) == 0 {
		return
	}
	var merged []*Line[T]
	for _, line := range a.Lines {
		if line.HardBreak || len(merged) == 0 {
			merged = append(merged, line)
			continue
		}
		prev := merged[len(merged)-1]
		rtl := prev.IsRTL() && line.IsRTL()
		for _, s := range line.Spans {
			s.SwallowLeadingSpace = false
			if rtl {
				// Visual order runs right to left: continuations sit in
				// front of the line they continue.
				if s.BrokeFromPrev && len(prev.Spans) > 0 {
					first := prev.Spans[0]
					joined := s.Metrics.Clone()
					joined.Append(first.Metrics)
					first.Metrics.Replace(joined)
					continue
				}
				s.BrokeFromPrev = false
				prev.Spans = append([]*Span[T]{s}, prev.Spans...)
				continue
			}
			if s.BrokeFromPrev && len(prev.Spans) > 0 {
				last := prev.Spans[len(prev.Spans)-1]
				last.Metrics.Append(s.Metrics)
				continue
			}
			s.BrokeFromPrev = false
			prev.Spans = append(prev.Spans, s)
		}
	}
	for _, l := range merged {
		l.HardBreak = true
		for _, s := range l.Spans {
			s.BrokeFromPrev = false
			s.SwallowLeadingSpace = false
		}
	}
	a.Lines = merged
}

// Ellipsis truncates the area to maxHeight, trims the last kept line
// until it fits maxWidth together with postfix, and appends postfix
// (typically "…") as a span styled like the line it terminates. Nothing
// is appended when nothing had to be dropped.
func (a *Area[T]) Ellipsis(maxWidth, maxHeight float64, postfix *Span[T]) {
	if len(a.Lines) == 0 || postfix == nil || postfix.Metrics == nil {
		return
	}

	keep := 0
	h := 0.0
	for _, line := range a.Lines {
		h += line.Height()
		if h-maxHeight > widthTolerance && keep > 0 {
			break
		}
		keep++
	}
	truncated := keep < len(a.Lines)
	a.Lines = a.Lines[:keep]
	for _, l := range a.Lines {
		l.HardBreak = true
		if len(l.Spans) > 0 && l.Spans[0].BrokeFromPrev {
			l.Spans[0].Metrics.TrimStart()
		}
	}

	last := a.Lines[keep-1]
	popped := false
	for last.Width()+postfix.Width()-maxWidth > widthTolerance && last.charCount() > 0 {
		tail := last.Spans[len(last.Spans)-1]
		tail.Metrics.Pop()
		if tail.Metrics.Count() == 0 {
			last.Spans = last.Spans[:len(last.Spans)-1]
		}
		popped = true
	}

	if truncated || popped {
		es := postfix.clone()
		es.BrokeFromPrev = false
		es.SwallowLeadingSpace = false
		last.Spans = append(last.Spans, es)
	}
}

func reverseSpans[T any](spans []*Span[T]) {
	for i, j := 0, len(spans)-1; i < j; i, j = i+1, j-1 {
		spans[i], spans[j] = spans[j], spans[i]
	}
}

// leadingSpace reports whether the span starts (in reading order) with a
// space character.
func leadingSpace[T any](s *Span[T]) bool {
	if s.Metrics == nil || s.Metrics.Count() == 0 {
		return false
	}
	runes := []rune(s.Metrics.Value())
	idx := 0
	if s.Metrics.IsRTL() {
		idx = len(runes) - 1
	}
	return runes[idx] == ' '
}

// trimTrailingSpaces returns n reduced by the run of spaces immediately
// before index n in the span's reading-order value.
func trimTrailingSpaces[T any](s *Span[T], n int) int {
	runes := []rune(s.Metrics.Value())
	for n > 0 && n <= len(runes) && runes[n-1] == ' ' {
		n--
	}
	return n
}
