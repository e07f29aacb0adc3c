package fontkit

// filterKind enumerates the progressive matching filters.
type filterKind uint8

const (
	filterFamily filterKind = iota
	filterItalic
	filterWeight
	filterStretch
	filterVariations
)

// filter is one step of the progressive matching pipeline.
type filter struct {
	kind       filterKind
	family     string
	italic     Italic
	weight     uint16
	stretch    uint16
	variations []Variation
}

// filtersForKey builds the ordered filter list for a request. Family is
// always first; unset fields contribute no filter. A weight wildcard is
// appended last so a candidate set that collapsed to a single entry on an
// earlier step is always picked up.
func filtersForKey(k FontKey) []filter {
	filters := []filter{{kind: filterFamily, family: k.Family}}
	if k.Italic != ItalicUnset {
		filters = append(filters, filter{kind: filterItalic, italic: k.Italic})
	}
	if k.Weight != 0 {
		filters = append(filters, filter{kind: filterWeight, weight: k.Weight})
	}
	if k.Stretch != 0 {
		filters = append(filters, filter{kind: filterStretch, stretch: k.Stretch})
	}
	if len(k.Variations) > 0 {
		filters = append(filters, filter{kind: filterVariations, variations: k.Variations})
	}
	return append(filters, filter{kind: filterWeight, weight: 0})
}

// runFilters narrows a candidate index set through the filter pipeline:
//   - exactly one survivor: done, return it
//   - zero survivors on the family filter: no match at all
//   - zero survivors on a later filter: discard that filter and keep the
//     previous set
//   - several survivors: keep narrowing
//
// The returned slice may still hold several candidates; the caller breaks
// the tie.
func runFilters(candidates []int, filters []filter, fulfils func(idx int, f filter) bool) []int {
	current := candidates
	for _, f := range filters {
		var next []int
		for _, idx := range current {
			if fulfils(idx, f) {
				next = append(next, idx)
			}
		}
		switch {
		case len(next) == 1:
			return next
		case len(next) == 0:
			if f.kind == filterFamily {
				return nil
			}
			// Over-constrained filter, keep the previous set.
		default:
			current = next
		}
	}
	return current
}

// closestCandidate breaks a tie between several surviving candidates
// deterministically: smallest weight distance to the request, then
// smallest stretch distance, then earliest registration.
//
// keyOf must return the candidate's defaulted key; the input order of
// candidates is the registration order.
func closestCandidate(request FontKey, candidates []int, keyOf func(idx int) FontKey) int {
	request = request.Defaulted()
	best := -1
	var bestWeight, bestStretch int
	for _, idx := range candidates {
		key := keyOf(idx)
		dw := absDiff(key.Weight, request.Weight)
		ds := absDiff(key.Stretch, request.Stretch)
		if best == -1 || dw < bestWeight || (dw == bestWeight && ds < bestStretch) {
			best = idx
			bestWeight = dw
			bestStretch = ds
		}
	}
	return best
}

func absDiff(a, b uint16) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
