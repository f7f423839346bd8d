package cloner

import "sort"

// splitTryCatchOverOwnedBy implements phase 6: for every
// try-catch entry whose handler was cloned, inspect how the ownedBy index
// range overlaps the entry's [Start, End) range and split or retarget it
// per the five-case enumeration. ownedBy is treated as the single span from
// its lowest to its highest position; try-catch entries are processed in
// descending order of Start so earlier splits don't perturb the boundaries
// still-to-process entries depend on.
func (s *session) splitTryCatchOverOwnedBy() {
	if len(s.origOwned) == 0 {
		return
	}

	// Handle in descending order of try-catch start so a split at a higher
	// index never perturbs the boundary of one still to be processed.
	order := make([]int, len(*s.c.Tries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return (*s.c.Tries)[order[a]].Start > (*s.c.Tries)[order[b]].Start })

	for _, idx := range order {
		// Recomputed per entry: earlier splits in this loop may have
		// inserted boundary labels that shift subsequent positions.
		ownedStart := s.current(s.origOwned[0])
		ownedEnd := s.current(s.origOwned[len(s.origOwned)-1]) // inclusive

		t := (*s.c.Tries)[idx]

		if _, cloned := cloneIndexOfHandler(s, t.Handler); !cloned {
			continue
		}
		clonedHandler := cloneIndexOfHandlerValue(s, t.Handler)

		switch {
		case ownedStart <= t.Start && t.End <= ownedEnd+1:
			// Case A: ownedBy wholly contains the try range.
			(*s.c.Tries)[idx].Handler = clonedHandler

		case ownedEnd < t.Start || ownedStart >= t.End:
			// Case B: disjoint, no action.

		case ownedStart <= t.Start && ownedEnd+1 < t.End:
			// Case C: owned range ends inside T.
			boundary := ownedEnd + 1
			s.insertTrySplitBoundary(boundary)
			first := t
			first.End = boundary
			first.Handler = clonedHandler
			second := t
			second.Start = boundary
			(*s.c.Tries)[idx] = first
			*s.c.Tries = append(*s.c.Tries, second)

		case ownedStart > t.Start && ownedEnd+1 >= t.End:
			// Case D: owned range starts inside T (mirror of C).
			s.insertTrySplitBoundary(ownedStart)
			first := t
			first.End = ownedStart
			second := t
			second.Start = ownedStart
			second.Handler = clonedHandler
			(*s.c.Tries)[idx] = first
			*s.c.Tries = append(*s.c.Tries, second)

		default:
			// Case E: owned range strictly interior, split twice.
			s.insertTrySplitBoundary(ownedStart)
			s.insertTrySplitBoundary(ownedEnd + 1)
			first := t
			first.End = ownedStart
			middle := t
			middle.Start = ownedStart
			middle.End = ownedEnd + 1
			middle.Handler = clonedHandler
			last := t
			last.Start = ownedEnd + 1
			(*s.c.Tries)[idx] = first
			*s.c.Tries = append(*s.c.Tries, middle, last)
		}
	}
}

// insertTrySplitBoundary ensures a label exists at the given current
// instruction position, so the newly split try-catch entries have a
// concrete label to reference as a boundary. The label itself carries no
// control-flow meaning for non-cloned successors; it exists purely as an
// addressable split point, matching how real bytecode writers address
// try-catch boundaries by label rather than raw index.
func (s *session) insertTrySplitBoundary(pos int) {
	if pos >= s.c.List.Len() {
		return
	}
	s.labelBefore(pos)
}

// cloneIndexOfHandler reports whether the given (current-position) handler
// index corresponds to one of this call's toClone vertices, by comparing
// against each candidate's current, possibly-shifted position.
func cloneIndexOfHandler(s *session, handler int) (int, bool) {
	for i, x := range s.origToClone {
		if s.current(x) == handler {
			return i, true
		}
	}
	return -1, false
}

func cloneIndexOfHandlerValue(s *session, handler int) int {
	i, _ := cloneIndexOfHandler(s, handler)
	return s.cloneCur[i]
}
