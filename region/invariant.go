package region

import "fmt"

// checkInvariant re-derives each of the three touched regions' successor
// and predecessor sets directly from the underlying digraph's current
// vertex edges and confirms they match the region-level bookkeeping T3 just
// produced. This is the splitter's main defense against a buggy duplication
// callback: a callback that forgets to redirect an edge, or
// redirects one it shouldn't have, is caught here rather than silently
// producing a wrong CFG.
func (s *state[V]) checkInvariant(touched ...*Region[V]) error {
	for _, r := range touched {
		wantSuccs := make(map[int]struct{})
		wantPreds := make(map[int]struct{})
		for _, v := range r.Members {
			for _, w := range s.g.SuccessorsOf(v) {
				if rw := s.regionOf[w]; rw != nil && rw != r {
					wantSuccs[rw.Index] = struct{}{}
				}
			}
			for _, w := range s.g.PredecessorsOf(v) {
				if rw := s.regionOf[w]; rw != nil && rw != r {
					wantPreds[rw.Index] = struct{}{}
				}
			}
		}
		if !sameSet(wantSuccs, r.Succs) {
			return fmt.Errorf("%w: region %d successors = %v, want %v", ErrInvariantViolation, r.Index, setKeys(r.Succs), setKeys(wantSuccs))
		}
		if !sameSet(wantPreds, r.Preds) {
			return fmt.Errorf("%w: region %d predecessors = %v, want %v", ErrInvariantViolation, r.Index, setKeys(r.Preds), setKeys(wantPreds))
		}
	}
	return nil
}

func sameSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func setKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
