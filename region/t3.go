package region

import (
	"sort"

	"github.com/jreduce/jreduce/digraph"
)

// runT3 performs one node-split step: it chooses the region R with at least
// two predecessors minimizing pickSplitCandidate's heuristic weight (ties
// broken by first-encountered, i.e. lowest region index, since
// sortedRegionIndices is ascending and only a strictly smaller weight
// replaces the incumbent), then clones R once per predecessor other than the
// first (the "owner", which keeps the original region). Returns whether a
// region was actually split.
func (s *state[V]) runT3() (bool, error) {
	target, ok := s.pickSplitCandidate()
	if !ok {
		return false, nil
	}

	// preds[0] is the owner: it keeps the original region and is never
	// passed to splitOnce. Every other predecessor gets its own clone.
	preds := s.sortedPredIndices(target)
	for _, predIdx := range preds[1:] {
		p, ok := s.regions[predIdx]
		if !ok {
			continue // a previous sub-split in this step already absorbed it
		}
		r, ok := s.regions[target]
		if !ok {
			break // target fully resolved (shouldn't happen before preds drained)
		}
		if err := s.splitOnce(r, p); err != nil {
			return true, err
		}
	}

	s.log.Trace("region: T3 node split", "region", target, "predecessors", len(preds))
	return true, nil
}

// pickSplitCandidate finds the region to split this T3 step: among regions
// with two or more predecessors, the one minimizing
// (len(Preds)-1)*len(Members) — the number of clones a split would produce
// times the size of each clone — since splitting the cheapest candidate by
// that measure first minimizes total duplication over the whole reduction.
func (s *state[V]) pickSplitCandidate() (int, bool) {
	bestIdx := -1
	bestWeight := -1
	for _, idx := range s.sortedRegionIndices() {
		r := s.regions[idx]
		if len(r.Preds) < 2 {
			continue
		}
		weight := (len(r.Preds) - 1) * len(r.Members)
		if bestIdx == -1 || weight < bestWeight {
			bestIdx = idx
			bestWeight = weight
		}
	}
	if bestIdx == -1 {
		return 0, false
	}
	return bestIdx, true
}

func (s *state[V]) sortedPredIndices(regionIdx int) []int {
	r := s.regions[regionIdx]
	out := make([]int, 0, len(r.Preds))
	for k := range r.Preds {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// splitOnce performs a single R/P split: create a fresh region R′ owned by
// predecessor p, invoke the duplication callback, and update region edges
// per the standard node-splitting update rules. It then runs the
// region-edge consistency check, enforced here as the splitter's defense
// against a buggy callback.
func (s *state[V]) splitOnce(r, p *Region[V]) error {
	if s.clone == nil {
		return ErrNilCloneFunc
	}

	rPrime := newRegion[V](s.nextIndex)
	s.nextIndex++
	rPrime.Preds[p.Index] = struct{}{}
	for succIdx := range r.Succs {
		rPrime.Succs[succIdx] = struct{}{}
	}
	s.regions[rPrime.Index] = rPrime

	toClone := memberSet(r)
	ownedBy := memberSet(p)

	addVertex := func(v V, loc digraph.InsertionLocation[V]) {
		switch loc.Kind {
		case digraph.KindAppend:
			rPrime.Members = append(rPrime.Members, v)
			s.regionOf[v] = rPrime
		case digraph.KindBefore, digraph.KindAfter:
			target, ok := s.regionOf[loc.Anchor]
			if !ok {
				// Anchor not yet known to any region (shouldn't happen for
				// a well-behaved callback); fall back to the clone region
				// rather than losing the vertex.
				target = rPrime
			}
			target.Members = append(target.Members, v)
			s.regionOf[v] = target
		}
	}

	if err := s.clone(toClone, ownedBy, addVertex); err != nil {
		return err
	}

	// Update region edges:
	//   P.succs ← (P.succs \ {R}) ∪ {R′}
	//   R.preds \= {P}
	//   every s ∈ succs(R): s.preds ∪= {R′}
	delete(p.Succs, r.Index)
	p.Succs[rPrime.Index] = struct{}{}
	delete(r.Preds, p.Index)
	for succIdx := range r.Succs {
		succ := s.regions[succIdx]
		succ.Preds[rPrime.Index] = struct{}{}
	}

	return s.checkInvariant(r, rPrime, p)
}
