package region

// runT2 sweeps every live region for exactly one predecessor P ≠ R and
// merges R into P: vertex lists union, successor/predecessor sets spliced,
// R dropped from the region set. Returns whether anything matched.
func (s *state[V]) runT2() bool {
	matched := false
	for _, idx := range s.sortedRegionIndices() {
		r, ok := s.regions[idx]
		if !ok {
			continue // removed by an earlier merge in this sweep
		}
		if len(r.Preds) != 1 {
			continue
		}
		var pIdx int
		for k := range r.Preds {
			pIdx = k
		}
		if pIdx == r.Index {
			continue // self-loop, T1's concern, not T2's
		}
		p, ok := s.regions[pIdx]
		if !ok {
			continue // shouldn't happen, but never merge into a dead region
		}

		s.mergeInto(r, p)
		matched = true
		s.log.Trace("region: T2 linear merge", "merged", idx, "into", pIdx)
	}
	return matched
}

// mergeInto absorbs r's members and edges into p, then removes r from the
// live region set.
func (s *state[V]) mergeInto(r, p *Region[V]) {
	// Redirect every edge r->successor to originate from p instead.
	for succIdx := range r.Succs {
		succ := s.regions[succIdx]
		delete(succ.Preds, r.Index)
		succ.Preds[p.Index] = struct{}{}
		p.Succs[succIdx] = struct{}{}
	}
	// The edge p->r (which existed because p was r's sole predecessor)
	// becomes internal; drop it from both sides.
	delete(p.Succs, r.Index)
	delete(p.Preds, r.Index)

	// Absorb membership.
	p.Members = append(p.Members, r.Members...)
	for _, v := range r.Members {
		s.regionOf[v] = p
	}

	delete(s.regions, r.Index)
}
