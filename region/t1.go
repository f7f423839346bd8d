package region

// runT1 sweeps every live region for a self-edge (R ∈ preds(R)) and removes
// it from both the successor and predecessor side. Returns whether anything
// matched, so Reduce's main loop knows to restart from T1 rather than
// falling through to T2/T3.
func (s *state[V]) runT1() bool {
	matched := false
	for _, idx := range s.sortedRegionIndices() {
		r, ok := s.regions[idx]
		if !ok {
			continue // removed by an earlier match in this sweep
		}
		if _, loop := r.Preds[r.Index]; !loop {
			continue
		}
		delete(r.Preds, r.Index)
		delete(r.Succs, r.Index)
		matched = true
		s.log.Trace("region: T1 self-loop eliminated", "region", r.Index)
	}
	return matched
}
