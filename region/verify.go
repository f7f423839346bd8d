package region

import "github.com/jreduce/jreduce/digraph"

// IsReducible reports whether g can be driven to a single region using only
// T1/T2 — i.e. contains no irreducible loop. It is Reduce run with a nil
// clone callback: if T3 would ever be needed, Reduce returns
// ErrNilCloneFunc, which IsReducible translates to false/nil rather than
// propagating as an error. Any other error (an invariant violation cannot
// occur here since no clone runs) is returned unchanged.
//
// Used by the region and cloner tests to confirm a reduced graph needs no
// further split. classio's StructuralVerifier makes the same check by
// running Reduce with a callback that always fails.
func IsReducible[V comparable](g digraph.RootedDigraph[V], opts ...Option[V]) (bool, error) {
	fired, err := Reduce[V](g, nil, opts...)
	if err == ErrNilCloneFunc {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !fired, nil
}
