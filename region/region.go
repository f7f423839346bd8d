package region

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jreduce/jreduce/digraph"
)

// Region is a group of digraph vertices merged during T1/T2/T3 reduction.
// Members is kept in first-seen order; callers that need a domain-specific
// ordering (e.g. ascending bytecode instruction index) re-sort their own
// view of Members rather than relying on this package's internal order.
type Region[V comparable] struct {
	Index   int
	Members []V

	// Preds and Succs hold the indices of neighboring regions. Index sets
	// are the quotient of the underlying digraph's vertex edges by region
	// membership, minus self-loops — maintained incrementally by T1/T2/T3,
	// not recomputed from scratch each round.
	Preds map[int]struct{}
	Succs map[int]struct{}
}

func newRegion[V comparable](index int) *Region[V] {
	return &Region[V]{
		Index: index,
		Preds: make(map[int]struct{}),
		Succs: make(map[int]struct{}),
	}
}

// AddVertexFunc is the sink a duplication callback uses to report each
// freshly created vertex and where it belongs.
type AddVertexFunc[V comparable] func(v V, loc digraph.InsertionLocation[V])

// CloneFunc is the duplication callback contract. Reduce
// invokes it exactly once per T3 step with:
//
//   - toClone: the members of the region being split (R).
//   - ownedBy: the members of the one predecessor region (P) whose edges
//     into R must be redirected to the clone.
//   - addVertex: sink for every vertex the callback creates.
//
// The callback's four obligations are exact: redirect every
// ownedBy→toClone edge to the new copy; mirror every toClone outgoing edge
// from the copy; touch no other edge; report every new vertex through
// addVertex.
type CloneFunc[V comparable] func(toClone map[V]struct{}, ownedBy map[V]struct{}, addVertex AddVertexFunc[V]) error

// state carries one Reduce invocation's mutable bookkeeping.
type state[V comparable] struct {
	g         digraph.RootedDigraph[V]
	clone     CloneFunc[V]
	log       hclog.Logger
	regionOf  map[V]*Region[V]
	regions   map[int]*Region[V]
	nextIndex int
	cloned    bool
}

// Option configures Reduce.
type Option[V comparable] func(*state[V])

// WithLogger attaches an hclog.Logger that receives trace-level messages
// each time T1, T2, or T3 fires. Defaults to hclog.NewNullLogger(), keeping
// Reduce silent and allocation-free on the logging path when unused.
func WithLogger[V comparable](l hclog.Logger) Option[V] {
	return func(s *state[V]) {
		if l != nil {
			s.log = l
		}
	}
}

// Reduce removes all irreducible loops from g by repeatedly applying T1
// (self-loop elimination), T2 (single-predecessor merge), and T3 (node
// splitting, via clone) until either a single region remains or no region
// has any predecessor left to reduce. It returns whether any T3 duplication
// was performed.
//
// clone may be nil only if g is already reducible without any split; Reduce
// returns ErrNilCloneFunc if a T3 step turns out to be necessary and clone is
// nil.
func Reduce[V comparable](g digraph.RootedDigraph[V], clone CloneFunc[V], opts ...Option[V]) (bool, error) {
	if g == nil {
		return false, ErrNilDigraph
	}

	s := &state[V]{
		g:        g,
		clone:    clone,
		log:      hclog.NewNullLogger(),
		regionOf: make(map[V]*Region[V]),
		regions:  make(map[int]*Region[V]),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRegions()

	for {
		if len(s.regions) <= 1 {
			break
		}
		if !s.anyPredecessors() {
			break
		}

		if s.runT1() {
			continue
		}
		if s.runT2() {
			continue
		}

		fired, err := s.runT3()
		if err != nil {
			return s.cloned, err
		}
		if !fired {
			break
		}
		s.cloned = true
	}

	return s.cloned, nil
}

// initRegions seeds one region per vertex and mirrors the digraph's vertex
// edges at region granularity.
func (s *state[V]) initRegions() {
	for _, v := range s.g.Vertices() {
		r := newRegion[V](s.nextIndex)
		r.Members = append(r.Members, v)
		s.regions[r.Index] = r
		s.regionOf[v] = r
		s.nextIndex++
	}
	for _, v := range s.g.Vertices() {
		rv := s.regionOf[v]
		for _, w := range s.g.SuccessorsOf(v) {
			rw := s.regionOf[w]
			if rw == rv {
				continue // self-loop at the vertex level; T1 removes at region level only if region-level too
			}
			rv.Succs[rw.Index] = struct{}{}
			rw.Preds[rv.Index] = struct{}{}
		}
	}
	// Vertex-level self-loops (v -> v) become region self-loops only when
	// two distinct vertices in the same initial region point at each
	// other, which cannot happen yet (one vertex per region); a true
	// single-vertex self-loop is recorded explicitly here so T1 can strip
	// it on the first sweep.
	for _, v := range s.g.Vertices() {
		rv := s.regionOf[v]
		for _, w := range s.g.SuccessorsOf(v) {
			if s.regionOf[w] == rv {
				rv.Succs[rv.Index] = struct{}{}
				rv.Preds[rv.Index] = struct{}{}
			}
		}
	}
}

// anyPredecessors reports whether at least one live region has a
// predecessor, the loop's secondary termination condition.
func (s *state[V]) anyPredecessors() bool {
	for _, r := range s.regions {
		if len(r.Preds) > 0 {
			return true
		}
	}
	return false
}

// sortedRegionIndices returns the indices of all live regions in ascending
// order, the stable iteration order every phase uses so results (and
// tie-breaks) are deterministic.
func (s *state[V]) sortedRegionIndices() []int {
	idx := make([]int, 0, len(s.regions))
	for i := range s.regions {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// memberSet returns the members of r as a set, for handing to CloneFunc.
func memberSet[V comparable](r *Region[V]) map[V]struct{} {
	set := make(map[V]struct{}, len(r.Members))
	for _, v := range r.Members {
		set[v] = struct{}{}
	}
	return set
}

func (s *state[V]) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
