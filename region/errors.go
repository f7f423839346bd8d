// errors.go — sentinel errors for the region package.
//
// Error policy:
//   - Only sentinel variables are exposed at package level.
//   - Callers use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are never wrapped with formatted strings at definition site;
//     call sites attach context with fmt.Errorf("...: %w", ErrX).
package region

import "errors"

// ErrInvariantViolation indicates the region-edge consistency check run
// after a T3 step found region edges that disagree with the underlying
// digraph's vertex edges. This is the splitter's main defense against a
// buggy duplication callback and is always a fatal bug, never a recoverable
// condition.
var ErrInvariantViolation = errors.New("region: region edges disagree with underlying digraph edges")

// ErrStillIrreducible names the condition of a second Reduce pass over a
// graph that was supposedly already reduced still finding a region with two
// or more predecessors. No function in this package returns it; classio's
// StructuralVerifier reports that condition with its own sentinel.
var ErrStillIrreducible = errors.New("region: graph still irreducible after reduction")

// ErrNilDigraph indicates Reduce was called with a nil RootedDigraph.
var ErrNilDigraph = errors.New("region: nil digraph")

// ErrNilCloneFunc indicates Reduce was called with a nil duplication
// callback while the graph actually requires a T3 step; a graph that never
// needs splitting may legally pass a nil callback.
var ErrNilCloneFunc = errors.New("region: duplication required but callback is nil")
