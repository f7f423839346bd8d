package classio

import (
	"errors"
	"fmt"

	"github.com/jreduce/jreduce/cfg"
	"github.com/jreduce/jreduce/internal/typegraph"
	"github.com/jreduce/jreduce/region"
)

// Verifier is the injected bytecode verifier contract: a bytecode verifier
// callable on the rewritten form. A production implementation would invoke
// a real JVM-spec verifier; StructuralVerifier checks the invariants this
// module's own transform is responsible for.
type Verifier interface {
	Verify(m MethodUnit) error
}

// StructuralVerifier re-runs the CFG builder and a second region-reduction
// pass on a method's rewritten form, rejecting it unless the pass reports
// no clones and the try-catch table still satisfies Start < End —
// verifier-clean, idempotent output, short of a real stack-map/type-level
// JVM verifier, which is out of scope for this module.
type StructuralVerifier struct {
	// TypeGraph, when non-nil, is the driver's shared class-hierarchy
	// cache: for every try-catch entry whose exception type is one of the
	// classes this run has already seen, Verify additionally rejects a
	// circular supertype chain on that type. Left nil, this check is
	// skipped entirely (e.g. in tests that verify a method in isolation).
	TypeGraph *typegraph.Graph
}

// Verify implements Verifier.
func (sv StructuralVerifier) Verify(m MethodUnit) error {
	for _, t := range m.Tries {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrVerifierRejected, err)
		}
		if sv.TypeGraph != nil && t.Type != "" && sv.TypeGraph.HasClass(t.Type) {
			if cycle, found := sv.TypeGraph.CircularInheritance(t.Type); found {
				return fmt.Errorf("%w: exception type %s has a circular supertype chain: %v", ErrVerifierRejected, t.Type, cycle)
			}
		}
	}

	g, err := cfg.Build(m.List, m.Tries)
	if err != nil {
		return fmt.Errorf("%w: CFG rebuild failed: %v", ErrVerifierRejected, err)
	}

	fired, err := region.Reduce[int](g.Combined(), notReducibleClone)
	if errors.Is(err, errStillIrreducible) {
		return fmt.Errorf("%w: rewritten method is not reducible", ErrVerifierRejected)
	}
	if err != nil {
		return fmt.Errorf("%w: region analysis failed: %v", ErrVerifierRejected, err)
	}
	if fired {
		// Unreachable in practice: notReducibleClone always errors before
		// Reduce can report a completed split. Kept as a second line of
		// defense against a future Reduce change that tolerates a nil
		// first-step error.
		return fmt.Errorf("%w: rewritten method is not reducible", ErrVerifierRejected)
	}

	return nil
}

// errStillIrreducible is notReducibleClone's sentinel, distinguishing "the
// rewrite is still irreducible" (expected, reported as a verifier
// rejection) from a genuine region-analysis error (an engine bug, reported
// separately) to Verify's caller.
var errStillIrreducible = errors.New("classio: region split requested during verification")

// notReducibleClone lets Verify reuse region.Reduce purely as a
// reducibility check: StructuralVerifier never expects a real split to
// fire on already-rewritten output, so the clone callback is never invoked
// on a well-formed rewrite; if it is, the rewrite failed to reduce.
func notReducibleClone(toClone, ownedBy map[int]struct{}, addVertex region.AddVertexFunc[int]) error {
	return errStillIrreducible
}
