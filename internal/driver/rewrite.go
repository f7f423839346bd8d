package driver

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jreduce/jreduce/bytecode/cloner"
	"github.com/jreduce/jreduce/cfg"
	"github.com/jreduce/jreduce/classio"
	"github.com/jreduce/jreduce/region"
)

// Rewriter drives one method's CFG through the region splitter until it's
// reducible, then hands the result to a Verifier: per method, the CFG
// builder produces a graph, the region splitter repeatedly calls the
// instruction cloner, and the result is checked against a concrete
// verifier wired in at this package's boundary.
type Rewriter struct {
	Verifier classio.Verifier
	Log      hclog.Logger
}

// NewRewriter returns a Rewriter with the StructuralVerifier and a null
// logger; callers override either via the struct fields.
func NewRewriter() *Rewriter {
	return &Rewriter{Verifier: classio.StructuralVerifier{}, Log: hclog.NewNullLogger()}
}

// RewriteMethod builds m's CFG, splits it into a reducible form if needed,
// and verifies the result. It mutates m.List/m.Tries in place via the
// cloner and returns whether any duplication occurred.
func (rw *Rewriter) RewriteMethod(m *classio.MethodUnit) (bool, error) {
	g, err := cfg.Build(m.List, m.Tries)
	if err != nil {
		return false, fmt.Errorf("building CFG for %s: %w", m.Name, err)
	}

	cl := cloner.New(m.List, &m.Tries, g)

	fired, err := region.Reduce[int](g.Combined(), cl.CloneFunc(), region.WithLogger[int](rw.Log))
	if err != nil {
		return false, fmt.Errorf("reducing %s: %w", m.Name, err)
	}

	if rw.Verifier != nil {
		if err := rw.Verifier.Verify(*m); err != nil {
			return fired, fmt.Errorf("%w: %s: %v", ErrVerificationFailed, m.Name, err)
		}
	}

	return fired, nil
}

// RewriteClass reduces every method of unit in place, short-circuiting on
// the first method that fails verification — a malformed or unverifiable
// method makes the whole class's rewrite untrustworthy. The "others
// continue" contract applies at the file level, not within one class's
// methods.
func RewriteClass(rw *Rewriter, unit *classio.ClassUnit) (anyRewritten bool, err error) {
	for i := range unit.Methods {
		fired, rerr := rw.RewriteMethod(&unit.Methods[i])
		if rerr != nil {
			return anyRewritten, rerr
		}
		anyRewritten = anyRewritten || fired
	}
	return anyRewritten, nil
}
