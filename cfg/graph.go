package cfg

import (
	"github.com/jreduce/jreduce/bytecode"
	"github.com/jreduce/jreduce/digraph"
)

// Graph is one method's control-flow graph: instructions are vertices.
// Edge sets are computed and stored by instruction list position
// internally (the natural coordinate system for an adjacency walk), but
// every method exposed outside this package speaks in stable instruction
// IDs, not positions — so a vertex identity handed to the region splitter
// stays valid across the cloner's own position-shifting inserts, up to
// and including the ResetEdges call that follows them. Normal control
// edges (fall-through + explicit jumps/switches) and exception edges
// (try-catch coverage) are kept in separate sets, because cloning rewires
// the two edge kinds differently.
type Graph struct {
	list  *bytecode.InstructionList
	tries []bytecode.TryCatchEntry

	successors      map[int]map[int]struct{}
	predecessors    map[int]map[int]struct{}
	catchSuccessors map[int]map[int]struct{}
	tryPredecessors map[int]map[int]struct{}

	// guaranteedAcyclic is a cheap short-circuit: true when every edge
	// observed so far goes strictly forward in list order. Cleared the
	// moment a backward or self edge is seen.
	guaranteedAcyclic bool

	root int
}

// Build constructs a Graph from a method's instruction list and try-catch
// table, running the abstract-interpretation walk below. The root vertex
// is always instruction index 0.
func Build(list *bytecode.InstructionList, tries []bytecode.TryCatchEntry) (*Graph, error) {
	g := &Graph{
		list:              list,
		tries:             tries,
		guaranteedAcyclic: true,
		root:              0,
	}
	if err := g.resetEdgesImpl(); err != nil {
		return nil, err
	}
	return g, nil
}

// resetEdgesImpl is the shared implementation behind Build and ResetEdges:
// it clears and recomputes every edge set from scratch, because
// maintaining live edge sets during instruction mutation is error-prone.
func (g *Graph) resetEdgesImpl() error {
	n := g.list.Len()
	g.successors = make(map[int]map[int]struct{}, n)
	g.predecessors = make(map[int]map[int]struct{}, n)
	g.catchSuccessors = make(map[int]map[int]struct{}, n)
	g.tryPredecessors = make(map[int]map[int]struct{}, n)
	g.guaranteedAcyclic = true

	for i := 0; i < n; i++ {
		g.successors[i] = make(map[int]struct{})
		g.predecessors[i] = make(map[int]struct{})
		g.catchSuccessors[i] = make(map[int]struct{})
		g.tryPredecessors[i] = make(map[int]struct{})
	}

	if err := g.walkNormalEdges(); err != nil {
		return err
	}
	if err := g.walkExceptionEdges(); err != nil {
		return err
	}
	return nil
}

// ResetEdges recomputes every edge set from the current instruction list
// and try-catch table, discarding whatever the graph previously held. The
// cloner calls this once after all seven phases finish, rather than
// maintaining edges incrementally during mutation.
func (g *Graph) ResetEdges() error {
	return g.resetEdgesImpl()
}

// walkNormalEdges is the basic-value abstract interpreter: a
// stack-value-free control-flow walk that only needs to know,
// for each instruction, its fall-through/jump/branch/switch/terminator
// shape.
func (g *Graph) walkNormalEdges() error {
	n := g.list.Len()
	for i := 0; i < n; i++ {
		ins := g.list.At(i)

		if !ins.IsTerminator() && i+1 < n {
			g.addNormalEdge(i, i+1)
		}

		for _, label := range ins.Targets {
			dst, err := g.list.IndexOfLabel(label)
			if err != nil {
				return err
			}
			g.addNormalEdge(i, dst)
		}
	}
	return nil
}

func (g *Graph) walkExceptionEdges() error {
	n := g.list.Len()
	for _, t := range g.tries {
		if t.Handler < 0 || t.Handler >= n {
			return ErrUnreachableTarget
		}
		for i := t.Start; i < t.End && i < n; i++ {
			g.catchSuccessors[i][t.Handler] = struct{}{}
			g.tryPredecessors[t.Handler][i] = struct{}{}
		}
	}
	return nil
}

func (g *Graph) addNormalEdge(src, dst int) {
	g.successors[src][dst] = struct{}{}
	g.predecessors[dst][src] = struct{}{}
	if dst <= src {
		g.guaranteedAcyclic = false
	}
}

// GuaranteedAcyclic reports whether every edge in the graph goes strictly
// forward in instruction-list order — a cheap proof the method has no
// loops at all, letting callers short-circuit region reduction entirely.
func (g *Graph) GuaranteedAcyclic() bool { return g.guaranteedAcyclic }

// posOfID resolves a stable instruction ID to its current list position;
// ok is false for an ID this graph's list no longer (or never) held.
func (g *Graph) posOfID(id int) (int, bool) {
	pos, err := g.list.IndexOfID(id)
	return pos, err == nil
}

// idsOf maps a set of list positions to the stable IDs of the
// instructions currently at those positions.
func (g *Graph) idsOf(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for pos := range m {
		out = append(out, g.list.At(pos).ID)
	}
	return out
}

// SuccessorsOf returns the normal-edge successors of instruction id.
func (g *Graph) SuccessorsOf(id int) []int {
	pos, ok := g.posOfID(id)
	if !ok {
		return nil
	}
	return g.idsOf(g.successors[pos])
}

// PredecessorsOf returns the normal-edge predecessors of instruction id.
func (g *Graph) PredecessorsOf(id int) []int {
	pos, ok := g.posOfID(id)
	if !ok {
		return nil
	}
	return g.idsOf(g.predecessors[pos])
}

// CatchSuccessorsOf returns the exception-edge successors (handlers) of
// instruction id.
func (g *Graph) CatchSuccessorsOf(id int) []int {
	pos, ok := g.posOfID(id)
	if !ok {
		return nil
	}
	return g.idsOf(g.catchSuccessors[pos])
}

// TryPredecessorsOf returns the exception-edge predecessors (covered
// instructions) of handler id.
func (g *Graph) TryPredecessorsOf(id int) []int {
	pos, ok := g.posOfID(id)
	if !ok {
		return nil
	}
	return g.idsOf(g.tryPredecessors[pos])
}

// Vertices returns the stable ID of every instruction currently in the
// graph.
func (g *Graph) Vertices() []int {
	out := make([]int, g.list.Len())
	for i := range out {
		out[i] = g.list.At(i).ID
	}
	return out
}

// Root returns the method's entry instruction's stable ID, always the ID
// of whatever instruction currently sits at position 0.
func (g *Graph) Root() int { return g.list.At(g.root).ID }

// CombinedSuccessorsOf returns successors ∪ catchSuccessors — the view the
// generic region splitter uses, treating all edges uniformly; only the
// cloner distinguishes between the two kinds.
func (g *Graph) CombinedSuccessorsOf(id int) []int {
	pos, ok := g.posOfID(id)
	if !ok {
		return nil
	}
	return g.idsOf(union(g.successors[pos], g.catchSuccessors[pos]))
}

// CombinedPredecessorsOf returns predecessors ∪ tryPredecessors.
func (g *Graph) CombinedPredecessorsOf(id int) []int {
	pos, ok := g.posOfID(id)
	if !ok {
		return nil
	}
	return g.idsOf(union(g.predecessors[pos], g.tryPredecessors[pos]))
}

// union returns the set union of a and b, used to combine normal and
// exception edge sets without double-counting a position in both.
func union(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// combinedView adapts Graph to digraph.RootedDigraph[int] using the
// combined (normal ∪ exception) edge sets, exactly what region.Reduce
// needs to drive T1/T2/T3 over a method body.
type combinedView struct{ g *Graph }

// Combined returns a digraph.RootedDigraph[int] view of g using combined
// successor/predecessor sets, suitable for region.Reduce.
func (g *Graph) Combined() digraph.RootedDigraph[int] {
	return combinedView{g: g}
}

func (v combinedView) Vertices() []int            { return v.g.Vertices() }
func (v combinedView) Root() int                  { return v.g.Root() }
func (v combinedView) SuccessorsOf(x int) []int   { return v.g.CombinedSuccessorsOf(x) }
func (v combinedView) PredecessorsOf(x int) []int { return v.g.CombinedPredecessorsOf(x) }
