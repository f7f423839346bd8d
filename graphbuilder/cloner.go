package graphbuilder

import (
	"github.com/jreduce/jreduce/digraph"
	"github.com/jreduce/jreduce/region"
)

// Cloner returns a region.CloneFunc[string] that fulfils the node-splitting
// duplication contract against g:
//
//  1. every ownedBy→toClone edge is redirected to the new copy;
//  2. every toClone outgoing edge is mirrored from the copy (to the clone,
//     if the target was itself cloned);
//  3. no other edge is touched;
//  4. every new vertex is reported through addVertex.
//
// New vertices are always reported as digraph.Append(); graphbuilder's
// fixtures have no notion of "instruction order" for Before/After to refine,
// unlike the real bytecode cloner (package bytecode/cloner), which chooses
// among all three locations.
func Cloner(g *Graph) region.CloneFunc[string] {
	return func(toClone, ownedBy map[string]struct{}, addVertex region.AddVertexFunc[string]) error {
		names := sortedSet(toClone)

		cloneOf := make(map[string]string, len(names))
		for _, x := range names {
			cloneOf[x] = g.FreshName(x)
		}
		for _, x := range names {
			g.AddVertex(cloneOf[x])
			addVertex(cloneOf[x], digraph.Append[string]())
		}

		// Obligation 2: mirror every outgoing edge of each cloned vertex.
		for _, x := range names {
			for _, y := range g.SuccessorsOf(x) {
				if target, ok := cloneOf[y]; ok {
					g.AddEdge(cloneOf[x], target)
				} else {
					g.AddEdge(cloneOf[x], y)
				}
			}
		}

		// Obligation 1: redirect every ownedBy->toClone edge to the clone.
		for _, p := range sortedSet(ownedBy) {
			for _, x := range names {
				if g.HasEdge(p, x) {
					g.RemoveEdge(p, x)
					g.AddEdge(p, cloneOf[x])
				}
			}
		}

		return nil
	}
}

func sortedSet(m map[string]struct{}) []string {
	return sortedKeys(m)
}
