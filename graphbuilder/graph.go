package graphbuilder

import (
	"sort"

	"github.com/jreduce/jreduce/digraph"
)

var _ digraph.RootedDigraph[string] = (*Graph)(nil)

// Graph is a small mutable string-vertex digraph: the concrete fixture type
// every test in this module's graph-level test suites builds against. It
// implements digraph.RootedDigraph[string] (asserted above) and is also
// mutated directly by the generic cloning callback in cloner.go, mirroring
// how the real bytecode cloner both satisfies the callback contract and
// mutates the method's live instruction list.
type Graph struct {
	root     string
	vertices map[string]struct{}
	succs    map[string]map[string]struct{}
	preds    map[string]map[string]struct{}
}

// New returns an empty Graph rooted at root. root is added as a vertex.
func New(root string) *Graph {
	g := &Graph{
		root:     root,
		vertices: make(map[string]struct{}),
		succs:    make(map[string]map[string]struct{}),
		preds:    make(map[string]map[string]struct{}),
	}
	g.AddVertex(root)
	return g
}

// AddVertex registers v if not already present.
func (g *Graph) AddVertex(v string) {
	if _, ok := g.vertices[v]; ok {
		return
	}
	g.vertices[v] = struct{}{}
	g.succs[v] = make(map[string]struct{})
	g.preds[v] = make(map[string]struct{})
}

// AddEdge adds the edge from->to, creating either endpoint if absent.
func (g *Graph) AddEdge(from, to string) {
	g.AddVertex(from)
	g.AddVertex(to)
	g.succs[from][to] = struct{}{}
	g.preds[to][from] = struct{}{}
}

// RemoveEdge removes the edge from->to if present; a no-op otherwise.
func (g *Graph) RemoveEdge(from, to string) {
	delete(g.succs[from], to)
	delete(g.preds[to], from)
}

// HasEdge reports whether the edge from->to currently exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.succs[from][to]
	return ok
}

// FreshName returns a vertex name derived from base that is not yet in use,
// by appending "'" until the result is unique. Deterministic given the same
// sequence of calls.
func (g *Graph) FreshName(base string) string {
	name := base
	for {
		name += "'"
		if _, ok := g.vertices[name]; !ok {
			return name
		}
	}
}

// Vertices implements digraph.RootedDigraph.
func (g *Graph) Vertices() []string {
	out := make([]string, 0, len(g.vertices))
	for v := range g.vertices {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Root implements digraph.RootedDigraph.
func (g *Graph) Root() string { return g.root }

// SuccessorsOf implements digraph.RootedDigraph.
func (g *Graph) SuccessorsOf(v string) []string {
	return sortedKeys(g.succs[v])
}

// PredecessorsOf implements digraph.RootedDigraph.
func (g *Graph) PredecessorsOf(v string) []string {
	return sortedKeys(g.preds[v])
}

// Edges returns every edge currently in the graph as "from->to" pairs, for
// test assertions and golden-output comparisons.
func (g *Graph) Edges() [][2]string {
	var out [][2]string
	for _, from := range g.Vertices() {
		for _, to := range g.SuccessorsOf(from) {
			out = append(out, [2]string{from, to})
		}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
