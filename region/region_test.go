package region_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jreduce/jreduce/graphbuilder"
	"github.com/jreduce/jreduce/region"
)

// buildGraph is a small helper for literal test scenarios: it
// builds a graphbuilder.Graph rooted at "a" from a list of "from->to" edge
// pairs.
func buildGraph(root string, edges ...[2]string) *graphbuilder.Graph {
	g := graphbuilder.New(root)
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func assertReducible(t *testing.T, g *graphbuilder.Graph) {
	t.Helper()
	ok, err := region.IsReducible[string](g)
	require.NoError(t, err)
	assert.True(t, ok, "expected graph to be reducible after Reduce, edges=%v", g.Edges())
}

func assertIdempotent(t *testing.T, g *graphbuilder.Graph) {
	t.Helper()
	before := g.Edges()
	fired, err := region.Reduce[string](g, graphbuilder.Cloner(g))
	require.NoError(t, err)
	assert.False(t, fired, "second Reduce pass must perform zero duplications")
	assert.Equal(t, before, g.Edges(), "second Reduce pass must not change the graph")
}

// Scenario 1: a→b→c→b; a→c ⇒ duplicates b.
func TestReduce_Scenario1_DuplicatesB(t *testing.T) {
	g := buildGraph("a",
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"c", "b"},
		[2]string{"a", "c"},
	)

	fired, err := region.Reduce[string](g, graphbuilder.Cloner(g))
	require.NoError(t, err)
	assert.True(t, fired)

	assert.True(t, g.HasEdge("a", "b"))
	assert.True(t, g.HasEdge("b", "c"))
	assert.True(t, g.HasEdge("a", "c"))
	assert.False(t, g.HasEdge("c", "b"), "original c->b edge must be redirected to the clone")
	assert.True(t, g.HasEdge("c", "b'"), "c must now point at the clone of b")
	assert.True(t, g.HasEdge("b'", "c"), "the clone must mirror b's outgoing edge to c")

	assertReducible(t, g)
	assertIdempotent(t, g)
}

// Scenario 2: a→b→c→b; a→c→d→e; a→f ⇒ same duplication of
// b, daisy chains untouched.
func TestReduce_Scenario2_DaisyChainsUntouched(t *testing.T) {
	g := buildGraph("a",
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"c", "b"},
		[2]string{"a", "c"},
		[2]string{"c", "d"},
		[2]string{"d", "e"},
		[2]string{"a", "f"},
	)

	fired, err := region.Reduce[string](g, graphbuilder.Cloner(g))
	require.NoError(t, err)
	assert.True(t, fired)

	assert.True(t, g.HasEdge("c", "b'"))
	assert.True(t, g.HasEdge("b'", "c"))
	assert.True(t, g.HasEdge("c", "d"))
	assert.True(t, g.HasEdge("d", "e"))
	assert.True(t, g.HasEdge("a", "f"))

	assertReducible(t, g)
	assertIdempotent(t, g)
}

// Scenario 3: a→b→c→d→b; a→d ⇒ by weight, d is duplicated:
// a→b→c→d′→b; a→d→b.
func TestReduce_Scenario3_DuplicatesD(t *testing.T) {
	g := buildGraph("a",
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"c", "d"},
		[2]string{"d", "b"},
		[2]string{"a", "d"},
	)

	fired, err := region.Reduce[string](g, graphbuilder.Cloner(g))
	require.NoError(t, err)
	assert.True(t, fired)

	assert.True(t, g.HasEdge("a", "b"))
	assert.True(t, g.HasEdge("b", "c"))
	assert.True(t, g.HasEdge("a", "d"))
	assert.True(t, g.HasEdge("d", "b"), "the owner predecessor keeps its edge into the original d")
	assert.False(t, g.HasEdge("c", "d"), "c's edge into d must be redirected to the clone")
	assert.True(t, g.HasEdge("c", "d'"), "c must now point at the clone of d")
	assert.True(t, g.HasEdge("d'", "b"), "the clone must mirror d's outgoing edge to b")

	assertReducible(t, g)
	assertIdempotent(t, g)
}

// Scenario 5: abnormal self-loop-heavy case a→a; b→a; c→a ⇒
// a→a; b→a; c→a′→a′.
func TestReduce_Scenario5_SelfLoopHeavy(t *testing.T) {
	g := buildGraph("b",
		[2]string{"a", "a"},
		[2]string{"b", "a"},
		[2]string{"c", "a"},
	)
	g.AddVertex("c")

	fired, err := region.Reduce[string](g, graphbuilder.Cloner(g))
	require.NoError(t, err)
	assert.True(t, fired)

	assert.True(t, g.HasEdge("a", "a"), "a's own self-loop is a real edge, untouched by region-level T1")
	assert.True(t, g.HasEdge("b", "a"))
	assert.False(t, g.HasEdge("c", "a"), "c's edge into a must be redirected to the clone")
	assert.True(t, g.HasEdge("c", "a'"))
	assert.True(t, g.HasEdge("a'", "a'"), "the clone mirrors a's own self-loop")

	assertReducible(t, g)
	assertIdempotent(t, g)
}

// TestReduce_AlreadyReducible confirms no-op behavior on reducible inputs:
// a DAG or a single-entry loop never invokes the clone
// callback at all.
func TestReduce_AlreadyReducible(t *testing.T) {
	g := buildGraph("a",
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"c", "a"}, // single-entry loop back to the header
	)

	calls := 0
	cb := func(toClone, ownedBy map[string]struct{}, addVertex region.AddVertexFunc[string]) error {
		calls++
		return graphbuilder.Cloner(g)(toClone, ownedBy, addVertex)
	}

	fired, err := region.Reduce[string](g, cb)
	require.NoError(t, err)
	assert.False(t, fired)
	assert.Equal(t, 0, calls, "a reducible graph must never invoke the duplication callback")
}

// TestReduce_NilCloneOnIrreducibleGraph confirms Reduce surfaces
// ErrNilCloneFunc when a split actually turns out to be necessary.
func TestReduce_NilCloneOnIrreducibleGraph(t *testing.T) {
	g := buildGraph("a",
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"c", "b"},
		[2]string{"a", "c"},
	)

	_, err := region.Reduce[string](g, nil)
	assert.ErrorIs(t, err, region.ErrNilCloneFunc)
}
