package cloner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jreduce/jreduce/bytecode"
	"github.com/jreduce/jreduce/bytecode/cloner"
	"github.com/jreduce/jreduce/cfg"
	"github.com/jreduce/jreduce/digraph"
	"github.com/jreduce/jreduce/region"
)

// buildLoop constructs the classic irreducible-loop shape at the
// instruction level: a->b, a->c, b->c, c->b, where a is a branch with two
// genuine entries into the b/c cycle — its fallthrough reaches b directly
// and its branch target reaches c directly — and c's back-edge to b closes
// the loop. Two distinct entries into the same strongly-connected region
// is exactly what makes this irreducible: no single header dominates both
// b and c.
func buildLoop(t *testing.T) (*bytecode.InstructionList, *[]bytecode.TryCatchEntry, *cfg.Graph) {
	t.Helper()

	list := bytecode.NewInstructionList([]bytecode.Instruction{
		{Kind: bytecode.KindLabel, Label: "a"},              // 0
		{Kind: bytecode.KindBranch, Targets: []string{"c"}}, // 1 (falls to b, branches to c)
		{Kind: bytecode.KindLabel, Label: "b"},              // 2
		{Kind: bytecode.KindPlain},                           // 3 (falls to c)
		{Kind: bytecode.KindLabel, Label: "c"},               // 4
		{Kind: bytecode.KindJump, Targets: []string{"b"}},    // 5 (c->b)
	})
	tries := []bytecode.TryCatchEntry{}

	g, err := cfg.Build(list, tries)
	require.NoError(t, err)

	return list, &tries, g
}

func TestCloner_SplitsSingleRegion(t *testing.T) {
	list, tries, g := buildLoop(t)
	cl := cloner.New(list, tries, g)

	// toClone = {b's instructions: indices 2,3}, ownedBy = {c's
	// instructions: indices 4,5} — mirrors the region splitter calling the
	// cloner with region "b" duplicated because region "c" (the second
	// entry into the b/c cycle) needs its own copy.
	toClone := map[int]struct{}{2: {}, 3: {}}
	ownedBy := map[int]struct{}{4: {}, 5: {}}

	before := list.Len()

	var added []int
	fn := cl.CloneFunc()
	err := fn(toClone, ownedBy, func(v int, _ digraph.InsertionLocation[int]) {
		added = append(added, v)
	})
	require.NoError(t, err)

	assert.Greater(t, list.Len(), before, "cloning must grow the instruction list")
	assert.NotEmpty(t, added, "every new vertex must be reported through addVertex")

	for _, tr := range *tries {
		require.NoError(t, tr.Validate())
	}

	// Rebuild the CFG over the mutated list and check the actual rewiring,
	// not just that something got appended: the original b must lose its
	// owned predecessor (c's back-edge) and the clone must pick it up.
	g2, err := cfg.Build(list, *tries)
	require.NoError(t, err)

	bIdx, err := list.IndexOfLabel("b")
	require.NoError(t, err)
	cloneIdx, err := list.IndexOfLabel("b$1")
	require.NoError(t, err)
	// The graph speaks stable instruction IDs, not list positions.
	bID, cloneID := list.At(bIdx).ID, list.At(cloneIdx).ID

	assert.Len(t, g2.PredecessorsOf(bID), 1,
		"b must keep only its non-owned predecessor once c's back-edge is redirected")
	assert.NotEmpty(t, g2.PredecessorsOf(cloneID),
		"the clone of b must now be reachable from c's former back-edge")

	// A single split of a two-entry cycle must fully resolve it.
	reducible, err := region.IsReducible[int](g2.Combined())
	require.NoError(t, err)
	assert.True(t, reducible, "splitting b away from c must make the method reducible")
}

func TestReduce_DrivesCloner_ProducesReducibleMethod(t *testing.T) {
	list, tries, g := buildLoop(t)
	cl := cloner.New(list, tries, g)

	fired, err := region.Reduce[int](g.Combined(), cl.CloneFunc())
	require.NoError(t, err)
	assert.True(t, fired, "the multi-entry loop must trigger at least one T3 split")

	require.NoError(t, g.ResetEdges())
	ok, err := region.IsReducible[int](g.Combined())
	require.NoError(t, err)
	assert.True(t, ok, "the method's CFG must be reducible after the cloner runs")
}

func TestReduce_DrivesCloner_IdempotentSecondPass(t *testing.T) {
	list, tries, g := buildLoop(t)
	cl := cloner.New(list, tries, g)

	_, err := region.Reduce[int](g.Combined(), cl.CloneFunc())
	require.NoError(t, err)
	require.NoError(t, g.ResetEdges())

	fired, err := region.Reduce[int](g.Combined(), cl.CloneFunc())
	require.NoError(t, err)
	assert.False(t, fired, "a second pass over an already-reducible method must perform zero duplications")
}
