package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jreduce/jreduce/bytecode"
	"github.com/jreduce/jreduce/cfg"
)

func TestBuild_FallThroughChain(t *testing.T) {
	list := bytecode.NewInstructionList([]bytecode.Instruction{
		{Kind: bytecode.KindPlain},
		{Kind: bytecode.KindPlain},
		{Kind: bytecode.KindReturn},
	})

	g, err := cfg.Build(list, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, g.SuccessorsOf(0))
	assert.Equal(t, []int{2}, g.SuccessorsOf(1))
	assert.Empty(t, g.SuccessorsOf(2))
	assert.True(t, g.GuaranteedAcyclic())
}

func TestBuild_BackwardJumpClearsAcyclic(t *testing.T) {
	list := bytecode.NewInstructionList([]bytecode.Instruction{
		{Kind: bytecode.KindLabel, Label: "L0"},
		{Kind: bytecode.KindPlain},
		{Kind: bytecode.KindJump, Targets: []string{"L0"}},
	})

	g, err := cfg.Build(list, nil)
	require.NoError(t, err)

	assert.False(t, g.GuaranteedAcyclic())
	assert.Contains(t, g.SuccessorsOf(2), 0)
}

func TestBuild_TryCatchExceptionEdges(t *testing.T) {
	list := bytecode.NewInstructionList([]bytecode.Instruction{
		{Kind: bytecode.KindPlain},
		{Kind: bytecode.KindPlain},
		{Kind: bytecode.KindLabel, Label: "handler"},
		{Kind: bytecode.KindReturn},
	})
	tries := []bytecode.TryCatchEntry{
		{Start: 0, End: 2, Handler: 2, Type: "java/lang/Exception"},
	}

	g, err := cfg.Build(list, tries)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, g.CatchSuccessorsOf(0))
	assert.Equal(t, []int{2}, g.CatchSuccessorsOf(1))
	assert.ElementsMatch(t, []int{0, 1}, g.TryPredecessorsOf(2))
	assert.ElementsMatch(t, []int{1, 2}, g.CombinedSuccessorsOf(0))
}

func TestBuild_UnreachableHandlerErrors(t *testing.T) {
	list := bytecode.NewInstructionList([]bytecode.Instruction{
		{Kind: bytecode.KindReturn},
	})
	tries := []bytecode.TryCatchEntry{
		{Start: 0, End: 1, Handler: 99, Type: "java/lang/Exception"},
	}

	_, err := cfg.Build(list, tries)
	assert.ErrorIs(t, err, cfg.ErrUnreachableTarget)
}

func TestResetEdges_RecomputesAfterMutation(t *testing.T) {
	list := bytecode.NewInstructionList([]bytecode.Instruction{
		{Kind: bytecode.KindPlain},
		{Kind: bytecode.KindReturn},
	})

	g, err := cfg.Build(list, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, g.SuccessorsOf(0))

	// The inserted instruction gets the fresh ID 2 and sits between ID 0
	// and ID 1; edges are reported by stable ID, not by position.
	list.Insert(bytecode.Instruction{Kind: bytecode.KindPlain}, bytecode.AtAfter, 0)
	require.NoError(t, g.ResetEdges())

	assert.Equal(t, []int{2}, g.SuccessorsOf(0))
	assert.Equal(t, []int{1}, g.SuccessorsOf(2))
}
