package typegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jreduce/jreduce/internal/typegraph"
)

func TestAddSupertype_RejectsSelfAndEmpty(t *testing.T) {
	g := typegraph.New()

	err := g.AddSupertype("a/B", "a/B")
	assert.ErrorIs(t, err, typegraph.ErrSelfExtends)

	err = g.AddSupertype("", "a/B")
	assert.ErrorIs(t, err, typegraph.ErrEmptyClassName)
}

func TestDirectSupertypes_UnknownClass(t *testing.T) {
	g := typegraph.New()
	_, err := g.DirectSupertypes("nope")
	assert.ErrorIs(t, err, typegraph.ErrClassNotFound)
}

func TestAncestors_TransitiveClosureSortedAscending(t *testing.T) {
	g := typegraph.New()
	require.NoError(t, g.AddSupertype("app/Child", "app/Mid"))
	require.NoError(t, g.AddSupertype("app/Mid", "java/lang/Object"))
	require.NoError(t, g.AddSupertype("app/Mid", "app/Mixin"))

	ancestors, err := g.Ancestors("app/Child")
	require.NoError(t, err)
	assert.Equal(t, []string{"app/Mid", "app/Mixin", "java/lang/Object"}, ancestors)
}

func TestIsAssignableTo(t *testing.T) {
	g := typegraph.New()
	require.NoError(t, g.AddSupertype("app/Dog", "app/Animal"))
	require.NoError(t, g.AddSupertype("app/Animal", "java/lang/Object"))

	ok, err := g.IsAssignableTo("app/Dog", "java/lang/Object")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.IsAssignableTo("app/Animal", "app/Dog")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCircularInheritance_DetectsCycle(t *testing.T) {
	g := typegraph.New()
	require.NoError(t, g.AddSupertype("a/A", "a/B"))
	require.NoError(t, g.AddSupertype("a/B", "a/C"))
	require.NoError(t, g.AddSupertype("a/C", "a/A"))

	cycle, found := g.CircularInheritance("a/A")
	require.True(t, found)
	assert.Equal(t, "a/A", cycle[0])
	assert.Equal(t, "a/A", cycle[len(cycle)-1])
}

func TestCircularInheritance_AcyclicReportsNone(t *testing.T) {
	g := typegraph.New()
	require.NoError(t, g.AddSupertype("app/Dog", "app/Animal"))

	_, found := g.CircularInheritance("app/Dog")
	assert.False(t, found)
}

func TestInheritanceOrder_SupertypesPrecedeSubtypes(t *testing.T) {
	g := typegraph.New()
	require.NoError(t, g.AddSupertype("app/Child", "app/Mid"))
	require.NoError(t, g.AddSupertype("app/Mid", "java/lang/Object"))

	order, cycle := g.InheritanceOrder()
	assert.Nil(t, cycle)
	require.Len(t, order, 3)

	pos := make(map[string]int, len(order))
	for i, c := range order {
		pos[c] = i
	}
	assert.Less(t, pos["java/lang/Object"], pos["app/Mid"])
	assert.Less(t, pos["app/Mid"], pos["app/Child"])
}
