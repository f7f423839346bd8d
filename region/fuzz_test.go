package region_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jreduce/jreduce/graphbuilder"
	"github.com/jreduce/jreduce/region"
)

// TestReduce_FuzzIdempotence checks a graph-level fuzz
// property: for randomly generated digraphs with 1-20 vertices and 0-40
// edges, a first Reduce call may or may not modify the graph, but a second
// call must report zero duplications.
func TestReduce_FuzzIdempotence(t *testing.T) {
	const trials = 200
	for seed := int64(0); seed < trials; seed++ {
		g := graphbuilder.RandomDigraph(graphbuilder.WithSeed(seed))

		_, err := region.Reduce[string](g, graphbuilder.Cloner(g))
		require.NoError(t, err, "seed %d: first pass", seed)

		fired, err := region.Reduce[string](g, graphbuilder.Cloner(g))
		require.NoError(t, err, "seed %d: second pass", seed)
		assert.False(t, fired, "seed %d: second Reduce pass must perform zero duplications", seed)
	}
}
