package graphbuilder

import (
	"fmt"
	"math/rand"
)

// Option configures RandomDigraph using the functional-options pattern:
// options are resolved once into an immutable config before construction
// begins.
type Option func(*config)

type config struct {
	minVertices int
	maxVertices int
	minEdges    int
	maxEdges    int
	seed        int64
}

func defaultConfig() config {
	return config{
		minVertices: 1,
		maxVertices: 20,
		minEdges:    0,
		maxEdges:    40,
		seed:        1,
	}
}

// WithVertexRange bounds the number of vertices a random graph gets,
// inclusive on both ends.
func WithVertexRange(min, max int) Option {
	return func(c *config) { c.minVertices, c.maxVertices = min, max }
}

// WithEdgeRange bounds the number of edges, inclusive on both ends.
func WithEdgeRange(min, max int) Option {
	return func(c *config) { c.minEdges, c.maxEdges = min, max }
}

// WithSeed freezes the random source for deterministic, reproducible graphs.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// RandomDigraph builds a Graph with a random vertex and edge count within
// the configured ranges. Vertices are named v0..vN-1; v0 is the root. Edges
// are sampled uniformly (with replacement, duplicates silently collapse
// since Graph.AddEdge is idempotent per pair) from all ordered vertex pairs
// including self-loops, so the generator can and does produce self-loop-heavy
// and multi-entry shapes.
func RandomDigraph(opts ...Option) *Graph {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	n := cfg.minVertices
	if cfg.maxVertices > cfg.minVertices {
		n += rng.Intn(cfg.maxVertices - cfg.minVertices + 1)
	}

	g := New("v0")
	for i := 1; i < n; i++ {
		g.AddVertex(fmt.Sprintf("v%d", i))
	}

	m := cfg.minEdges
	if cfg.maxEdges > cfg.minEdges {
		m += rng.Intn(cfg.maxEdges - cfg.minEdges + 1)
	}
	verts := g.Vertices()
	if len(verts) == 0 {
		return g
	}
	for i := 0; i < m; i++ {
		from := verts[rng.Intn(len(verts))]
		to := verts[rng.Intn(len(verts))]
		g.AddEdge(from, to)
	}

	return g
}
