// Package graphbuilder constructs digraph.RootedDigraph[string] fixtures for
// tests: deterministic named-vertex graphs for table-driven region-splitter
// tests, and seeded random graphs for fuzz testing (1-20 vertices, 0-40
// edges, second Reduce pass must report no change).
//
// Construction follows a functional-options builder style: options resolve
// into an immutable config before a single orchestrating entry point builds
// the graph, with determinism guaranteed by a seeded math/rand source.
package graphbuilder
