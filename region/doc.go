// Package region implements the classical T1/T2/T3 region-reduction
// algorithm (Aho, Lam, Sethi & Ullman, "Compilers: Principles, Techniques,
// and Tools", §9.7.6) as a generic digraph rewrite. It is the engine behind
// jreduce's irreducible-loop elimination: given any digraph.RootedDigraph[V]
// and a caller-supplied duplication callback, Reduce mutates the graph in
// place until no irreducible loop remains.
//
// The algorithm proceeds in rounds. Each round first sweeps the whole region
// set for T1 (self-loop elimination); if that changed anything, the round
// repeats from the top. Otherwise it sweeps for T2 (single-predecessor
// merge); if that changed anything, the round repeats. Only when a full
// round finds neither a T1 nor a T2 opportunity does T3 (node splitting)
// fire, duplicating exactly one region's members and handing the
// duplication off to the caller's callback.
//
// Reduce knows nothing about what a vertex "is" — it never reads vertex
// payloads, only identities (V must be comparable) and the edges reported by
// the digraph. This is what lets the same engine drive both the bytecode
// instruction cloner (package bytecode/cloner) and the string-labeled fuzz
// fixtures in this package's own tests and in package graphbuilder.
package region
