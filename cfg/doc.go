// Package cfg derives a method's control-flow graph from its instruction
// list and try-catch table, via a basic-value abstract-interpretation walk.
// It generalizes a traversal-state-struct style from plain vertex traversal
// to an instruction-position walk that classifies each instruction's
// successors by opcode kind, and implements digraph.RootedDigraph[int] so
// the generic region splitter can drive it directly.
package cfg
