// Package cloner implements the instruction-level duplication callback the
// region splitter invokes for one T3 step: label mapping, instruction
// cloning, entry-edge rewiring, fall-through repair, and try-catch table
// splitting/cloning. One file per phase, orchestrated by Cloner.CloneFunc,
// with a single public entry point per concern.
package cloner
