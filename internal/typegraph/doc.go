// Package typegraph is a read/write-heavy graph cache narrowed to exactly
// the operations a JVM class-hierarchy cache needs: registering
// extends/implements edges, detecting circular inheritance, and answering
// assignability queries, with a per-instance RWMutex guarding the edge
// maps and a sentinel-error convention for its fallible operations.
package typegraph
