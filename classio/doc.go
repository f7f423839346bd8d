// Package classio is the minimal, real class-file and JAR boundary the
// driver needs to have something concrete to walk and rewrite. It decodes
// just enough of the class-file format to recover an opcode stream, a
// try-catch table, and the enclosing class name, and re-encodes a
// rewritten method back into the container.
//
// It also owns the Verifier contract: a bytecode verifier callable on the
// rewritten form. The shipped implementation, StructuralVerifier, re-runs
// the CFG builder and region splitter over the rewritten method and checks
// exactly the invariants that are mechanically testable, rather than a
// full JVM stack-map-frame verifier, which is out of scope for this
// module.
package classio
