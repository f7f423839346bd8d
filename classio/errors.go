package classio

import "errors"

var (
	// ErrMalformedInput indicates an unreadable class file or a truncated
	// JAR archive — a per-file user-visible failure.
	ErrMalformedInput = errors.New("classio: malformed class or archive input")

	// ErrVerifierRejected indicates the rewritten bytecode failed
	// verification — fatal for that file; the original is left untouched
	// because the temp-file-then-rename discipline has not yet happened.
	ErrVerifierRejected = errors.New("classio: verifier rejected rewritten bytecode")

	// ErrNotClassOrJar indicates that data handed to ReadJar is not a
	// readable zip archive.
	ErrNotClassOrJar = errors.New("classio: path is neither a .class file nor a .jar archive")
)
