package classio

import "github.com/jreduce/jreduce/bytecode"

// MethodUnit is one method body as the core consumes and produces it: an
// (instructions, try-catch table, enclosing class) read/write contract.
type MethodUnit struct {
	Name       string
	Descriptor string
	List       *bytecode.InstructionList
	Tries      []bytecode.TryCatchEntry
	ClassRef   string // internal name of the enclosing class, for type resolution
}

// ClassUnit is one class as read from a .class file or a JAR entry: its
// internal name, every method body, and the raw bytes outside the Code
// attributes (constant pool, field table, etc.) that classio passes
// through unchanged.
type ClassUnit struct {
	InternalName string
	SuperName    string
	Interfaces   []string
	Methods      []MethodUnit

	raw rawClass // opaque decoded structure, re-encoded on Write
}
