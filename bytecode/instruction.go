// Package bytecode models a JVM method body at the level the region
// splitter and instruction cloner need: an ordered instruction list, a
// per-instruction opcode kind, and a try-catch table.
//
// It deliberately stops short of full constant-pool-accurate decoding;
// package classio owns the real byte layout and constant-pool resolution,
// since no third-party library in this module's dependency stack models
// JVM class-file binary structure.
package bytecode

import "fmt"

// Kind classifies an Instruction for the purposes of CFG construction and
// cloning: it decides whether the instruction falls through, jumps, is a
// terminator, or is a non-control pseudo-instruction (label, line number,
// stack-map frame).
type Kind int

const (
	// KindPlain is an ordinary, non-branching opcode: control falls
	// through to the next instruction unless it's the last in the list.
	KindPlain Kind = iota
	// KindLabel is a zero-size pseudo-instruction used as a jump target.
	KindLabel
	// KindLineNumber is a zero-size pseudo-instruction carrying debug info.
	KindLineNumber
	// KindFrame is a zero-size pseudo-instruction carrying a stack-map
	// frame, recomputed wholesale on write and otherwise inert here.
	KindFrame
	// KindJump is an unconditional jump (goto): control transfers to
	// Targets[0] only, never falls through.
	KindJump
	// KindBranch is a conditional jump (ifeq, if_icmpne, ...): control
	// transfers to Targets[0] or falls through to the next instruction.
	KindBranch
	// KindSwitch is a tableswitch/lookupswitch: control transfers to one
	// of Targets, never falls through.
	KindSwitch
	// KindReturn is a return/athrow-shaped terminator: no successor at all.
	KindReturn
)

// Instruction is one opcode in a method's ordered instruction list.
// Index is its current list position, renumbered on every mutation; ID is
// its stable identity, assigned once by the owning InstructionList and
// never reused or reassigned, so code that must refer to "this same
// instruction" across a sequence of inserts (the region splitter's
// bookkeeping, the cloner's own cross-phase tracking) keys on ID rather
// than on a position that a later insert can shift out from under it.
type Instruction struct {
	// Index is this instruction's current position in its owning
	// InstructionList. Maintained by the list, never set directly by
	// callers, and unstable across Insert calls.
	Index int

	// ID is this instruction's stable identity within its owning
	// InstructionList: assigned once, when the instruction first enters
	// the list, and never changed afterward. A clone gets its own fresh
	// ID even when every other field is copied verbatim.
	ID int

	// Kind classifies this instruction for CFG/cloning purposes.
	Kind Kind

	// Opcode is the numeric JVM opcode (ignored for label/line/frame
	// pseudo-instructions).
	Opcode int

	// Operand carries the non-jump operand payload, if any (e.g. a
	// constant-pool index, a local-variable slot).
	Operand int

	// Targets holds the jump target labels for KindJump/KindBranch/
	// KindSwitch instructions, referenced by label name. Populated by the
	// CFG builder's label resolution, consulted (and rewritten) by the
	// cloner's label map.
	Targets []string

	// Label is the label name this instruction represents, non-empty only
	// when Kind == KindLabel.
	Label string

	// SwitchIsTable distinguishes tableswitch (true) from lookupswitch
	// (false); only meaningful when Kind == KindSwitch. The last entry of
	// Targets is always the default target; the rest line up with
	// SwitchLow..SwitchLow+n-1 (tableswitch) or SwitchKeys (lookupswitch).
	SwitchIsTable bool

	// SwitchLow is tableswitch's low bound, preserved verbatim so
	// re-encoding matches the original case values rather than a
	// synthesized 0-based range.
	SwitchLow int

	// SwitchKeys holds lookupswitch's match values, one per non-default
	// entry in Targets, in the same order.
	SwitchKeys []int
}

// IsTerminator reports whether this instruction never falls through to the
// next one in list order. Two neighboring instructions have an implicit
// fall-through edge unless the first is a terminator.
func (i Instruction) IsTerminator() bool {
	switch i.Kind {
	case KindJump, KindSwitch, KindReturn:
		return true
	default:
		return false
	}
}

func (i Instruction) String() string {
	switch i.Kind {
	case KindLabel:
		return fmt.Sprintf("%d: label %s", i.Index, i.Label)
	case KindLineNumber:
		return fmt.Sprintf("%d: line", i.Index)
	case KindFrame:
		return fmt.Sprintf("%d: frame", i.Index)
	default:
		return fmt.Sprintf("%d: op(%d) operand=%d targets=%v", i.Index, i.Opcode, i.Operand, i.Targets)
	}
}
