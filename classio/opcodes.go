package classio

import "github.com/jreduce/jreduce/bytecode"

// opcodeShape describes one JVM opcode's decoding shape: how many operand
// bytes follow it (fixed-size only; tableswitch/lookupswitch are handled
// separately since their length depends on alignment and payload), and
// what bytecode.Kind it maps to for CFG purposes.
type opcodeShape struct {
	operandBytes int
	kind         bytecode.Kind
}

// Only control-flow-relevant opcodes need exact classification; everything
// else is modeled as KindPlain with the operand width fixedOperandBytes
// lists for it, or none if it is not listed. jsr, jsr_w, ret and wide are
// in neither table, so they decode as operand-less KindPlain. This table is
// kept intentionally minimal.
var opcodeShapes = map[int]opcodeShape{
	0x00: {0, bytecode.KindPlain},  // nop
	0xac: {0, bytecode.KindReturn}, // ireturn
	0xad: {0, bytecode.KindReturn}, // lreturn
	0xae: {0, bytecode.KindReturn}, // freturn
	0xaf: {0, bytecode.KindReturn}, // dreturn
	0xb0: {0, bytecode.KindReturn}, // areturn
	0xb1: {0, bytecode.KindReturn}, // return
	0xbf: {0, bytecode.KindReturn}, // athrow
	0xa7: {2, bytecode.KindJump},   // goto
	0xc8: {4, bytecode.KindJump},   // goto_w
	// if<cond>, if_icmp<cond>, if_acmp<cond>, ifnull, ifnonnull: all
	// 2-byte branch offsets, all conditional (fall through otherwise).
	0x99: {2, bytecode.KindBranch}, // ifeq
	0x9a: {2, bytecode.KindBranch}, // ifne
	0x9b: {2, bytecode.KindBranch}, // iflt
	0x9c: {2, bytecode.KindBranch}, // ifge
	0x9d: {2, bytecode.KindBranch}, // ifgt
	0x9e: {2, bytecode.KindBranch}, // ifle
	0x9f: {2, bytecode.KindBranch}, // if_icmpeq
	0xa0: {2, bytecode.KindBranch}, // if_icmpne
	0xa1: {2, bytecode.KindBranch}, // if_icmplt
	0xa2: {2, bytecode.KindBranch}, // if_icmpge
	0xa3: {2, bytecode.KindBranch}, // if_icmpgt
	0xa4: {2, bytecode.KindBranch}, // if_icmple
	0xa5: {2, bytecode.KindBranch}, // if_acmpeq
	0xa6: {2, bytecode.KindBranch}, // if_acmpne
	0xc6: {2, bytecode.KindBranch}, // ifnull
	0xc7: {2, bytecode.KindBranch}, // ifnonnull
}

// fixedOperandBytes is consulted for the many non-branching opcodes whose
// decoded Kind is always KindPlain; it only needs to be wide enough to
// advance the cursor correctly.
var fixedOperandBytes = map[int]int{
	0x10: 1, // bipush
	0x11: 2, // sipush
	0x12: 1, // ldc
	0x13: 2, // ldc_w
	0x14: 2, // ldc2_w
	0x15: 1, 0x16: 1, 0x17: 1, 0x18: 1, 0x19: 1, // *load
	0x36: 1, 0x37: 1, 0x38: 1, 0x39: 1, 0x3a: 1, // *store
	0xbb: 2, // new
	0xbc: 1, // newarray
	0xbd: 2, // anewarray
	0xb2: 2, 0xb3: 2, 0xb4: 2, 0xb5: 2, // get/putfield, get/putstatic
	0xb6: 2, 0xb7: 2, 0xb8: 2, // invokevirtual/special/static
	0xb9: 4, // invokeinterface
	0xba: 4, // invokedynamic
	0xc0: 2, 0xc1: 2, // checkcast, instanceof
	0xc5: 3, // multianewarray
	0x84: 2, // iinc
}

// isSwitch reports whether opcode is tableswitch/lookupswitch — both
// require alignment-dependent, variable-length decoding handled in
// decode.go's switch reader rather than this fixed-shape table.
func isSwitch(opcode int) bool { return opcode == 0xaa || opcode == 0xab }
