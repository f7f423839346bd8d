package cloner

import "errors"

// ErrMissingJumpOperand indicates phase 3 found a predecessor in ownedBy
// that neither carries an explicit jump to the cloned vertex's label nor
// relies on fall-through to it — an instruction list inconsistent with the
// CFG it was built from.
var ErrMissingJumpOperand = errors.New("cloner: predecessor has neither explicit jump nor fall-through to cloned target")

// opcodeGoto is the JVM goto opcode (JVM spec §6.5), used for every
// unconditional jump this package synthesizes during cloning so classio's
// encoder can re-serialize it with the correct 2-byte branch operand
// width.
const opcodeGoto = 0xa7
