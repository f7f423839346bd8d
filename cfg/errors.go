package cfg

import "errors"

// ErrUnreachableTarget indicates a try-catch handler index that does not
// resolve to any instruction in the owning method. A jump or switch label
// that does not resolve is reported as bytecode.ErrLabelNotFound instead.
var ErrUnreachableTarget = errors.New("cfg: branch or handler target is unreachable")
