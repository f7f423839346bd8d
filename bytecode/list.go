package bytecode

import (
	"errors"
	"strconv"
)

// ErrLabelNotFound indicates a jump target or try-catch boundary named a
// label the InstructionList has no record of.
var ErrLabelNotFound = errors.New("bytecode: label not found")

// ErrInstructionIDNotFound indicates a lookup by Instruction.ID referenced
// an identity the InstructionList never assigned (or that was looked up
// against the wrong list entirely).
var ErrInstructionIDNotFound = errors.New("bytecode: instruction id not found")

// InsertAt names where a newly produced instruction is spliced into a
// list: at the very end, immediately before an existing instruction, or
// immediately after one. Mirrors digraph.InsertionLocation, which the
// region splitter uses to route a freshly cloned vertex into a region —
// the cloner's own insertion primitive is the concrete implementation of
// that abstract contract.
type InsertAt int

const (
	// AtAppend inserts at the end of the list.
	AtAppend InsertAt = iota
	// AtBefore inserts immediately before the anchor instruction.
	AtBefore
	// AtAfter inserts immediately after the anchor instruction.
	AtAfter
)

// InstructionList is the ordered, mutable instruction sequence of one
// method body. Indices are kept dense and renumbered on every mutation, so
// Instruction.Index is always a valid slice position into Instructions; ID
// is assigned once per instruction and stays valid across any number of
// Insert calls, resolved back to a current position via byID.
type InstructionList struct {
	Instructions []Instruction
	labels       map[string]int // label name -> index, rebuilt by reindex
	byID         map[int]int    // instruction ID -> index, rebuilt by reindex
	nextID       int
}

// NewInstructionList wraps a freshly decoded instruction slice, assigning
// indices and fresh stable IDs in order.
func NewInstructionList(instrs []Instruction) *InstructionList {
	l := &InstructionList{Instructions: instrs}
	for i := range l.Instructions {
		l.Instructions[i].ID = l.nextID
		l.nextID++
	}
	l.reindex()
	return l
}

func (l *InstructionList) reindex() {
	l.labels = make(map[string]int, len(l.Instructions))
	l.byID = make(map[int]int, len(l.Instructions))
	for i := range l.Instructions {
		l.Instructions[i].Index = i
		l.byID[l.Instructions[i].ID] = i
		if l.Instructions[i].Kind == KindLabel {
			l.labels[l.Instructions[i].Label] = i
		}
	}
}

// Len returns the number of instructions currently in the list.
func (l *InstructionList) Len() int { return len(l.Instructions) }

// At returns the instruction at position idx.
func (l *InstructionList) At(idx int) Instruction { return l.Instructions[idx] }

// IndexOfLabel resolves a label name to its current instruction index.
func (l *InstructionList) IndexOfLabel(label string) (int, error) {
	idx, ok := l.labels[label]
	if !ok {
		return 0, ErrLabelNotFound
	}
	return idx, nil
}

// IndexOfID resolves a stable instruction ID to its current position,
// valid no matter how many Insert calls happened since the ID was handed
// out.
func (l *InstructionList) IndexOfID(id int) (int, error) {
	idx, ok := l.byID[id]
	if !ok {
		return 0, ErrInstructionIDNotFound
	}
	return idx, nil
}

// Insert splices ins into the list at loc relative to anchor (anchor is
// ignored for AtAppend), assigns ins a fresh stable ID (any ID already set
// on ins is discarded — every inserted instruction is a new identity),
// renumbers every instruction, and returns the final Instruction as stored
// (with its Index and ID populated).
func (l *InstructionList) Insert(ins Instruction, loc InsertAt, anchor int) Instruction {
	pos := len(l.Instructions)
	switch loc {
	case AtBefore:
		pos = anchor
	case AtAfter:
		pos = anchor + 1
	}

	ins.ID = l.nextID
	l.nextID++

	l.Instructions = append(l.Instructions, Instruction{})
	copy(l.Instructions[pos+1:], l.Instructions[pos:])
	l.Instructions[pos] = ins
	l.reindex()

	return l.Instructions[pos]
}

// FreshLabel returns a label name guaranteed not to collide with any label
// currently in the list, derived from base.
func (l *InstructionList) FreshLabel(base string) string {
	candidate := base
	n := 0
	for {
		if _, exists := l.labels[candidate]; !exists {
			return candidate
		}
		n++
		candidate = base + "$" + strconv.Itoa(n)
	}
}
