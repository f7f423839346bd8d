package cloner

import "github.com/jreduce/jreduce/bytecode"

// rewireEntryEdges implements phase 3: for every x in
// toClone, every predecessor p of x that belongs to ownedBy must stop
// reaching the original x and start reaching clones[x] instead — either by
// retargeting an existing explicit jump/switch operand, or, if p relied on
// fall-through, by inserting a new unconditional jump right after it.
func (s *session) rewireEntryEdges() error {
	// Every predecessor set is read from c.Graph before this phase inserts
	// anything: phase 2 only appends, so each original x is still a valid
	// position into c.Graph's own (pre-this-call) snapshot here, whereas the
	// gotos inserted below can shift later originals. Predecessors come back
	// as stable IDs and are translated to positions before any further use.
	predsOf := make([][]int, len(s.origToClone))
	for i, x := range s.origToClone {
		predsOf[i] = s.c.Graph.PredecessorsOf(s.idAt(x))
	}

	for i, x := range s.origToClone {
		predIDs := predsOf[i]
		cloneTarget := s.labelBefore(s.cloneCur[i])

		for _, predID := range predIDs {
			if _, owned := s.ownedIDs[predID]; !owned {
				continue
			}

			// predID's current position, looked up fresh rather than through
			// the tracked watch set: it is already up to date and must not
			// be passed through current(), which expects an original,
			// pre-call position key.
			predCur, err := s.c.List.IndexOfID(predID)
			if err != nil {
				return err
			}
			predIns := s.c.List.At(predCur)

			retargeted := false
			xCur := s.current(x)
			if len(predIns.Targets) > 0 {
				for j, t := range predIns.Targets {
					idx, err := s.c.List.IndexOfLabel(t)
					if err != nil {
						continue
					}
					if idx == xCur {
						s.c.List.Instructions[predCur].Targets[j] = cloneTarget
						retargeted = true
					}
				}
			}

			if !retargeted {
				if predIns.IsTerminator() || predCur+1 != xCur {
					return ErrMissingJumpOperand
				}
				s.insertAfter(predCur, bytecode.Instruction{
					Kind:    bytecode.KindJump,
					Opcode:  opcodeGoto,
					Targets: []string{cloneTarget},
				})
			}
		}
	}
	return nil
}
