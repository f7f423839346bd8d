package cloner

import "github.com/jreduce/jreduce/bytecode"

// fixInternalFallThroughs implements phase 4: for every
// adjacent pair x, y = x+1 both in toClone (so the original relied on
// fall-through between them), if their clones ended up non-adjacent in the
// new list, an explicit goto repairs the broken fall-through.
func (s *session) fixInternalFallThroughs() {
	for i := 0; i+1 < len(s.origToClone); i++ {
		x, y := s.origToClone[i], s.origToClone[i+1]
		if y != x+1 {
			continue
		}
		if s.cloneCur[i]+1 == s.cloneCur[i+1] {
			continue
		}
		target := s.labelBefore(s.cloneCur[i+1])
		s.insertAfter(s.cloneCur[i], bytecode.Instruction{
			Kind:    bytecode.KindJump,
			Opcode:  opcodeGoto,
			Targets: []string{target},
		})
	}
}

// fixExitingFallThroughs implements phase 5: for every x
// in toClone whose original successor y = x+1 is not itself in toClone,
// the clone of x needs an explicit goto to y, since appending clones at
// the tail of the list severs the original fall-through relationship.
func (s *session) fixExitingFallThroughs() {
	for i, x := range s.origToClone {
		y := x + 1
		if _, inSet := s.origSet[y]; inSet {
			continue
		}
		if _, watched := s.watchIndexOf[y]; !watched {
			// x was the method's last instruction; no fall-through existed.
			continue
		}
		if s.c.List.At(s.cloneCur[i]).IsTerminator() {
			continue
		}

		target := s.labelBefore(s.current(y))
		s.insertAfter(s.cloneCur[i], bytecode.Instruction{
			Kind:    bytecode.KindJump,
			Opcode:  opcodeGoto,
			Targets: []string{target},
		})
	}
}
