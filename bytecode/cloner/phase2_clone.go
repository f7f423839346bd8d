package cloner

import (
	"github.com/jreduce/jreduce/bytecode"
	"github.com/jreduce/jreduce/digraph"
)

// cloneInstructions implements phase 2: for each vertex in toClone, in
// original relative order, produce a copy with operands unchanged and
// Targets/Label substituted through the phase-1 label map, then append it
// to the instruction list.
func (s *session) cloneInstructions() error {
	for i, x := range s.origToClone {
		orig := s.c.List.At(s.current(x))

		clone := bytecode.Instruction{
			Kind:          orig.Kind,
			Opcode:        orig.Opcode,
			Operand:       orig.Operand,
			SwitchIsTable: orig.SwitchIsTable,
			SwitchLow:     orig.SwitchLow,
			SwitchKeys:    append([]int(nil), orig.SwitchKeys...),
		}
		if orig.Kind == bytecode.KindLabel {
			clone.Label = s.labelMap[orig.Label]
		}
		if len(orig.Targets) > 0 {
			clone.Targets = make([]string, len(orig.Targets))
			for j, t := range orig.Targets {
				if mapped, ok := s.labelMap[t]; ok {
					clone.Targets[j] = mapped
				} else {
					clone.Targets[j] = t
				}
			}
		}

		newIdx := s.insertAppend(clone)
		s.cloneCur[i] = newIdx
		s.addVertex(s.idAt(newIdx), digraph.Append[int]())
	}
	return nil
}
