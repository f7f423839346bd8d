package cloner

import "github.com/jreduce/jreduce/bytecode"

// buildLabelMap implements phase 1: every original label
// maps to itself, except labels belonging to an instruction in toClone,
// which map to a freshly created label. Consulted by phase 2 when cloning
// jump/switch operands, so that jumps internal to the cloned region target
// cloned labels rather than the originals.
func (s *session) buildLabelMap() {
	s.labelMap = make(map[string]string)

	for _, ins := range s.c.List.Instructions {
		if ins.Kind == bytecode.KindLabel {
			s.labelMap[ins.Label] = ins.Label
		}
	}

	for _, x := range s.origToClone {
		ins := s.c.List.At(x)
		if ins.Kind != bytecode.KindLabel {
			continue
		}
		s.labelMap[ins.Label] = s.c.List.FreshLabel(ins.Label)
	}
}
