package cloner

import "github.com/jreduce/jreduce/bytecode"

// cloneTryCatchOverToClone implements phase 7: every
// try-catch entry whose range overlaps any cloned index gets a new sibling
// entry covering the clones, with the cloned handler substituted for the
// original if the handler itself was among the cloned vertices.
func (s *session) cloneTryCatchOverToClone() {
	if len(s.origToClone) == 0 {
		return
	}

	firstCloneStart := s.cloneCur[0]

	startLabel := s.labelBefore(firstCloneStart)
	// Read after labelBefore, which may have shifted every clone by one.
	endLabel := s.labelAfter(s.cloneCur[len(s.cloneCur)-1])
	startIdx, _ := s.c.List.IndexOfLabel(startLabel)
	endIdx, _ := s.c.List.IndexOfLabel(endLabel)

	original := append([]bytecode.TryCatchEntry(nil), *s.c.Tries...)
	for _, t := range original {
		if !overlapsAnyClone(s, t) {
			continue
		}

		handler := t.Handler
		if i, cloned := cloneIndexOfHandler(s, t.Handler); cloned {
			handler = s.cloneCur[i]
		}

		*s.c.Tries = append(*s.c.Tries, bytecode.TryCatchEntry{
			Start:   startIdx,
			End:     endIdx,
			Handler: handler,
			Type:    t.Type,
		})
	}
}

func overlapsAnyClone(s *session, t bytecode.TryCatchEntry) bool {
	for _, x := range s.origToClone {
		if t.Covers(s.current(x)) {
			return true
		}
	}
	return false
}
