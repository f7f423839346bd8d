package cloner

import (
	"sort"

	"github.com/jreduce/jreduce/bytecode"
	"github.com/jreduce/jreduce/cfg"
	"github.com/jreduce/jreduce/digraph"
	"github.com/jreduce/jreduce/region"
)

// Cloner adapts one method's mutable instruction list and try-catch table
// into a region.CloneFunc[int], the duplication callback the generic
// splitter drives for every T3 step.
type Cloner struct {
	List  *bytecode.InstructionList
	Tries *[]bytecode.TryCatchEntry
	Graph *cfg.Graph
}

// New builds a Cloner over list/tries/g. The three must refer to the same
// method: g is read to discover predecessor edges before phase 3 inserts
// anything, and its edges are recomputed (ResetEdges) at the end of every
// call; list and tries are the two structures phases 2-7 mutate.
func New(list *bytecode.InstructionList, tries *[]bytecode.TryCatchEntry, g *cfg.Graph) *Cloner {
	return &Cloner{List: list, Tries: tries, Graph: g}
}

// CloneFunc returns the region.CloneFunc[int] the splitter invokes. Each
// call runs the seven node-splitting phases in order, then resets the
// CFG's edges so the next splitter iteration sees a consistent graph.
func (c *Cloner) CloneFunc() region.CloneFunc[int] {
	return c.clone
}

// session holds the per-call mutable state one T3 step's clone() threads
// through all seven phases: every instruction position referenced after a
// phase that may have inserted earlier in the list needs to be tracked, or
// it goes stale the moment that insertion happens, since every phase is a
// list mutation.
type session struct {
	c         *Cloner
	tr        tracker
	addVertex region.AddVertexFunc[int]

	origToClone []int // fixed, sorted ascending, original indices
	origOwned   []int // fixed, sorted ascending, original indices
	origSet     map[int]struct{}
	ownedIDs    map[int]struct{} // stable IDs of ownedBy, for membership tests against fresh lookups

	// watchList/watchPos/watchIndexOf track the current position of every
	// original vertex any phase needs to relocate after earlier
	// insertions: toClone, ownedBy, and every exit successor phase 5
	// targets. Fixed size, set once, never reallocated.
	watchList    []int
	watchPos     []int
	watchIndexOf map[int]int

	cloneCur []int // tracked; cloneCur[i] is the current position of the clone of origToClone[i]

	labelMap map[string]string
}

// clone is the region.CloneFunc the splitter drives. toClone/ownedBy and
// every vertex reported through addVertex are stable instruction IDs (see
// bytecode.Instruction.ID), not list positions — the region splitter's own
// bookkeeping keys on them across the interval between this call and the
// next, which this call's seven phases spend entirely shuffling positions
// around. The session below resolves IDs to positions exactly once, up
// front, then works in positions internally (tracked via tracker, since a
// position is only stable within one clone() call), translating back to
// IDs only at the two points that cross back out: the addVertex callback,
// and the one query against c.Graph.
func (c *Cloner) clone(toClone, ownedBy map[int]struct{}, addVertex region.AddVertexFunc[int]) error {
	toClonePos, err := c.idsToPositions(toClone)
	if err != nil {
		return err
	}
	ownedByPos, err := c.idsToPositions(ownedBy)
	if err != nil {
		return err
	}

	s := &session{
		c:           c,
		addVertex:   addVertex,
		origToClone: sortedInts(toClonePos),
		origOwned:   sortedInts(ownedByPos),
		origSet:     toClonePos,
		ownedIDs:    ownedBy,
	}
	s.cloneCur = make([]int, len(s.origToClone))

	s.buildWatchSet()
	for i := range s.watchPos {
		s.tr.track(&s.watchPos[i])
	}
	for i := range s.cloneCur {
		s.tr.track(&s.cloneCur[i])
	}
	for i := range *c.Tries {
		s.tr.track(&(*c.Tries)[i].Start)
		s.tr.track(&(*c.Tries)[i].End)
		s.tr.track(&(*c.Tries)[i].Handler)
	}

	// Phase 1: label map.
	s.buildLabelMap()

	// Phase 2: clone instructions, in original relative order.
	if err := s.cloneInstructions(); err != nil {
		return err
	}

	// Phase 3: rewire entry edges from ownedBy predecessors.
	if err := s.rewireEntryEdges(); err != nil {
		return err
	}

	// Phase 4: fix broken fall-throughs among clones.
	s.fixInternalFallThroughs()

	// Phase 5: fix fall-throughs leaving the cloned set.
	s.fixExitingFallThroughs()

	// Phase 6: split try-catch entries covering ownedBy.
	s.splitTryCatchOverOwnedBy()

	// Phase 7: clone try-catch entries covering toClone.
	s.cloneTryCatchOverToClone()

	for _, t := range *c.Tries {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	return c.Graph.ResetEdges()
}

// buildWatchSet computes every original vertex this call needs to relocate
// after insertions: toClone, ownedBy, and every fall-through exit target
// (phase 5's y = x+1 for x in toClone, y not in toClone).
func (s *session) buildWatchSet() {
	watch := make(map[int]struct{}, 2*len(s.origToClone)+len(s.origOwned))
	for _, x := range s.origToClone {
		watch[x] = struct{}{}
	}
	for _, p := range s.origOwned {
		watch[p] = struct{}{}
	}
	n := s.c.List.Len()
	for _, x := range s.origToClone {
		y := x + 1
		if y < n {
			if _, inSet := s.origSet[y]; !inSet {
				watch[y] = struct{}{}
			}
		}
	}

	s.watchList = sortedInts(watch)
	s.watchPos = append([]int(nil), s.watchList...)
	s.watchIndexOf = make(map[int]int, len(s.watchList))
	for i, v := range s.watchList {
		s.watchIndexOf[v] = i
	}
}

// current returns the up-to-date position of an original vertex previously
// registered in the watch set.
func (s *session) current(orig int) int {
	return s.watchPos[s.watchIndexOf[orig]]
}

// idAt returns the stable ID of whatever instruction currently sits at
// list position pos, the only unit the region splitter's bookkeeping
// (and thus addVertex) understands.
func (s *session) idAt(pos int) int {
	return s.c.List.At(pos).ID
}

// insertBefore splices ins immediately before the instruction currently at
// position anchor, updates every tracked pointer, and returns the new
// instruction's own (untracked) index.
func (s *session) insertBefore(anchor int, ins bytecode.Instruction) int {
	inserted := s.c.List.Insert(ins, bytecode.AtBefore, anchor)
	s.tr.shifted(anchor)
	return inserted.Index
}

// insertAfter splices ins immediately after the instruction currently at
// position anchor.
func (s *session) insertAfter(anchor int, ins bytecode.Instruction) int {
	inserted := s.c.List.Insert(ins, bytecode.AtAfter, anchor)
	s.tr.shifted(anchor + 1)
	return inserted.Index
}

func (s *session) insertAppend(ins bytecode.Instruction) int {
	pos := s.c.List.Len()
	inserted := s.c.List.Insert(ins, bytecode.AtAppend, 0)
	s.tr.shifted(pos)
	return inserted.Index
}

// labelBefore returns the label name of the label instruction immediately
// before the instruction currently at position cur, creating a fresh one
// via addVertex(Before(...)) if none is already there.
func (s *session) labelBefore(cur int) string {
	if cur > 0 {
		prev := s.c.List.At(cur - 1)
		if prev.Kind == bytecode.KindLabel {
			return prev.Label
		}
	}
	name := s.c.List.FreshLabel("L")
	anchorID := s.idAt(cur)
	newIdx := s.insertBefore(cur, bytecode.Instruction{Kind: bytecode.KindLabel, Label: name})
	s.addVertex(s.idAt(newIdx), digraph.Before[int](anchorID))
	return name
}

// labelAfter returns the label name of the label instruction immediately
// after the instruction currently at position cur, creating a fresh one if
// none is already there.
func (s *session) labelAfter(cur int) string {
	if cur+1 < s.c.List.Len() {
		next := s.c.List.At(cur + 1)
		if next.Kind == bytecode.KindLabel {
			return next.Label
		}
	}
	name := s.c.List.FreshLabel("L")
	anchorID := s.idAt(cur)
	newIdx := s.insertAfter(cur, bytecode.Instruction{Kind: bytecode.KindLabel, Label: name})
	s.addVertex(s.idAt(newIdx), digraph.After[int](anchorID))
	return name
}

// idsToPositions resolves a set of stable instruction IDs to their current
// list positions.
func (c *Cloner) idsToPositions(ids map[int]struct{}) (map[int]struct{}, error) {
	out := make(map[int]struct{}, len(ids))
	for id := range ids {
		pos, err := c.List.IndexOfID(id)
		if err != nil {
			return nil, err
		}
		out[pos] = struct{}{}
	}
	return out, nil
}

func sortedInts(s map[int]struct{}) []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
