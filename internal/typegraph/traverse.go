package typegraph

import "sort"

// CircularInheritance reports whether class's supertype chain loops back on
// itself, and if so returns the cycle as a sequence of class names starting
// and ending at the same class, via a DFS with a three-color
// (white/gray/black) visited set walking DirectSupertypes. A real class
// hierarchy can never legitimately cycle; the driver treats a detected
// cycle as a structural-verification failure rather than looping forever.
func (g *Graph) CircularInheritance(class string) (cycle []string, found bool) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int)
	var path []string

	var visit func(c string) bool
	visit = func(c string) bool {
		color[c] = gray
		path = append(path, c)

		supers, err := g.DirectSupertypes(c)
		if err == nil {
			for _, s := range supers {
				switch color[s] {
				case white:
					if visit(s) {
						return true
					}
				case gray:
					// closes the cycle at s
					start := indexOf(path, s)
					cycle = append([]string(nil), path[start:]...)
					cycle = append(cycle, s)
					return true
				}
			}
		}

		path = path[:len(path)-1]
		color[c] = black
		return false
	}

	if visit(class) {
		return cycle, true
	}
	return nil, false
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

// Ancestors returns every class reachable from class by repeatedly
// following DirectSupertypes — its full transitive supertype closure,
// sorted ascending, via a level-order BFS traversal over a visited set.
// This is the primitive IsAssignableTo is built on: B is assignable to A
// iff A ∈ Ancestors(B) ∪ {B}.
func (g *Graph) Ancestors(class string) ([]string, error) {
	if !g.HasClass(class) {
		return nil, ErrClassNotFound
	}

	visited := map[string]struct{}{class: {}}
	queue := []string{class}
	var out []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		supers, err := g.DirectSupertypes(cur)
		if err != nil {
			continue
		}
		for _, s := range supers {
			if _, seen := visited[s]; seen {
				continue
			}
			visited[s] = struct{}{}
			out = append(out, s)
			queue = append(queue, s)
		}
	}

	sort.Strings(out)
	return out, nil
}

// IsAssignableTo reports whether sub is sub's class or one of its
// transitive supertypes reach target — i.e. whether a value of static type
// sub may be used where target is expected, per the JVM's assignability
// rule for reference types.
func (g *Graph) IsAssignableTo(sub, target string) (bool, error) {
	if sub == target {
		return g.HasClass(sub), nil
	}
	ancestors, err := g.Ancestors(sub)
	if err != nil {
		return false, err
	}
	for _, a := range ancestors {
		if a == target {
			return true, nil
		}
	}
	return false, nil
}

// InheritanceOrder returns every recorded class in a topological order: a
// supertype always precedes its subtypes. A Kahn's-algorithm sort walks
// DirectSubtypes (the reverse of DirectSupertypes) so that roots of the
// hierarchy (classes with no recorded supertype, typically
// java/lang/Object) come first. Ties break on ascending class name for
// deterministic iteration.
//
// Returns ErrClassNotFound is never produced by this function; instead, if
// the recorded edges contain a cycle, InheritanceOrder returns a
// best-effort partial order together with the cycle found by
// CircularInheritance so the caller can report it.
func (g *Graph) InheritanceOrder() (order []string, cycle []string) {
	classes := g.Classes()

	indegree := make(map[string]int, len(classes))
	for _, c := range classes {
		supers, _ := g.DirectSupertypes(c)
		indegree[c] = len(supers)
	}

	var ready []string
	for _, c := range classes {
		if indegree[c] == 0 {
			ready = append(ready, c)
		}
	}
	sort.Strings(ready)

	for len(ready) > 0 {
		sort.Strings(ready)
		c := ready[0]
		ready = ready[1:]
		order = append(order, c)

		subs, _ := g.DirectSubtypes(c)
		sort.Strings(subs)
		for _, s := range subs {
			indegree[s]--
			if indegree[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	if len(order) < len(classes) {
		for _, c := range classes {
			if cyc, found := g.CircularInheritance(c); found {
				cycle = cyc
				break
			}
		}
	}

	return order, cycle
}
