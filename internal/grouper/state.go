package grouper

// State remembers the expansion of projects and groups by key. Keys not
// present are expanded.
type State map[Key]bool

// Expanded reports the stored expansion for k, true when unknown
func (s State) Expanded(k Key) bool {
	if expanded, ok := s[k]; ok {
		return expanded
	}
	return true
}

// Capture records the current expansion of every project and group
func Capture(t *Tree) State {
	s := make(State)
	if t == nil {
		return s
	}
	for _, p := range t.Projects {
		s[p.Key] = p.Expanded
		for _, g := range p.Groups {
			s[g.Key] = g.Expanded
		}
	}
	return s
}

// Restore applies a previous state to a freshly folded tree. Projects and
// groups missing from a non-empty previous state are marked new.
func Restore(t *Tree, prev State) {
	if t == nil {
		return
	}
	for _, p := range t.Projects {
		_, known := prev[p.Key]
		p.Expanded = prev.Expanded(p.Key)
		p.IsNew = len(prev) > 0 && !known
		for _, g := range p.Groups {
			_, known := prev[g.Key]
			g.Expanded = prev.Expanded(g.Key)
			g.IsNew = len(prev) > 0 && !known
		}
	}
}

// Toggle flips the expansion of k in both the tree and the state
func (s State) Toggle(t *Tree, k Key) bool {
	expanded := !s.Expanded(k)
	s[k] = expanded
	for _, p := range t.Projects {
		if p.Key == k {
			p.Expanded = expanded
		}
		for _, g := range p.Groups {
			if g.Key == k {
				g.Expanded = expanded
			}
		}
	}
	return expanded
}
