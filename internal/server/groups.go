package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lumipallolabs/imagedive/internal/grouper"
	"github.com/lumipallolabs/imagedive/internal/protocol"
	"github.com/lumipallolabs/imagedive/internal/viewstate"
)

// ErrUnknownGroup is returned when a panel toggles a key of no current group
var ErrUnknownGroup = errors.New("unknown group")

// groupState is the folded view shared by every page load of a server, so
// a reload keeps what the user collapsed
type groupState struct {
	mu    sync.Mutex
	tree  *grouper.Tree
	state grouper.State
	views *viewstate.Store
}

// SetViewState persists panel expansion in store between server runs
func (s *Server) SetViewState(store *viewstate.Store) {
	s.groups.mu.Lock()
	defer s.groups.mu.Unlock()
	s.groups.views = store
}

// fold groups the last scan the way the settings ask and applies the
// remembered expansion
func (s *Server) fold() protocol.PostGroups {
	tree := grouper.Fold(s.ctrl.Display(), grouper.Options{SortByPath: s.ctrl.Settings().SortGroups})

	g := &s.groups
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil {
		g.state = s.loadState(tree)
	}
	grouper.Restore(tree, g.state)
	g.tree = tree
	g.state = grouper.Capture(tree)
	return protocol.NewPostGroups(tree)
}

// toggle flips the group or project with the given wire key
func (s *Server) toggle(id string) (protocol.PostGroups, error) {
	g := &s.groups
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.tree == nil {
		return protocol.PostGroups{}, fmt.Errorf("%w: %s", ErrUnknownGroup, id)
	}
	key, ok := findKey(g.tree, id)
	if !ok {
		return protocol.PostGroups{}, fmt.Errorf("%w: %s", ErrUnknownGroup, id)
	}
	g.state.Toggle(g.tree, key)

	if g.views != nil {
		if err := g.views.Save(viewstate.FromState(s.ctrl.Roots(), g.state)); err != nil {
			s.logf("view state not saved: %v", err)
		}
	}
	return protocol.NewPostGroups(g.tree), nil
}

// loadState reads saved expansion, empty when nothing is saved
func (s *Server) loadState(tree *grouper.Tree) grouper.State {
	if s.groups.views == nil {
		return grouper.State{}
	}
	snap, err := s.groups.views.Load(s.ctrl.Roots())
	if err != nil {
		if !errors.Is(err, viewstate.ErrNoSnapshot) {
			s.logf("view state not restored: %v", err)
		}
		return grouper.State{}
	}
	return snap.State(tree)
}

func findKey(t *grouper.Tree, id string) (grouper.Key, bool) {
	for _, p := range t.Projects {
		if protocol.KeyID(p.Key) == id {
			return p.Key, true
		}
		for _, g := range p.Groups {
			if protocol.KeyID(g.Key) == id {
				return g.Key, true
			}
		}
	}
	return grouper.Key{}, false
}
