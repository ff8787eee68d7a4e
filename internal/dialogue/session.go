package dialogue

// Session is a mutable cursor into a graph: the state machine for one
// open conversation. It is owned by a single goroutine (the simulation
// loop) and is destroyed, not parked, when the conversation ends.
type Session struct {
	// Speaker is the display name of the NPC who owns the graph.
	Speaker string

	graph    *Graph
	current  int
	selected int
}

// Open starts a session at the graph's start node, applying that node's
// on-enter effect before any choice projection happens.
func Open(speaker string, g *Graph, flags FlagStore) *Session {
	s := &Session{Speaker: speaker, graph: g}
	s.enterAt(g.start, flags)
	return s
}

// Node returns the node the session currently sits on.
func (s *Session) Node() *Node {
	return s.graph.nodeAt(s.current)
}

// Selected returns the highlighted index within the enabled-choice list.
// It is always 0 when no choices are enabled.
func (s *Session) Selected() int {
	return s.selected
}

// EnabledChoices projects the current node's choices through the flag
// store. The projection is recomputed on every call: conditions may
// depend on flags that changed since the last frame, so it is never
// cached across mutations.
func (s *Session) EnabledChoices(flags FlagReader) []Choice {
	node := s.Node()
	enabled := make([]Choice, 0, len(node.Choices))
	for _, choice := range node.Choices {
		if choice.If.Eval(flags) {
			enabled = append(enabled, choice)
		}
	}
	return enabled
}

// Navigate moves the highlight by delta (-1, 0, +1) and wraps it modulo
// the current enabled-choice count. Delta 0 is allowed and simply
// re-normalizes the highlight after flags changed between frames. With
// no enabled choices the highlight is forced to 0.
func (s *Session) Navigate(delta int, flags FlagReader) {
	count := len(s.EnabledChoices(flags))
	if count == 0 {
		s.selected = 0
		return
	}
	s.selected = ((s.selected+delta)%count + count) % count
}

// ConfirmSelected applies the highlighted choice. It is a no-op when no
// choices are enabled. closed reports that the session reached its
// terminal transition and must be destroyed by the owner.
func (s *Session) ConfirmSelected(flags FlagStore) (closed bool, err error) {
	enabled := s.EnabledChoices(flags)
	if len(enabled) == 0 {
		return false, nil
	}
	idx := s.selected
	if idx >= len(enabled) {
		idx = 0
	}
	return s.apply(enabled[idx], flags)
}

// ConfirmOrdinal applies the choice at 1-based position n within the
// enabled list. Out-of-range ordinals are silently ignored.
func (s *Session) ConfirmOrdinal(n int, flags FlagStore) (closed bool, err error) {
	enabled := s.EnabledChoices(flags)
	if n < 1 || n > len(enabled) {
		return false, nil
	}
	return s.apply(enabled[n-1], flags)
}

// apply runs the choice's effect and either ends the session (empty
// target) or transitions to the target node, re-triggering its on-enter
// effect and resetting the highlight.
func (s *Session) apply(choice Choice, flags FlagStore) (bool, error) {
	choice.Do.Apply(flags)
	if choice.Next == "" {
		return true, nil
	}
	idx, ok := s.graph.indexOf(choice.Next)
	if !ok {
		// Unreachable through a validated graph.
		_, err := s.graph.Node(choice.Next)
		return true, err
	}
	s.enterAt(idx, flags)
	return false, nil
}

// enterAt sets the cursor, applies the node's on-enter effect before the
// node's choices are next projected, and resets the highlight.
func (s *Session) enterAt(idx int, flags FlagStore) {
	s.current = idx
	s.graph.nodeAt(idx).OnEnter.Apply(flags)
	s.selected = 0
}
