// Package dialogue implements validated conversation graphs and the
// session state machine that walks them.
//
// Graphs are immutable once constructed and shareable across sessions.
// All branching is expressed as flag conditions and flag effects over a
// store the caller owns; nodes never hold state of their own.
package dialogue

import (
	"errors"
	"fmt"
)

// NodeID uniquely identifies a node within one graph.
type NodeID string

// FlagReader is the read-only view conditions evaluate against.
type FlagReader interface {
	Has(key string) bool
}

// FlagStore is the mutable handle effects apply to.
type FlagStore interface {
	FlagReader
	Set(key string, value bool)
}

// Condition gates a choice on the flag store. A nil Condition is always
// satisfied. All AllSet flags must be set and no NoneSet flag may be.
type Condition struct {
	AllSet  []string
	NoneSet []string
}

// Eval reports whether the condition holds under the given flags.
func (c *Condition) Eval(flags FlagReader) bool {
	if c == nil {
		return true
	}
	for _, key := range c.AllSet {
		if !flags.Has(key) {
			return false
		}
	}
	for _, key := range c.NoneSet {
		if flags.Has(key) {
			return false
		}
	}
	return true
}

// Effect mutates the flag store. A nil Effect does nothing.
type Effect struct {
	Set   []string
	Clear []string
}

// Apply writes the effect's flags into the store.
func (e *Effect) Apply(flags FlagStore) {
	if e == nil {
		return
	}
	for _, key := range e.Set {
		flags.Set(key, true)
	}
	for _, key := range e.Clear {
		flags.Set(key, false)
	}
}

// Choice is one selectable response. An empty Next ends the conversation.
type Choice struct {
	Label string
	Next  NodeID
	If    *Condition
	Do    *Effect
}

// Node is one turn of dialogue: body text plus an ordered choice list.
type Node struct {
	ID      NodeID
	Text    string
	Choices []Choice
	OnEnter *Effect
}

// Graph is a validated, immutable conversation graph. Node ids are
// resolved to integer indexes at construction so play-time transitions
// never repeat string lookups.
type Graph struct {
	nodes []*Node
	index map[NodeID]int
	start int
}

var (
	// ErrEmptyGraph is returned when a graph is built with no nodes.
	ErrEmptyGraph = errors.New("dialogue: graph has no nodes")
	// ErrDuplicateNode is returned when two nodes share an id.
	ErrDuplicateNode = errors.New("dialogue: duplicate node id")
	// ErrMissingStart is returned when the start id resolves to no node.
	ErrMissingStart = errors.New("dialogue: start node not found")
	// ErrBadReference is returned when a choice targets a missing node.
	ErrBadReference = errors.New("dialogue: choice targets missing node")
	// ErrNodeNotFound is returned for lookups outside the validated graph.
	// Seeing it after construction succeeded indicates a defect in the
	// caller, not a condition reachable through normal play.
	ErrNodeNotFound = errors.New("dialogue: node not found")
)

// NewGraph validates and builds a graph. Every choice target and the
// start id must resolve to a node in the same graph; violations are
// construction-time errors and the graph is not usable.
func NewGraph(start NodeID, nodes []*Node) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	g := &Graph{
		nodes: make([]*Node, 0, len(nodes)),
		index: make(map[NodeID]int, len(nodes)),
	}
	for _, node := range nodes {
		if _, exists := g.index[node.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, node.ID)
		}
		g.index[node.ID] = len(g.nodes)
		g.nodes = append(g.nodes, node)
	}
	startIdx, ok := g.index[start]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingStart, start)
	}
	g.start = startIdx
	for _, node := range g.nodes {
		for _, choice := range node.Choices {
			if choice.Next == "" {
				continue
			}
			if _, ok := g.index[choice.Next]; !ok {
				return nil, fmt.Errorf("%w: %q -> %q", ErrBadReference, node.ID, choice.Next)
			}
		}
	}
	return g, nil
}

// Start returns the id of the graph's entry node.
func (g *Graph) Start() NodeID {
	return g.nodes[g.start].ID
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, error) {
	idx, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return g.nodes[idx], nil
}

func (g *Graph) nodeAt(idx int) *Node {
	return g.nodes[idx]
}

func (g *Graph) indexOf(id NodeID) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}
