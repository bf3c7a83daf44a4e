package dataflow

import (
	"github.com/hollowaylabs/weave"
)

// Link is a directed edge from an output pin to an input pin.
type Link struct {
	ID    weave.LinkID
	Start weave.OutputPinID
	End   weave.InputPinID
}

// Graph owns the node and link lists. Index 0 is always the output node.
type Graph struct {
	Nodes []*Node
	Links []Link
}

// unconnectedChannel is the value an output channel falls back to when
// its input pin has no incoming link, so a fresh graph renders a dim gray
// instead of black.
const unconnectedChannel = 0.1

// New creates a graph holding only the output node, with all three
// channels at their unconnected default.
func New(gen *weave.IDGen) *Graph {
	return &Graph{
		Nodes: []*Node{{
			ID:      gen.NextNode(),
			Kind:    KindOutput,
			InRed:   gen.NextInputPin(),
			InGreen: gen.NextInputPin(),
			InBlue:  gen.NextInputPin(),
			Red:     unconnectedChannel,
			Green:   unconnectedChannel,
			Blue:    unconnectedChannel,
		}},
	}
}

// Output returns the graph's output node.
func (g *Graph) Output() *Node {
	return g.Nodes[0]
}

// AddNode appends a new node of the given kind, allocating its ids from
// gen. KindOutput is rejected with a panic: a graph has exactly one,
// created by New.
func (g *Graph) AddNode(kind Kind, gen *weave.IDGen) *Node {
	if kind == KindOutput {
		panic("dataflow: a graph has exactly one output node")
	}
	n := &Node{
		ID:   gen.NextNode(),
		Kind: kind,
		In:   gen.NextInputPin(),
		Out:  gen.NextOutputPin(),
	}
	switch kind {
	case KindTime:
		n.Value = 0.5
	case KindConstant:
		n.Attr = gen.NextAttribute()
	}
	g.Nodes = append(g.Nodes, n)
	return n
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id weave.NodeID) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// RemoveNode deletes a node and every link touching one of its pins.
// The output node cannot be removed. Unknown ids are a no-op.
func (g *Graph) RemoveNode(id weave.NodeID) {
	for i, n := range g.Nodes {
		if n.ID != id || n.Kind == KindOutput {
			continue
		}
		g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)
		kept := g.Links[:0]
		for _, l := range g.Links {
			if l.Start == n.Out {
				continue
			}
			attached := false
			for _, in := range n.Inputs() {
				if l.End == in {
					attached = true
					break
				}
			}
			if !attached {
				kept = append(kept, l)
			}
		}
		g.Links = kept
		return
	}
}

// AddLink connects an output pin to an input pin. Input pins accept at
// most one incoming link, so an existing link into the same input pin is
// replaced.
func (g *Graph) AddLink(id weave.LinkID, start weave.OutputPinID, end weave.InputPinID) {
	for i, l := range g.Links {
		if l.End == end {
			g.Links = append(g.Links[:i], g.Links[i+1:]...)
			break
		}
	}
	g.Links = append(g.Links, Link{ID: id, Start: start, End: end})
}

// SetConstant sets the value of a Constant node. Other kinds (and
// unknown ids) are left alone, since the evaluator overwrites their
// values every pass anyway.
func (g *Graph) SetConstant(id weave.NodeID, v float32) {
	if n := g.Node(id); n != nil && n.Kind == KindConstant {
		n.Value = v
	}
}

// RemoveLink deletes the link with the given id. Unknown ids are a no-op.
func (g *Graph) RemoveLink(id weave.LinkID) {
	for i, l := range g.Links {
		if l.ID == id {
			g.Links = append(g.Links[:i], g.Links[i+1:]...)
			return
		}
	}
}
