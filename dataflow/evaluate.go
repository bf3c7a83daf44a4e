package dataflow

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/hollowaylabs/weave"
)

// Evaluate recomputes the whole graph. Each output channel runs as an
// independent pass with fresh cycle markers, so an upstream node feeding
// two channels is recomputed once per channel. That redundancy is
// accepted: graphs are small and evaluation runs once per redrawn frame.
func (g *Graph) Evaluate() {
	out := g.Output()
	for _, pin := range []weave.InputPinID{out.InRed, out.InGreen, out.InBlue} {
		g.resetMarkers()
		g.update(0, pin, true)
	}
}

func (g *Graph) resetMarkers() {
	for _, n := range g.Nodes {
		n.updated = false
	}
}

// update recomputes the node at idx after recursing into its unvisited
// predecessors. When byPin is set only links into that exact input pin
// count as predecessors; otherwise all of the node's input pins do.
//
// Predecessors are marked before descent, so a cycle terminates: a node
// reached again within the same pass is treated as a completed value
// source even though its value may still be from the previous pass. One
// pass resolves cycles to a finite answer, not a fixed point.
func (g *Graph) update(idx int, pin weave.InputPinID, byPin bool) {
	cur := g.Nodes[idx]

	var preds []int
	for i, cand := range g.Nodes {
		for _, l := range g.Links {
			if !cand.HasOutput(l.Start) {
				continue
			}
			if byPin {
				if l.End != pin {
					continue
				}
			} else if !hasInput(cur, l.End) {
				continue
			}
			preds = append(preds, i)
			break
		}
	}

	for _, p := range preds {
		if !g.Nodes[p].updated {
			g.Nodes[p].updated = true
			g.update(p, 0, false)
		}
	}

	switch cur.Kind {
	case KindAdd:
		sum := float32(0)
		for _, p := range preds {
			sum += g.Nodes[p].Value
		}
		cur.Value = sum
	case KindMultiply:
		product := float32(1)
		for _, p := range preds {
			product *= g.Nodes[p].Value
		}
		cur.Value = product
	case KindSine:
		if len(preds) > 0 {
			cur.Value = math32.Sin(g.Nodes[preds[0]].Value * math32.Pi)
		} else {
			cur.Value = 0
		}
	case KindTime:
		cur.Value = float32(time.Now().UnixMilli()%1000) / 1000
	case KindConstant:
		// Set from the UI, never recomputed.
	case KindOutput:
		val := float32(unconnectedChannel)
		if len(preds) > 0 {
			val = 0
			for _, p := range preds {
				val += g.Nodes[p].Value
			}
		}
		switch pin {
		case cur.InRed:
			cur.Red = val
		case cur.InGreen:
			cur.Green = val
		case cur.InBlue:
			cur.Blue = val
		}
	}
}

func hasInput(n *Node, pin weave.InputPinID) bool {
	for _, in := range n.Inputs() {
		if in == pin {
			return true
		}
	}
	return false
}
