// Package dataflow is a small scalar dataflow evaluator for node graphs
// built with the weave editor. Nodes carry one float value each; links
// route values from output pins to input pins; Evaluate recomputes the
// graph so the output node's color channels reflect their feeds.
//
// The package never talks to the editor directly. The application owns
// the mapping: it submits this graph's nodes and links to the editor
// every frame, and applies the editor's link created/destroyed events
// back onto the graph.
package dataflow

import (
	"github.com/hollowaylabs/weave"
)

// Kind selects a node's behavior during evaluation.
type Kind uint8

const (
	// KindAdd sums all predecessor values (0 with none).
	KindAdd Kind = iota
	// KindMultiply multiplies all predecessor values (1 with none).
	KindMultiply
	// KindSine is sin(first predecessor * pi), 0 with none.
	KindSine
	// KindTime is a sawtooth over wall-clock time in [0, 1) with a one
	// second period, recomputed fresh on every evaluation.
	KindTime
	// KindConstant holds a value set from the UI; evaluation never
	// changes it.
	KindConstant
	// KindOutput is the terminal sink with red, green, and blue input
	// channels. A graph has exactly one, created by New.
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "Add"
	case KindMultiply:
		return "Multiply"
	case KindSine:
		return "Sine"
	case KindTime:
		return "Time"
	case KindConstant:
		return "Constant"
	case KindOutput:
		return "Output"
	default:
		return "unknown"
	}
}

// Node is one graph node. Pin and attribute ids come from the owning
// editor's IDGen so a pin id alone identifies its node unambiguously.
type Node struct {
	ID    weave.NodeID
	Kind  Kind
	Value float32

	// In and Out are the pins of non-output kinds. Time and Constant
	// carry an input pin for layout symmetry but never read from it.
	In  weave.InputPinID
	Out weave.OutputPinID

	// Attr is the slider attribute of a Constant node.
	Attr weave.AttributeID

	// Output channel pins and their current values.
	InRed, InGreen, InBlue weave.InputPinID
	Red, Green, Blue       float32

	// updated is the per-pass cycle marker.
	updated bool
}

// HasOutput reports whether out is this node's output pin. The output
// node has none and is never a predecessor.
func (n *Node) HasOutput(out weave.OutputPinID) bool {
	if n.Kind == KindOutput {
		return false
	}
	return n.Out == out
}

// Inputs returns the input pins evaluation reads from. Time and Constant
// have none.
func (n *Node) Inputs() []weave.InputPinID {
	switch n.Kind {
	case KindAdd, KindMultiply, KindSine:
		return []weave.InputPinID{n.In}
	case KindOutput:
		return []weave.InputPinID{n.InRed, n.InGreen, n.InBlue}
	default:
		return nil
	}
}
