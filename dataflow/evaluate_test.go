package dataflow

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/hollowaylabs/weave"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math32.Abs(a-b) < epsilon
}

// newGraph returns a fresh graph plus the generator its ids came from.
func newGraph() (*Graph, *weave.IDGen) {
	var gen weave.IDGen
	return New(&gen), &gen
}

func TestNewGraphDefaults(t *testing.T) {
	g, _ := newGraph()
	if len(g.Nodes) != 1 {
		t.Fatalf("len(Nodes) = %d, want 1", len(g.Nodes))
	}
	out := g.Output()
	if out.Kind != KindOutput {
		t.Errorf("Output kind = %v, want Output", out.Kind)
	}
	if out.Red != 0.1 || out.Green != 0.1 || out.Blue != 0.1 {
		t.Errorf("channels = (%f,%f,%f), want (0.1,0.1,0.1)", out.Red, out.Green, out.Blue)
	}
}

func TestAddNodeRejectsOutput(t *testing.T) {
	g, gen := newGraph()
	defer func() {
		if recover() == nil {
			t.Error("AddNode(KindOutput) did not panic")
		}
	}()
	g.AddNode(KindOutput, gen)
}

func TestAddWithPredecessors(t *testing.T) {
	g, gen := newGraph()
	a := g.AddNode(KindConstant, gen)
	a.Value = 2.0
	b := g.AddNode(KindConstant, gen)
	b.Value = 3.0
	sum := g.AddNode(KindAdd, gen)
	// Two constants into the same input pin exercise fan-out of the
	// walk, not of the editor: add bypasses AddLink's fan-in rule by
	// building links directly.
	g.Links = append(g.Links,
		Link{ID: 1, Start: a.Out, End: sum.In},
		Link{ID: 2, Start: b.Out, End: sum.In},
	)
	g.AddLink(3, sum.Out, g.Output().InRed)

	g.Evaluate()
	if !approxEqual(sum.Value, 5.0) {
		t.Errorf("Add value = %f, want 5.0", sum.Value)
	}
}

func TestAddWithoutPredecessors(t *testing.T) {
	g, gen := newGraph()
	sum := g.AddNode(KindAdd, gen)
	g.AddLink(1, sum.Out, g.Output().InRed)
	g.Evaluate()
	if sum.Value != 0 {
		t.Errorf("Add value = %f, want 0", sum.Value)
	}
}

func TestMultiplyIdentity(t *testing.T) {
	g, gen := newGraph()
	a := g.AddNode(KindConstant, gen)
	a.Value = 2.0
	b := g.AddNode(KindConstant, gen)
	b.Value = 3.0
	mul := g.AddNode(KindMultiply, gen)
	g.Links = append(g.Links,
		Link{ID: 1, Start: a.Out, End: mul.In},
		Link{ID: 2, Start: b.Out, End: mul.In},
	)
	g.AddLink(3, mul.Out, g.Output().InGreen)

	g.Evaluate()
	if !approxEqual(mul.Value, 6.0) {
		t.Errorf("Multiply value = %f, want 6.0", mul.Value)
	}

	empty := g.AddNode(KindMultiply, gen)
	g.AddLink(4, empty.Out, g.Output().InBlue)
	g.Evaluate()
	if empty.Value != 1 {
		t.Errorf("empty Multiply value = %f, want 1", empty.Value)
	}
}

func TestSine(t *testing.T) {
	g, gen := newGraph()
	c := g.AddNode(KindConstant, gen)
	c.Value = 0.5
	sin := g.AddNode(KindSine, gen)
	g.AddLink(1, c.Out, sin.In)
	g.AddLink(2, sin.Out, g.Output().InRed)

	g.Evaluate()
	if !approxEqual(sin.Value, 1.0) {
		t.Errorf("Sine(0.5) value = %f, want 1.0", sin.Value)
	}

	g.RemoveLink(1)
	g.Evaluate()
	if sin.Value != 0 {
		t.Errorf("unconnected Sine value = %f, want 0", sin.Value)
	}
}

func TestOutputChannels(t *testing.T) {
	g, gen := newGraph()
	out := g.Output()

	// Red stays unconnected. Green is a constant 0.7. Blue is 0.1 + 0.2.
	green := g.AddNode(KindConstant, gen)
	green.Value = 0.7
	g.AddLink(1, green.Out, out.InGreen)

	a := g.AddNode(KindConstant, gen)
	a.Value = 0.1
	b := g.AddNode(KindConstant, gen)
	b.Value = 0.2
	sum := g.AddNode(KindAdd, gen)
	g.Links = append(g.Links,
		Link{ID: 2, Start: a.Out, End: sum.In},
		Link{ID: 3, Start: b.Out, End: sum.In},
	)
	g.AddLink(4, sum.Out, out.InBlue)

	g.Evaluate()
	if !approxEqual(out.Red, 0.1) {
		t.Errorf("red = %f, want 0.1 fallback", out.Red)
	}
	if !approxEqual(out.Green, 0.7) {
		t.Errorf("green = %f, want 0.7", out.Green)
	}
	if !approxEqual(out.Blue, 0.3) {
		t.Errorf("blue = %f, want 0.3", out.Blue)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	g, gen := newGraph()
	c := g.AddNode(KindConstant, gen)
	c.Value = 0.4
	sin := g.AddNode(KindSine, gen)
	sum := g.AddNode(KindAdd, gen)
	g.AddLink(1, c.Out, sin.In)
	g.AddLink(2, sin.Out, sum.In)
	g.AddLink(3, sum.Out, g.Output().InRed)

	g.Evaluate()
	first := []float32{sin.Value, sum.Value, g.Output().Red}
	g.Evaluate()
	second := []float32{sin.Value, sum.Value, g.Output().Red}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("value %d changed across passes: %f != %f", i, first[i], second[i])
		}
	}
}

func TestCycleTerminates(t *testing.T) {
	g, gen := newGraph()
	a := g.AddNode(KindAdd, gen)
	b := g.AddNode(KindAdd, gen)
	g.AddLink(1, a.Out, b.In)
	g.AddLink(2, b.Out, a.In)
	g.AddLink(3, b.Out, g.Output().InRed)

	// Must terminate; the exact values are a one-pass artifact.
	g.Evaluate()
	if math32.IsNaN(a.Value) || math32.IsNaN(b.Value) {
		t.Errorf("cycle produced NaN: a=%f b=%f", a.Value, b.Value)
	}
	if math32.IsInf(a.Value, 0) || math32.IsInf(b.Value, 0) {
		t.Errorf("cycle produced Inf: a=%f b=%f", a.Value, b.Value)
	}
}

func TestTimeInUnitRange(t *testing.T) {
	g, gen := newGraph()
	tn := g.AddNode(KindTime, gen)
	g.AddLink(1, tn.Out, g.Output().InRed)
	g.Evaluate()
	if tn.Value < 0 || tn.Value >= 1 {
		t.Errorf("Time value = %f, want [0, 1)", tn.Value)
	}
}

func TestRemoveLinkFallsBack(t *testing.T) {
	g, gen := newGraph()
	c := g.AddNode(KindConstant, gen)
	c.Value = 0.9
	g.AddLink(1, c.Out, g.Output().InGreen)
	g.Evaluate()
	if !approxEqual(g.Output().Green, 0.9) {
		t.Fatalf("green = %f, want 0.9", g.Output().Green)
	}

	g.RemoveLink(1)
	g.Evaluate()
	if !approxEqual(g.Output().Green, 0.1) {
		t.Errorf("green after unlink = %f, want 0.1 fallback", g.Output().Green)
	}
}

func TestAddLinkReplacesFanIn(t *testing.T) {
	g, gen := newGraph()
	a := g.AddNode(KindConstant, gen)
	a.Value = 0.2
	b := g.AddNode(KindConstant, gen)
	b.Value = 0.8
	g.AddLink(1, a.Out, g.Output().InRed)
	g.AddLink(2, b.Out, g.Output().InRed)

	if len(g.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1 after fan-in replacement", len(g.Links))
	}
	g.Evaluate()
	if !approxEqual(g.Output().Red, 0.8) {
		t.Errorf("red = %f, want 0.8 from the replacing link", g.Output().Red)
	}
}

func TestRemoveNodeDropsLinks(t *testing.T) {
	g, gen := newGraph()
	c := g.AddNode(KindConstant, gen)
	c.Value = 0.5
	sum := g.AddNode(KindAdd, gen)
	g.AddLink(1, c.Out, sum.In)
	g.AddLink(2, sum.Out, g.Output().InRed)

	g.RemoveNode(sum.ID)
	if g.Node(sum.ID) != nil {
		t.Error("removed node still present")
	}
	if len(g.Links) != 0 {
		t.Errorf("len(Links) = %d, want 0 after node removal", len(g.Links))
	}

	// The output node refuses removal.
	g.RemoveNode(g.Output().ID)
	if len(g.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2 (output retained)", len(g.Nodes))
	}
}

func TestSetConstant(t *testing.T) {
	g, gen := newGraph()
	c := g.AddNode(KindConstant, gen)
	g.AddLink(1, c.Out, g.Output().InBlue)

	g.SetConstant(c.ID, 0.6)
	g.Evaluate()
	if !approxEqual(g.Output().Blue, 0.6) {
		t.Errorf("blue = %f, want 0.6", g.Output().Blue)
	}

	// Non-constant nodes are not writable this way.
	sum := g.AddNode(KindAdd, gen)
	g.SetConstant(sum.ID, 0.9)
	g.Evaluate()
	if !approxEqual(sum.Value, 0) {
		t.Errorf("add value = %f, want 0 (no predecessors)", sum.Value)
	}
}
