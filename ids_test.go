package weave

import "testing"

func TestPinIDsShareOneCounter(t *testing.T) {
	var gen IDGen
	in := gen.NextInputPin()
	out := gen.NextOutputPin()
	in2 := gen.NextInputPin()

	if in.Pin() == out.Pin() {
		t.Errorf("input %d and output %d collided", in, out)
	}
	if out.Pin() == in2.Pin() {
		t.Errorf("output %d and input %d collided", out, in2)
	}
	if in.Pin() != 0 || out.Pin() != 1 || in2.Pin() != 2 {
		t.Errorf("pins = %d,%d,%d, want 0,1,2", in.Pin(), out.Pin(), in2.Pin())
	}
}

func TestIndependentCounters(t *testing.T) {
	var gen IDGen
	n0 := gen.NextNode()
	l0 := gen.NextLink()
	a0 := gen.NextAttribute()
	n1 := gen.NextNode()

	if n0 != 0 || l0 != 0 || a0 != 0 {
		t.Errorf("first ids = %d,%d,%d, want 0,0,0", n0, l0, a0)
	}
	if n1 != 1 {
		t.Errorf("second node id = %d, want 1", n1)
	}
}

func TestEachEditorHasItsOwnGenerator(t *testing.T) {
	ctx := CreateContext()
	defer ctx.Destroy()
	a := ctx.NewEditor()
	b := ctx.NewEditor()

	na := a.IDGen().NextNode()
	nb := b.IDGen().NextNode()
	if na != nb {
		t.Errorf("fresh generators diverged: %d vs %d", na, nb)
	}
}
