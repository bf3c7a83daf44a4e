package weave

import "testing"

// newTestEditor creates a context plus editor and tears the context down
// with the test. Tests share the process-wide context slot, so they must
// not run in parallel.
func newTestEditor(t *testing.T) *EditorContext {
	t.Helper()
	ctx := CreateContext()
	t.Cleanup(ctx.Destroy)
	return ctx.NewEditor()
}

// runEmptyFrame runs one frame with no content.
func runEmptyFrame(ed *EditorContext) *Frame {
	return BeginEditor(ed).End()
}

// submitSimpleNode declares a titled node with one input and one output
// pin, the standard fixture for interaction tests.
func submitSimpleNode(scope *EditorScope, id NodeID, in InputPinID, out OutputPinID) {
	node := scope.BeginNode(id)
	title := node.BeginTitleBar()
	title.Text("node")
	title.End()
	ia := node.BeginInputAttribute(in, PinCircleFilled)
	ia.Text("in")
	ia.End()
	oa := node.BeginOutputAttribute(out, PinCircleFilled)
	oa.Text("out")
	oa.End()
	node.End()
}

// pinPos returns a pin's resolved position from the last completed frame.
func pinPos(t *testing.T, ed *EditorContext, pin PinID) Vec2 {
	t.Helper()
	for _, g := range ed.prevPins {
		if g.pin == pin {
			return g.pos
		}
	}
	t.Fatalf("pin %d not in previous frame", pin)
	return Vec2{}
}

// nodeCenter returns a node's center from the last completed frame.
func nodeCenter(t *testing.T, ed *EditorContext, id NodeID) Vec2 {
	t.Helper()
	for _, g := range ed.prevNodes {
		if g.node == id {
			return Vec2{X: g.rect.X + g.rect.Width/2, Y: g.rect.Y + g.rect.Height/2}
		}
	}
	t.Fatalf("node %d not in previous frame", id)
	return Vec2{}
}

func expectPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic: %s", want)
		}
	}()
	fn()
}
