// Package weave is an immediate-mode node editor for [Ebitengine].
//
// Weave draws an infinite pannable grid on which applications place nodes
// with typed input and output pins, connect them with links by dragging
// between pins, select and move them, and persist the visual layout:
// everything a dataflow-style editor UI needs.
//
// # Quick start
//
// Create the process-wide context once at startup, then one editor per
// canvas. Each frame, rebuild the editor content between [BeginEditor]
// and [EditorScope.End], then render with [EditorContext.Draw]:
//
//	ctx := weave.CreateContext()
//	defer ctx.Destroy()
//	ed := ctx.NewEditor()
//	gen := ed.IDGen()
//	node := gen.NextNode()
//	in, out := gen.NextInputPin(), gen.NextOutputPin()
//
//	// each frame:
//	es := weave.BeginEditor(ed)
//	ns := es.BeginNode(node)
//	tb := ns.BeginTitleBar()
//	tb.Text("simple node :)")
//	tb.End()
//	ia := ns.BeginInputAttribute(in, weave.PinCircleFilled)
//	ia.Text("input")
//	ia.End()
//	oa := ns.BeginOutputAttribute(out, weave.PinCircleFilled)
//	oa.Text("output")
//	oa.End()
//	ns.End()
//	frame := es.End()
//	// ... in Draw: ed.Draw(screen)
//
// # Scopes
//
// Every Begin* call returns a scope guard whose End must be called before
// the enclosing scope closes. The guards narrow the legal operations at
// each nesting level (editor -> node -> attribute), and an internal scope
// stack panics on any out-of-order End or misplaced call, so a malformed
// frame is caught at the call site instead of corrupting the draw pass.
//
// # Frames
//
// [EditorScope.End] returns a [Frame] describing what the user did this
// frame: links created or detached, hovered and selected elements, and
// the active attribute. Applications apply the reported changes to their
// own graph model; weave never mutates application state.
//
// # Identifiers
//
// All ids come from an [IDGen]. Input and output pins share one counter
// so a bare [PinID] is unambiguous; node, link, and attribute ids use
// independent counters. Weave stores only ids: the application owns the
// graph topology, weave owns the visual state (positions, panning,
// selection), and the two are reassociated by id on load.
//
// The weave/dataflow subpackage provides the typed value-propagation
// graph used by the color mixer example.
//
// [Ebitengine]: https://ebitengine.org
package weave
