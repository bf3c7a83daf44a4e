package weave

import "fmt"

// The scope guards encode the editor's legal call nesting:
//
//	BeginEditor -> [BeginNode -> [BeginTitleBar | Begin*Attribute ->
//	content -> End]* -> End]* -> Link* -> End
//
// Each Begin returns a guard exposing only the operations legal at that
// nesting level, and every guard's End must run before the enclosing
// scope closes. Discarding a guard without ending it is a mismatched
// call sequence; the scope stack catches it at the next operation and
// panics rather than producing a malformed frame.

type scopeKind uint8

const (
	scopeEditor scopeKind = iota
	scopeNode
	scopeAttribute
)

func (k scopeKind) String() string {
	switch k {
	case scopeEditor:
		return "editor"
	case scopeNode:
		return "node"
	case scopeAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// assertTop panics unless the guard at depth is the innermost open scope.
func (ed *EditorContext) assertTop(depth int, kind scopeKind, op string) {
	if len(ed.scopes) != depth || ed.scopes[depth-1] != kind {
		open := "none"
		if len(ed.scopes) > 0 {
			open = ed.scopes[len(ed.scopes)-1].String()
		}
		panic(fmt.Sprintf("weave: %s called with %s scope open (want %s)", op, open, kind))
	}
}

// --- Editor scope ---

// EditorScope is the guard for one frame of editor content. Obtained from
// [BeginEditor]; closed by End, which returns the frame's event queries.
type EditorScope struct {
	ed    *EditorContext
	depth int
	ended bool
}

// BeginEditor opens the editor scope for this frame. It processes the
// pointer input accumulated since the previous frame against the previous
// frame's geometry, then resets the frame's build state.
//
// Panics if no process-wide context exists or a frame is already open on
// this editor.
func BeginEditor(ed *EditorContext) *EditorScope {
	contextMu.Lock()
	live := currentContext != nil
	contextMu.Unlock()
	if !live {
		panic("weave: BeginEditor before CreateContext")
	}
	ed.checkLive()
	if len(ed.scopes) != 0 {
		panic("weave: BeginEditor while a frame is already open")
	}
	ed.scopes = append(ed.scopes, scopeEditor)

	ed.stepPanTween()
	ed.stepTestRunner()
	ed.frame = Frame{}
	ed.processInput()

	ed.curNodes = ed.curNodes[:0]
	ed.curPins = ed.curPins[:0]
	ed.curLinks = ed.curLinks[:0]
	ed.curWidgets = ed.curWidgets[:0]
	ed.drawRows = ed.drawRows[:0]
	ed.miniMap = miniMapState{}

	return &EditorScope{ed: ed, depth: 1}
}

// BeginNode opens a node scope. The node's position is retained editor
// state; new nodes appear at the grid origin unless positioned with
// [EditorContext.SetNodePosition] first.
func (es *EditorScope) BeginNode(id NodeID) *NodeScope {
	es.ed.assertTop(es.depth, scopeEditor, "BeginNode")
	es.ed.scopes = append(es.ed.scopes, scopeNode)
	ns := &NodeScope{ed: es.ed, depth: es.depth + 1, id: id}
	return ns
}

// Link submits a link between two pins for this frame. Both pins should
// belong to nodes submitted in the same frame; a link whose pins are
// missing is silently skipped at draw time.
func (es *EditorScope) Link(id LinkID, start OutputPinID, end InputPinID) {
	es.ed.assertTop(es.depth, scopeEditor, "Link")
	es.ed.curLinks = append(es.ed.curLinks, linkGeom{id: id, start: start, end: end})
}

// MiniMap requests a minimap overlay for this frame, sized as a fraction
// of the canvas and anchored in the given corner.
func (es *EditorScope) MiniMap(sizeFraction float32, location MiniMapLocation) {
	es.ed.assertTop(es.depth, scopeEditor, "MiniMap")
	if sizeFraction <= 0 {
		sizeFraction = 0.2
	}
	es.ed.miniMap = miniMapState{enabled: true, fraction: sizeFraction, location: location}
}

// IsHovered reports whether the canvas itself is hovered, false when the
// pointer is over a node, pin, or link, or outside the editor bounds.
func (es *EditorScope) IsHovered() bool {
	es.ed.assertTop(es.depth, scopeEditor, "IsHovered")
	return es.ed.frame.editorHovered
}

// End closes the editor scope, resolves this frame's link geometry, and
// returns the frame's event queries. Panics if a node or attribute scope
// is still open.
func (es *EditorScope) End() *Frame {
	if es.ended {
		panic("weave: editor scope ended twice")
	}
	es.ed.assertTop(es.depth, scopeEditor, "End (editor)")
	es.ended = true
	ed := es.ed
	ed.scopes = ed.scopes[:0]

	ed.resolveLinks()
	ed.frame.selectedNodes = append(ed.frame.selectedNodes[:0], ed.selNodes...)
	ed.frame.selectedLinks = append(ed.frame.selectedLinks[:0], ed.selLinks...)

	// This frame's geometry becomes next frame's hit-test input.
	ed.prevNodes, ed.curNodes = ed.curNodes, ed.prevNodes
	ed.prevPins, ed.curPins = ed.curPins, ed.prevPins
	ed.prevLinks, ed.curLinks = ed.curLinks, ed.prevLinks
	ed.prevWidgets, ed.curWidgets = ed.curWidgets, ed.prevWidgets

	return &ed.frame
}

// resolveLinks fills in endpoint positions from this frame's pins.
func (ed *EditorContext) resolveLinks() {
	for i := range ed.curLinks {
		l := &ed.curLinks[i]
		var haveStart, haveEnd bool
		for _, p := range ed.curPins {
			if !p.input && p.pin == l.start.Pin() {
				l.p0 = p.pos
				haveStart = true
			} else if p.input && p.pin == l.end.Pin() {
				l.p3 = p.pos
				haveEnd = true
			}
		}
		l.resolved = haveStart && haveEnd
	}
}

// --- Node scope ---

// layout constants matching the ebitenutil debug font metrics.
const (
	charWidth  = 6
	lineHeight = 16

	minNodeWidth = 80
)

type rowKind uint8

const (
	rowTitle rowKind = iota
	rowInput
	rowOutput
	rowStatic
	rowText
)

// nodeRow is one vertical band of node content, laid out top to bottom in
// declaration order.
type nodeRow struct {
	kind   rowKind
	pin    PinID
	shape  PinShape
	attr   AttributeID
	lines  []string
	slider *sliderDraw
	width  float32
	height float32
}

// NodeScope is the guard for one node's content.
type NodeScope struct {
	ed    *EditorContext
	depth int
	id    NodeID
	rows  []nodeRow
	ended bool
}

// BeginTitleBar opens the title bar band. Must be the first content
// declared in the node.
func (ns *NodeScope) BeginTitleBar() *AttributeScope {
	ns.ed.assertTop(ns.depth, scopeNode, "BeginTitleBar")
	if len(ns.rows) != 0 {
		panic("weave: BeginTitleBar after node content was already added")
	}
	return ns.beginRow(rowTitle, 0, 0, 0)
}

// BeginInputAttribute opens an input pin band. The pin is rendered on the
// node's left edge, vertically centered on the band.
func (ns *NodeScope) BeginInputAttribute(pin InputPinID, shape PinShape) *AttributeScope {
	ns.ed.assertTop(ns.depth, scopeNode, "BeginInputAttribute")
	return ns.beginRow(rowInput, pin.Pin(), shape, 0)
}

// BeginOutputAttribute opens an output pin band, rendered on the right edge.
func (ns *NodeScope) BeginOutputAttribute(pin OutputPinID, shape PinShape) *AttributeScope {
	ns.ed.assertTop(ns.depth, scopeNode, "BeginOutputAttribute")
	return ns.beginRow(rowOutput, pin.Pin(), shape, 0)
}

// BeginStaticAttribute opens a band with interactive content but no pin.
// Static attributes cannot be linked; interaction with their widgets is
// reported through [Frame.ActiveAttribute].
func (ns *NodeScope) BeginStaticAttribute(attr AttributeID) *AttributeScope {
	ns.ed.assertTop(ns.depth, scopeNode, "BeginStaticAttribute")
	return ns.beginRow(rowStatic, 0, 0, attr)
}

// Text adds a plain line of node content outside any attribute band.
func (ns *NodeScope) Text(label string) {
	ns.ed.assertTop(ns.depth, scopeNode, "Text (node)")
	ns.rows = append(ns.rows, nodeRow{
		kind:   rowText,
		lines:  []string{label},
		width:  float32(len(label) * charWidth),
		height: lineHeight,
	})
}

func (ns *NodeScope) beginRow(kind rowKind, pin PinID, shape PinShape, attr AttributeID) *AttributeScope {
	ns.ed.scopes = append(ns.ed.scopes, scopeAttribute)
	ns.rows = append(ns.rows, nodeRow{kind: kind, pin: pin, shape: shape, attr: attr})
	return &AttributeScope{ed: ns.ed, depth: ns.depth + 1, node: ns}
}

// End closes the node scope, lays out the accumulated rows, and records
// the node's geometry for drawing and next-frame hit testing.
func (ns *NodeScope) End() {
	if ns.ended {
		panic("weave: node scope ended twice")
	}
	ns.ed.assertTop(ns.depth, scopeNode, "End (node)")
	ns.ended = true
	ed := ns.ed
	ed.scopes = ed.scopes[:len(ed.scopes)-1]

	st := &ed.style
	v := ed.visual(ns.id)

	width := float32(minNodeWidth)
	for _, r := range ns.rows {
		if w := r.width + 2*st.NodePaddingH; w > width {
			width = w
		}
	}

	var title Rect
	y := v.pos.Y + st.NodePaddingV
	if len(ns.rows) > 0 && ns.rows[0].kind == rowTitle {
		title = Rect{
			X:      v.pos.X,
			Y:      v.pos.Y,
			Width:  width,
			Height: ns.rows[0].height + 2*st.NodePaddingV,
		}
		y = title.Y + title.Height + st.NodePaddingV
	}

	for i := range ns.rows {
		r := &ns.rows[i]
		if r.kind == rowTitle {
			continue
		}
		switch r.kind {
		case rowInput:
			ed.curPins = append(ed.curPins, pinGeom{
				pin:   r.pin,
				node:  ns.id,
				input: true,
				shape: r.shape,
				pos:   Vec2{X: v.pos.X, Y: y + r.height/2},
			})
		case rowOutput:
			ed.curPins = append(ed.curPins, pinGeom{
				pin:   r.pin,
				node:  ns.id,
				shape: r.shape,
				pos:   Vec2{X: v.pos.X + width, Y: y + r.height/2},
			})
		}
		y += r.height + st.NodePaddingV
	}

	height := y - v.pos.Y
	v.size = Vec2{X: width, Y: height}
	v.seen = true

	ed.curNodes = append(ed.curNodes, nodeGeom{
		node:  ns.id,
		rect:  Rect{X: v.pos.X, Y: v.pos.Y, Width: width, Height: height},
		title: title,
	})

	// Retain row content for drawing.
	ed.drawRows = append(ed.drawRows, drawnNode{node: ns.id, rows: ns.rows})
}

// rowTop returns the grid-space Y offset of row index i relative to the
// node's top edge, mirroring the layout in End. Used while declaring
// widgets so their hit rects can be recorded immediately.
func (ns *NodeScope) rowTop(i int) float32 {
	st := &ns.ed.style
	v := ns.ed.visual(ns.id)
	start := 0
	y := v.pos.Y + st.NodePaddingV
	if len(ns.rows) > 0 && ns.rows[0].kind == rowTitle {
		start = 1
		y = v.pos.Y + ns.rows[0].height + 3*st.NodePaddingV
	}
	for j := start; j < i; j++ {
		y += ns.rows[j].height + st.NodePaddingV
	}
	return y
}

// --- Attribute scope ---

// AttributeScope is the guard for the content of a title bar or a pin /
// static attribute band.
type AttributeScope struct {
	ed    *EditorContext
	depth int
	node  *NodeScope
	ended bool
}

func (as *AttributeScope) row() *nodeRow {
	return &as.node.rows[len(as.node.rows)-1]
}

// Text adds a line of text to the band.
func (as *AttributeScope) Text(label string) {
	as.ed.assertTop(as.depth, scopeAttribute, "Text (attribute)")
	r := as.row()
	r.lines = append(r.lines, label)
	if w := float32(len(label) * charWidth); w > r.width {
		r.width = w
	}
	r.height += lineHeight
}

// SliderFloat adds a horizontal drag slider bound to *value over
// [min, max]. Returns true when the value changed this frame. While the
// slider is captured its attribute id is reported by
// [Frame.ActiveAttribute].
func (as *AttributeScope) SliderFloat(label string, value *float32, min, max, width float32) bool {
	as.ed.assertTop(as.depth, scopeAttribute, "SliderFloat")
	ed := as.ed
	r := as.row()
	if width < 4*charWidth {
		width = 4 * charWidth
	}
	labelW := float32(len(label)+1) * charWidth
	if w := width + labelW; w > r.width {
		r.width = w
	}

	// The slider's hit rect is known now: rows above it are final.
	rowIdx := len(as.node.rows) - 1
	v := ed.visual(as.node.id)
	rect := Rect{
		X:      v.pos.X + ed.style.NodePaddingH,
		Y:      as.node.rowTop(rowIdx) + r.height,
		Width:  width,
		Height: lineHeight,
	}
	r.height += lineHeight
	ed.curWidgets = append(ed.curWidgets, widgetGeom{attr: r.attr, rect: rect, min: min, max: max})

	changed := false
	if ed.pointer.mode == dragSlider && ed.pointer.slider == r.attr {
		t := (ed.pointer.cursor.X - rect.X) / rect.Width
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		nv := min + t*(max-min)
		if nv != *value {
			*value = nv
			changed = true
		}
	}

	r.slider = &sliderDraw{label: label, value: *value, min: min, max: max, width: width}
	return changed
}

// End closes the band.
func (as *AttributeScope) End() {
	if as.ended {
		panic("weave: attribute scope ended twice")
	}
	as.ed.assertTop(as.depth, scopeAttribute, "End (attribute)")
	as.ended = true
	as.ed.scopes = as.ed.scopes[:len(as.ed.scopes)-1]
	r := as.row()
	if r.height == 0 {
		// An empty band still reserves a line so its pin has somewhere
		// to sit.
		r.height = lineHeight
	}
}
