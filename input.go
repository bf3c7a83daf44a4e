package weave

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerMode is the current interaction the pointer is committed to.
type pointerMode uint8

const (
	pointerIdle pointerMode = iota
	// pointerPressed: button is down on a latched target but the drag
	// threshold has not been crossed yet.
	pointerPressed
	pointerDragNode
	pointerDragLink
	pointerBoxSelect
	pointerPan
	dragSlider
)

// pressTarget is what the pointer landed on when the button went down.
type pressTarget uint8

const (
	targetCanvas pressTarget = iota
	targetNode
	targetLink
)

// dragThreshold is the screen-space distance the pointer must travel from
// the press point before a press becomes a drag or box select.
const dragThreshold = 6

// pointerState carries pointer interaction state across frames.
type pointerState struct {
	mode   pointerMode
	button MouseButton
	mods   KeyModifiers

	down   bool
	cursor Vec2 // grid space
	screen Vec2 // screen space

	pressScreen Vec2
	pressGrid   Vec2

	target     pressTarget
	targetNode NodeID
	targetLink LinkID

	// Node drag capture: the nodes being moved and each one's offset
	// from the grab point.
	dragNodes   []NodeID
	dragOffsets []Vec2

	// In-progress link drag.
	linkStart    pinGeom
	linkDetached bool

	// Captured slider widget.
	slider AttributeID

	// Pan bookkeeping.
	lastScreen Vec2
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// processInput runs once per frame from BeginEditor. It samples the
// pointer (one injected event takes precedence over the real mouse),
// hit-tests it against the previous frame's geometry, and advances the
// interaction state machine. Hover and event results land in ed.frame.
func (ed *EditorContext) processInput() {
	if !ed.processInjectedInput() {
		mx, my := ebiten.CursorPosition()
		pos := Vec2{X: float32(mx), Y: float32(my)}

		var pressed bool
		var button MouseButton
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			pressed = true
			button = MouseButtonLeft
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
			pressed = true
			button = MouseButtonMiddle
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			pressed = true
			button = MouseButtonRight
		}
		// Keep the stored button while the pointer is down so an
		// interaction never changes buttons midway.
		if ed.pointer.down && pressed {
			button = ed.pointer.button
		}
		ed.processPointer(pos, pressed, button, readModifiers())
	}
}

// processPointer is the single entry point for both real and injected
// pointer samples.
func (ed *EditorContext) processPointer(screen Vec2, pressed bool, button MouseButton, mods KeyModifiers) {
	p := &ed.pointer
	p.screen = screen
	p.cursor = ed.toGrid(screen, ScreenSpace)
	p.mods = mods

	inside := ed.bounds.Width == 0 && ed.bounds.Height == 0 ||
		ed.bounds.Contains(screen.X, screen.Y)

	ed.updateHover(inside)

	switch {
	case pressed && !p.down:
		p.down = true
		p.button = button
		p.pressScreen = screen
		p.pressGrid = p.cursor
		if inside {
			ed.pointerPress(button, mods)
		}
	case !pressed && p.down:
		p.down = false
		ed.pointerRelease()
	default:
		if p.down {
			ed.pointerMove()
		}
	}
}

// updateHover hit-tests the cursor against the previous frame's geometry.
// Pins win over nodes, nodes over links; later-submitted nodes draw on
// top and therefore hover first.
func (ed *EditorContext) updateHover(inside bool) {
	f := &ed.frame
	p := &ed.pointer
	if !inside {
		return
	}

	bestPin := -1
	bestPinDist := ed.style.PinHoverRadius
	for i := range ed.prevPins {
		if d := distance(p.cursor, ed.prevPins[i].pos); d <= bestPinDist {
			bestPin = i
			bestPinDist = d
		}
	}
	if bestPin >= 0 {
		f.hoveredPin = ed.prevPins[bestPin].pin
		f.hasHoveredPin = true
	}

	for i := len(ed.prevNodes) - 1; i >= 0; i-- {
		if ed.prevNodes[i].rect.Contains(p.cursor.X, p.cursor.Y) {
			f.hoveredNode = ed.prevNodes[i].node
			f.hasHoveredNode = true
			break
		}
	}

	if !f.hasHoveredPin && !f.hasHoveredNode {
		bestLinkDist := ed.style.LinkHoverDistance
		for i := range ed.prevLinks {
			l := &ed.prevLinks[i]
			if !l.resolved {
				continue
			}
			if d := distanceToLink(p.cursor, l.p0, l.p3); d <= bestLinkDist {
				f.hoveredLink = l.id
				f.hasHoveredLink = true
				bestLinkDist = d
			}
		}
	}

	f.editorHovered = !f.hasHoveredPin && !f.hasHoveredNode && !f.hasHoveredLink
}

// pointerPress routes a fresh press. Priority: pin, slider widget, link,
// node, canvas.
func (ed *EditorContext) pointerPress(button MouseButton, mods KeyModifiers) {
	f := &ed.frame
	p := &ed.pointer

	if button == MouseButtonMiddle || button == MouseButtonRight {
		p.mode = pointerPan
		p.lastScreen = p.screen
		ed.debugf("pan start at %.0f,%.0f", p.screen.X, p.screen.Y)
		return
	}
	if button != MouseButtonLeft {
		return
	}

	if f.hasHoveredPin {
		ed.startLinkDrag(f.hoveredPin)
		return
	}

	for i := range ed.prevWidgets {
		w := &ed.prevWidgets[i]
		if w.rect.Contains(p.cursor.X, p.cursor.Y) {
			p.mode = dragSlider
			p.slider = w.attr
			f.activeAttr = w.attr
			f.hasActiveAttr = true
			ed.debugf("slider %d captured", w.attr)
			return
		}
	}

	if f.hasHoveredLink {
		if mods&ModCtrl != 0 {
			if ed.linkSelected(f.hoveredLink) {
				ed.deselectLink(f.hoveredLink)
			} else {
				ed.selectLink(f.hoveredLink)
			}
		} else {
			ed.ClearNodeSelection()
			ed.ClearLinkSelection()
			ed.selectLink(f.hoveredLink)
		}
		p.mode = pointerPressed
		p.target = targetLink
		p.targetLink = f.hoveredLink
		return
	}

	if f.hasHoveredNode {
		id := f.hoveredNode
		if mods&ModCtrl != 0 {
			if ed.nodeSelected(id) {
				ed.DeselectNode(id)
			} else {
				ed.SelectNode(id)
			}
		} else if !ed.nodeSelected(id) {
			ed.ClearNodeSelection()
			ed.ClearLinkSelection()
			ed.SelectNode(id)
		}
		p.mode = pointerPressed
		p.target = targetNode
		p.targetNode = id
		return
	}

	// Empty canvas.
	if mods&ModCtrl == 0 {
		ed.ClearNodeSelection()
		ed.ClearLinkSelection()
	}
	p.mode = pointerPressed
	p.target = targetCanvas
}

// startLinkDrag begins a link drag from the pressed pin. A press on an
// input pin that already has a link detaches it when the detach flag is
// pushed: the existing link is reported destroyed and the drag continues
// from its output end.
func (ed *EditorContext) startLinkDrag(pin PinID) {
	f := &ed.frame
	p := &ed.pointer

	var geom *pinGeom
	for i := range ed.prevPins {
		if ed.prevPins[i].pin == pin {
			geom = &ed.prevPins[i]
			break
		}
	}
	if geom == nil {
		return
	}

	if geom.input && ed.flagPushed(AttrFlagEnableLinkDetachWithDragClick) {
		for i := range ed.prevLinks {
			l := &ed.prevLinks[i]
			if l.end.Pin() != pin {
				continue
			}
			// Keep dragging from the surviving output end.
			for j := range ed.prevPins {
				if !ed.prevPins[j].input && ed.prevPins[j].pin == l.start.Pin() {
					f.destroyedLink = l.id
					f.hasDestroyedLink = true
					p.mode = pointerDragLink
					p.linkStart = ed.prevPins[j]
					p.linkDetached = true
					f.startedPin = p.linkStart.pin
					f.hasStartedPin = true
					ed.debugf("detached link %d from pin %d", l.id, pin)
					return
				}
			}
		}
	}

	p.mode = pointerDragLink
	p.linkStart = *geom
	p.linkDetached = false
	f.startedPin = pin
	f.hasStartedPin = true
	ed.debugf("link drag started at pin %d", pin)
}

// pointerMove advances drags while the button is held.
func (ed *EditorContext) pointerMove() {
	p := &ed.pointer

	switch p.mode {
	case pointerPressed:
		if distance(p.screen, p.pressScreen) < dragThreshold {
			return
		}
		switch p.target {
		case targetNode:
			ed.beginNodeDrag()
		case targetCanvas:
			p.mode = pointerBoxSelect
			ed.boxActive = true
		}
		// A pressed link never turns into a drag.

	case pointerDragNode:
		for i, id := range p.dragNodes {
			ed.visual(id).pos = p.cursor.Add(p.dragOffsets[i])
		}

	case pointerBoxSelect:
		ed.boxSelect = normalizedRect(p.pressGrid, p.cursor)
		ed.applyBoxSelection()

	case pointerDragLink:
		if ed.flagPushed(AttrFlagEnableLinkCreationOnSnap) {
			if g, ok := ed.snapCandidate(); ok {
				ed.completeLink(g, true)
				p.mode = pointerIdle
			}
		}

	case dragSlider:
		ed.frame.activeAttr = p.slider
		ed.frame.hasActiveAttr = true

	case pointerPan:
		ed.panning.X += p.screen.X - p.lastScreen.X
		ed.panning.Y += p.screen.Y - p.lastScreen.Y
		p.lastScreen = p.screen
		// Keep the grid cursor consistent with the new panning.
		p.cursor = ed.toGrid(p.screen, ScreenSpace)
	}
}

// beginNodeDrag captures the set of nodes to move. Dragging a selected
// node moves the whole selection; dragging an unselected one (possible
// after a ctrl-click toggled it off) moves just that node.
func (ed *EditorContext) beginNodeDrag() {
	p := &ed.pointer
	p.mode = pointerDragNode
	p.dragNodes = p.dragNodes[:0]
	p.dragOffsets = p.dragOffsets[:0]
	if ed.nodeSelected(p.targetNode) {
		p.dragNodes = append(p.dragNodes, ed.selNodes...)
	} else {
		p.dragNodes = append(p.dragNodes, p.targetNode)
	}
	for _, id := range p.dragNodes {
		p.dragOffsets = append(p.dragOffsets, ed.visual(id).pos.Sub(p.pressGrid))
	}
	ed.debugf("dragging %d node(s)", len(p.dragNodes))
}

// applyBoxSelection replaces the selection with everything inside the
// live box: nodes whose body intersects it and links whose curve passes
// through it.
func (ed *EditorContext) applyBoxSelection() {
	ed.ClearNodeSelection()
	ed.ClearLinkSelection()
	for i := range ed.prevNodes {
		if ed.prevNodes[i].rect.Intersects(ed.boxSelect) {
			ed.SelectNode(ed.prevNodes[i].node)
		}
	}
	for i := range ed.prevLinks {
		l := &ed.prevLinks[i]
		if !l.resolved {
			continue
		}
		for s := 0; s <= linkHoverSamples; s++ {
			pt := linkPoint(l.p0, l.p3, float32(s)/linkHoverSamples)
			if ed.boxSelect.Contains(pt.X, pt.Y) {
				ed.selectLink(l.id)
				break
			}
		}
	}
}

// snapCandidate returns the pin the in-progress link could complete at:
// hovered, opposite direction from the drag origin, and on a different
// node.
func (ed *EditorContext) snapCandidate() (pinGeom, bool) {
	f := &ed.frame
	p := &ed.pointer
	if !f.hasHoveredPin {
		return pinGeom{}, false
	}
	for i := range ed.prevPins {
		g := ed.prevPins[i]
		if g.pin != f.hoveredPin {
			continue
		}
		if g.input == p.linkStart.input || g.node == p.linkStart.node {
			return pinGeom{}, false
		}
		return g, true
	}
	return pinGeom{}, false
}

// completeLink records a created link, normalized so the start is always
// the output side. Input pins take at most one link, so completing onto
// an occupied input also reports the old link destroyed.
func (ed *EditorContext) completeLink(other pinGeom, fromSnap bool) {
	p := &ed.pointer
	out, in := p.linkStart, other
	if out.input {
		out, in = in, out
	}
	if !ed.frame.hasDestroyedLink {
		for i := range ed.prevLinks {
			if ed.prevLinks[i].end.Pin() == in.pin {
				ed.frame.destroyedLink = ed.prevLinks[i].id
				ed.frame.hasDestroyedLink = true
				break
			}
		}
	}
	ed.frame.linkCreated = Link{
		StartNode:       out.node,
		EndNode:         in.node,
		StartPin:        OutputPinID(out.pin),
		EndPin:          InputPinID(in.pin),
		CreatedFromSnap: fromSnap,
	}
	ed.frame.hasLinkCreated = true
	ed.debugf("link created %d -> %d (snap=%v)", out.pin, in.pin, fromSnap)
}

// pointerRelease ends whatever interaction was in progress. The release
// sample carries the final cursor position, so drags are advanced one
// last time before the mode resets.
func (ed *EditorContext) pointerRelease() {
	f := &ed.frame
	p := &ed.pointer

	switch p.mode {
	case pointerDragNode:
		for i, id := range p.dragNodes {
			ed.visual(id).pos = p.cursor.Add(p.dragOffsets[i])
		}

	case pointerDragLink:
		if g, ok := ed.snapCandidate(); ok {
			ed.completeLink(g, false)
		} else {
			f.droppedPin = p.linkStart.pin
			f.hasDroppedPin = true
			f.droppedDetached = p.linkDetached
			ed.debugf("link dropped from pin %d", p.linkStart.pin)
		}

	case pointerBoxSelect:
		ed.boxSelect = normalizedRect(p.pressGrid, p.cursor)
		ed.applyBoxSelection()
		ed.boxActive = false

	case pointerPan:
		ed.panning.X += p.screen.X - p.lastScreen.X
		ed.panning.Y += p.screen.Y - p.lastScreen.Y
		p.lastScreen = p.screen
	}
	p.mode = pointerIdle
}
