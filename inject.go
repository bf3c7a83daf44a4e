package weave

// syntheticPointerEvent is a single injected pointer sample. Screen
// coordinates are used and converted to grid space exactly like real
// mouse input, so injected interactions exercise the same code paths.
type syntheticPointerEvent struct {
	screenX, screenY float32
	pressed          bool
	button           MouseButton
	mods             KeyModifiers
}

// InjectPress queues a pointer press at the given screen coordinates
// (left button). The event is consumed by the next BeginEditor.
func (ed *EditorContext) InjectPress(x, y float32) {
	ed.InjectPressButton(x, y, MouseButtonLeft, 0)
}

// InjectPressButton queues a press with an explicit button and modifiers.
func (ed *EditorContext) InjectPressButton(x, y float32, button MouseButton, mods KeyModifiers) {
	ed.injectQueue = append(ed.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  button,
		mods:    mods,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (ed *EditorContext) InjectMove(x, y float32) {
	ed.injectQueue = append(ed.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMoveButton queues a move with an explicit button and modifiers.
func (ed *EditorContext) InjectMoveButton(x, y float32, button MouseButton, mods KeyModifiers) {
	ed.injectQueue = append(ed.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  button,
		mods:    mods,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (ed *EditorContext) InjectRelease(x, y float32) {
	ed.injectQueue = append(ed.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (ed *EditorContext) InjectClick(x, y float32) {
	ed.InjectPress(x, y)
	ed.InjectRelease(x, y)
}

// InjectClickMods queues a modified click (e.g. ctrl-click to toggle
// selection). Consumes two frames.
func (ed *EditorContext) InjectClickMods(x, y float32, mods KeyModifiers) {
	ed.InjectPressButton(x, y, MouseButtonLeft, mods)
	ed.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The sequence consumes frames frames; minimum
// is 2 (press + release).
func (ed *EditorContext) InjectDrag(fromX, fromY, toX, toY float32, frames int) {
	ed.InjectDragButton(fromX, fromY, toX, toY, frames, MouseButtonLeft, 0)
}

// InjectDragButton is InjectDrag with an explicit button and modifiers.
func (ed *EditorContext) InjectDragButton(fromX, fromY, toX, toY float32, frames int, button MouseButton, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	ed.InjectPressButton(fromX, fromY, button, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		ed.InjectMoveButton(x, y, button, mods)
	}
	ed.InjectRelease(toX, toY)
}

// processInjectedInput pops one queued event and feeds it through
// processPointer. Returns true if an event was consumed (real mouse
// input is skipped that frame).
func (ed *EditorContext) processInjectedInput() bool {
	if len(ed.injectQueue) == 0 {
		return false
	}
	evt := ed.injectQueue[0]
	copy(ed.injectQueue, ed.injectQueue[1:])
	ed.injectQueue = ed.injectQueue[:len(ed.injectQueue)-1]

	button := evt.button
	if ed.pointer.down && evt.pressed {
		button = ed.pointer.button
	}
	ed.processPointer(Vec2{X: evt.screenX, Y: evt.screenY}, evt.pressed, button, evt.mods)
	return true
}
