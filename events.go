package weave

// Link describes a connection completed by the user this frame. The start
// is always the output side and the end the input side, regardless of
// which pin the drag began at.
type Link struct {
	StartNode NodeID
	EndNode   NodeID
	StartPin  OutputPinID
	EndPin    InputPinID
	// CreatedFromSnap is true when the link was completed by snapping
	// (AttrFlagEnableLinkCreationOnSnap) rather than by a release.
	CreatedFromSnap bool
}

// Frame is the query surface for what the user did during one editor
// frame. It is returned by [EditorScope.End] and remains valid until the
// next [BeginEditor] on the same editor.
type Frame struct {
	linkCreated    Link
	hasLinkCreated bool

	destroyedLink    LinkID
	hasDestroyedLink bool

	startedPin    PinID
	hasStartedPin bool

	droppedPin      PinID
	hasDroppedPin   bool
	droppedDetached bool

	hoveredNode    NodeID
	hasHoveredNode bool
	hoveredPin     PinID
	hasHoveredPin  bool
	hoveredLink    LinkID
	hasHoveredLink bool
	editorHovered  bool

	activeAttr    AttributeID
	hasActiveAttr bool

	selectedNodes []NodeID
	selectedLinks []LinkID
}

// LinkCreated reports the link the user completed this frame, if any.
// The application is expected to add it to its own model and submit it
// on the next frame.
func (f *Frame) LinkCreated() (Link, bool) {
	return f.linkCreated, f.hasLinkCreated
}

// LinkDestroyed reports the id of a submitted link the user detached this
// frame, if any. The application still has to delete the link from its
// own model.
func (f *Frame) LinkDestroyed() (LinkID, bool) {
	return f.destroyedLink, f.hasDestroyedLink
}

// LinkStarted reports the pin a new link drag began at this frame.
func (f *Frame) LinkStarted() (PinID, bool) {
	return f.startedPin, f.hasStartedPin
}

// LinkDropped reports the pin a link drag was released from without
// connecting. When includingDetached is false, drops that originate from
// detaching an existing link are not reported.
func (f *Frame) LinkDropped(includingDetached bool) (PinID, bool) {
	if !f.hasDroppedPin {
		return 0, false
	}
	if f.droppedDetached && !includingDetached {
		return 0, false
	}
	return f.droppedPin, true
}

// HoveredNode reports the topmost node under the pointer.
func (f *Frame) HoveredNode() (NodeID, bool) {
	return f.hoveredNode, f.hasHoveredNode
}

// HoveredPin reports the pin under the pointer, if any. Pin hover wins
// over node and link hover.
func (f *Frame) HoveredPin() (PinID, bool) {
	return f.hoveredPin, f.hasHoveredPin
}

// HoveredLink reports the link under the pointer, if any.
func (f *Frame) HoveredLink() (LinkID, bool) {
	return f.hoveredLink, f.hasHoveredLink
}

// EditorHovered reports whether the pointer is over empty canvas.
func (f *Frame) EditorHovered() bool {
	return f.editorHovered
}

// ActiveAttribute reports the attribute whose widget is being interacted
// with this frame, if any.
func (f *Frame) ActiveAttribute() (AttributeID, bool) {
	return f.activeAttr, f.hasActiveAttr
}

// IsAttributeActive reports whether the given attribute's widget is being
// interacted with this frame.
func (f *Frame) IsAttributeActive(id AttributeID) bool {
	return f.hasActiveAttr && f.activeAttr == id
}

// SelectedNodes returns the ids of all currently selected nodes, in
// selection order. The returned slice is reused across frames; copy it
// to retain it.
func (f *Frame) SelectedNodes() []NodeID {
	return f.selectedNodes
}

// SelectedLinks returns the ids of all currently selected links.
// The returned slice is reused across frames; copy it to retain it.
func (f *Frame) SelectedLinks() []LinkID {
	return f.selectedLinks
}

// NumSelectedNodes returns the number of selected nodes.
func (f *Frame) NumSelectedNodes() int {
	return len(f.selectedNodes)
}

// NumSelectedLinks returns the number of selected links.
func (f *Frame) NumSelectedLinks() int {
	return len(f.selectedLinks)
}
