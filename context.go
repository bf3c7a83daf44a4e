package weave

import (
	"sync"
)

// contextMu guards creation and destruction of the process-wide context
// against accidental double-init from concurrent startup paths. Everything
// past CreateContext is single-threaded with the UI loop.
var (
	contextMu      sync.Mutex
	currentContext *Context
)

// Context is the process-wide editor context. Exactly one may exist at a
// time: create it once before any editor call and destroy it once at
// shutdown. Creating a second context while one is live, or destroying
// one twice, is a programmer error and panics.
type Context struct {
	destroyed bool
	editors   []*EditorContext
}

// CreateContext creates the process-wide context.
func CreateContext() *Context {
	contextMu.Lock()
	defer contextMu.Unlock()
	if currentContext != nil {
		panic("weave: CreateContext called while a context is already live")
	}
	currentContext = &Context{}
	return currentContext
}

// Destroy releases the context. After Destroy a new context may be
// created (useful for tests); using editors of a destroyed context panics.
func (c *Context) Destroy() {
	contextMu.Lock()
	defer contextMu.Unlock()
	if c.destroyed {
		panic("weave: context destroyed twice")
	}
	c.destroyed = true
	for _, ed := range c.editors {
		ed.ctx = nil
	}
	c.editors = nil
	if currentContext == c {
		currentContext = nil
	}
}

// NewEditor creates an editor workspace: one set of nodes, links, panning,
// selection, and style. A context may own any number of editors (see the
// multieditor example).
func (c *Context) NewEditor() *EditorContext {
	if c.destroyed {
		panic("weave: NewEditor on destroyed context")
	}
	ed := &EditorContext{
		ctx:           c,
		style:         StyleColorsDark(),
		visuals:       make(map[NodeID]*nodeVisual),
		ScreenshotDir: "screenshots",
	}
	c.editors = append(c.editors, ed)
	return ed
}

// nodeVisual is the retained visual state for one node: where it sits on
// the grid and how big its last layout was. Created lazily the first time
// a node id is positioned or submitted.
type nodeVisual struct {
	pos  Vec2 // grid space, top-left corner
	size Vec2 // from the most recent layout pass
	seen bool // submitted at least once (size is valid)
}

// EditorContext owns the retained state of one editor canvas. All mutation
// happens on the UI thread between frames; an EditorContext must not be
// shared across goroutines.
type EditorContext struct {
	ctx   *Context
	idGen IDGen

	style Style

	// Retained visual state.
	visuals map[NodeID]*nodeVisual
	panning Vec2
	bounds  Rect // screen-space canvas rect; zero Width/Height = whole screen

	selNodes []NodeID
	selLinks []LinkID

	// Push/pop stacks.
	colorStack []colorEntry
	varStack   []varEntry
	flagStack  []AttrFlag

	// Scope stack for Begin/End protocol enforcement.
	scopes []scopeKind

	// Geometry built during the current frame.
	curNodes   []nodeGeom
	curPins    []pinGeom
	curLinks   []linkGeom
	curWidgets []widgetGeom
	drawRows   []drawnNode
	miniMap    miniMapState

	// Geometry of the previous completed frame, used for hit testing at
	// the start of the next one (classic immediate-mode one-frame lag).
	prevNodes   []nodeGeom
	prevPins    []pinGeom
	prevLinks   []linkGeom
	prevWidgets []widgetGeom

	// Interaction state.
	pointer     pointerState
	injectQueue []syntheticPointerEvent
	boxSelect   Rect
	boxActive   bool

	panTween *panAnim

	frame Frame

	// Automated visual testing.
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir string

	debug bool
}

// IDGen returns the editor's identifier generator. All elements submitted
// to this editor should use ids from it.
func (ed *EditorContext) IDGen() *IDGen {
	return &ed.idGen
}

// SetBounds restricts the editor canvas to a screen-space rectangle.
// Input outside the bounds is ignored and Draw clips to them. A zero
// rect (the default) means the whole screen.
func (ed *EditorContext) SetBounds(r Rect) {
	ed.bounds = r
}

// Bounds returns the editor's screen-space canvas rect.
func (ed *EditorContext) Bounds() Rect {
	return ed.bounds
}

// SetDebugMode enables stderr logging of per-frame interaction decisions.
func (ed *EditorContext) SetDebugMode(enabled bool) {
	ed.debug = enabled
}

// checkLive panics if the owning context is gone.
func (ed *EditorContext) checkLive() {
	if ed.ctx == nil || ed.ctx.destroyed {
		panic("weave: editor used after its context was destroyed")
	}
}

// visual returns the retained visual state for a node, creating it at the
// grid origin on first sight.
func (ed *EditorContext) visual(id NodeID) *nodeVisual {
	v, ok := ed.visuals[id]
	if !ok {
		v = &nodeVisual{}
		ed.visuals[id] = v
	}
	return v
}

// --- Selection bookkeeping ---

// SelectNode adds a node to the selection if not already present.
func (ed *EditorContext) SelectNode(id NodeID) {
	for _, n := range ed.selNodes {
		if n == id {
			return
		}
	}
	ed.selNodes = append(ed.selNodes, id)
}

// DeselectNode removes a node from the selection.
func (ed *EditorContext) DeselectNode(id NodeID) {
	for i, n := range ed.selNodes {
		if n == id {
			ed.selNodes = append(ed.selNodes[:i], ed.selNodes[i+1:]...)
			return
		}
	}
}

// ClearNodeSelection deselects all nodes.
func (ed *EditorContext) ClearNodeSelection() {
	ed.selNodes = ed.selNodes[:0]
}

// ClearLinkSelection deselects all links.
func (ed *EditorContext) ClearLinkSelection() {
	ed.selLinks = ed.selLinks[:0]
}

func (ed *EditorContext) nodeSelected(id NodeID) bool {
	for _, n := range ed.selNodes {
		if n == id {
			return true
		}
	}
	return false
}

func (ed *EditorContext) linkSelected(id LinkID) bool {
	for _, l := range ed.selLinks {
		if l == id {
			return true
		}
	}
	return false
}

func (ed *EditorContext) selectLink(id LinkID) {
	if !ed.linkSelected(id) {
		ed.selLinks = append(ed.selLinks, id)
	}
}

func (ed *EditorContext) deselectLink(id LinkID) {
	for i, l := range ed.selLinks {
		if l == id {
			ed.selLinks = append(ed.selLinks[:i], ed.selLinks[i+1:]...)
			return
		}
	}
}

// --- Node position API ---

// SetNodePosition moves a node so its top-left corner sits at pos in the
// given coordinate system. Valid before the node's first submission, so
// new nodes can be placed under the cursor.
func (ed *EditorContext) SetNodePosition(id NodeID, pos Vec2, cs CoordinateSystem) {
	ed.visual(id).pos = ed.toGrid(pos, cs)
}

// NodePosition returns a node's top-left corner in the given coordinate
// system. Unknown nodes report the grid origin.
func (ed *EditorContext) NodePosition(id NodeID, cs CoordinateSystem) Vec2 {
	v, ok := ed.visuals[id]
	if !ok {
		return ed.fromGrid(Vec2{}, cs)
	}
	return ed.fromGrid(v.pos, cs)
}

// NodeDimensions returns the node's size from its most recent layout.
// Nodes that have never been submitted report a zero size.
func (ed *EditorContext) NodeDimensions(id NodeID) Vec2 {
	if v, ok := ed.visuals[id]; ok && v.seen {
		return v.size
	}
	return Vec2{}
}

// SnapToGrid moves a node's corner to the nearest grid intersection.
func (ed *EditorContext) SnapToGrid(id NodeID) {
	v := ed.visual(id)
	spacing := ed.style.GridSpacing
	if spacing <= 0 {
		return
	}
	v.pos.X = snapCoord(v.pos.X, spacing)
	v.pos.Y = snapCoord(v.pos.Y, spacing)
}

func snapCoord(v, spacing float32) float32 {
	n := float32(int(v/spacing + 0.5))
	if v < 0 {
		n = float32(int(v/spacing - 0.5))
	}
	return n * spacing
}

// toGrid converts a point to grid space.
func (ed *EditorContext) toGrid(p Vec2, cs CoordinateSystem) Vec2 {
	switch cs {
	case ScreenSpace:
		return Vec2{p.X - ed.bounds.X - ed.panning.X, p.Y - ed.bounds.Y - ed.panning.Y}
	case EditorSpace:
		return Vec2{p.X - ed.panning.X, p.Y - ed.panning.Y}
	default:
		return p
	}
}

// fromGrid converts a grid-space point to the requested system.
func (ed *EditorContext) fromGrid(p Vec2, cs CoordinateSystem) Vec2 {
	switch cs {
	case ScreenSpace:
		return Vec2{p.X + ed.panning.X + ed.bounds.X, p.Y + ed.panning.Y + ed.bounds.Y}
	case EditorSpace:
		return Vec2{p.X + ed.panning.X, p.Y + ed.panning.Y}
	default:
		return p
	}
}
