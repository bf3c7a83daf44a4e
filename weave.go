package weave

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// RGBA converts to a straight-alpha color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout
// the API. The coordinate system has its origin at the top-left, with Y
// increasing downward.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// PinShape controls the way attribute pins look. The default sizes of the
// shapes are balanced to occupy approximately the same surface area.
type PinShape uint8

const (
	PinCircle         PinShape = iota // circle outline
	PinCircleFilled                   // filled circle
	PinTriangle                       // triangle outline, pointing right
	PinTriangleFilled                 // filled triangle
	PinQuad                           // square outline
	PinQuadFilled                     // filled square
)

// CoordinateSystem selects the frame of reference for node positions.
type CoordinateSystem uint8

const (
	// ScreenSpace is relative to the top-left of the screen image.
	ScreenSpace CoordinateSystem = iota
	// EditorSpace is relative to the top-left of the editor canvas.
	EditorSpace
	// GridSpace is relative to the grid origin, unaffected by panning.
	GridSpace
)

// MiniMapLocation selects the canvas corner the minimap is drawn in.
type MiniMapLocation uint8

const (
	MiniMapBottomLeft MiniMapLocation = iota
	MiniMapBottomRight
	MiniMapTopLeft
	MiniMapTopRight
)

// AttrFlag controls the way attribute pins behave. Flags are pushed onto
// a stack with [EditorContext.PushAttributeFlag] and apply to every pin
// submitted while pushed.
type AttrFlag uint8

const (
	// AttrFlagNone is the default behavior.
	AttrFlagNone AttrFlag = iota
	// AttrFlagEnableLinkDetachWithDragClick allows detaching a link by
	// clicking and dragging the pin end it is connected to. The detached
	// link is reported through [Frame.LinkDestroyed]; the application
	// still has to delete it from its own model.
	AttrFlagEnableLinkDetachWithDragClick
	// AttrFlagEnableLinkCreationOnSnap completes an in-progress link as
	// soon as it snaps onto a compatible pin, without waiting for the
	// release. The created link carries CreatedFromSnap = true.
	AttrFlagEnableLinkCreationOnSnap
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
