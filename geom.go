package weave

import "github.com/chewxy/math32"

// Frame geometry records. All positions are grid space; conversion to
// screen space happens in Draw and at the input boundary.

// pinGeom is the resolved position of one pin submitted this frame.
type pinGeom struct {
	pin   PinID
	node  NodeID
	input bool
	shape PinShape
	pos   Vec2
}

// nodeGeom is the resolved body of one node submitted this frame.
type nodeGeom struct {
	node  NodeID
	rect  Rect
	title Rect // title bar band at the top of rect; zero height if none
}

// linkGeom is one link submitted this frame with resolved endpoints.
type linkGeom struct {
	id       LinkID
	start    OutputPinID
	end      InputPinID
	p0, p3   Vec2
	resolved bool // both pins were submitted this frame
}

// widgetGeom is the hit rectangle of one slider widget submitted this
// frame, used to route presses on the next frame.
type widgetGeom struct {
	attr     AttributeID
	rect     Rect
	min, max float32
}

// linkControlOffset returns the horizontal bezier control-point distance
// for a link spanning dx. Short links get gentle curves, long links
// flatten out.
func linkControlOffset(dx float32) float32 {
	d := math32.Abs(dx) * 0.5
	if d < 30 {
		d = 30
	}
	if d > 150 {
		d = 150
	}
	return d
}

// linkPoint evaluates the cubic bezier of a link from p0 (output pin) to
// p3 (input pin) at t in [0, 1]. Control points extend horizontally:
// outputs leave to the right, inputs are entered from the left.
func linkPoint(p0, p3 Vec2, t float32) Vec2 {
	d := linkControlOffset(p3.X - p0.X)
	p1 := Vec2{p0.X + d, p0.Y}
	p2 := Vec2{p3.X - d, p3.Y}
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	e := t * t * t
	return Vec2{
		X: a*p0.X + b*p1.X + c*p2.X + e*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + e*p3.Y,
	}
}

// linkHoverSamples is the number of bezier samples used for link hit
// testing. Links are at most a few hundred pixels of curve; 24 samples
// keeps the maximum gap well under the hover distance.
const linkHoverSamples = 24

// distanceToLink returns the approximate distance from p to the link
// curve, by sampling.
func distanceToLink(p, p0, p3 Vec2) float32 {
	best := math32.Inf(1)
	prev := p0
	for i := 1; i <= linkHoverSamples; i++ {
		t := float32(i) / linkHoverSamples
		cur := linkPoint(p0, p3, t)
		if d := distanceToSegment(p, prev, cur); d < best {
			best = d
		}
		prev = cur
	}
	return best
}

// distanceToSegment returns the distance from p to the segment ab.
func distanceToSegment(p, a, b Vec2) float32 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	apx := p.X - a.X
	apy := p.Y - a.Y
	lenSq := abx*abx + aby*aby
	t := float32(0)
	if lenSq > 0 {
		t = (apx*abx + apy*aby) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	dx := p.X - (a.X + t*abx)
	dy := p.Y - (a.Y + t*aby)
	return math32.Sqrt(dx*dx + dy*dy)
}

// distance returns the euclidean distance between two points.
func distance(a, b Vec2) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

// normalizedRect returns the rectangle spanned by two corner points,
// regardless of drag direction.
func normalizedRect(a, b Vec2) Rect {
	x0, x1 := a.X, b.X
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := a.Y, b.Y
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
