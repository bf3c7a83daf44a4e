package weave

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// miniMapState is the per-frame minimap request set by EditorScope.MiniMap.
type miniMapState struct {
	enabled  bool
	fraction float32
	location MiniMapLocation
}

// miniMapPadding keeps the overlay off the canvas edge.
const miniMapPadding = 8

// drawMiniMap renders a scaled-down overview of all nodes plus the
// current view rectangle into the requested canvas corner.
func (ed *EditorContext) drawMiniMap(dst *ebiten.Image, canvas Rect) {
	mm := ed.miniMap
	if !mm.enabled || len(ed.prevNodes) == 0 {
		return
	}
	st := &ed.style

	w := canvas.Width * mm.fraction
	h := canvas.Height * mm.fraction
	var ox, oy float32
	switch mm.location {
	case MiniMapBottomLeft:
		ox, oy = canvas.X+miniMapPadding, canvas.Y+canvas.Height-h-miniMapPadding
	case MiniMapBottomRight:
		ox, oy = canvas.X+canvas.Width-w-miniMapPadding, canvas.Y+canvas.Height-h-miniMapPadding
	case MiniMapTopLeft:
		ox, oy = canvas.X+miniMapPadding, canvas.Y+miniMapPadding
	case MiniMapTopRight:
		ox, oy = canvas.X+canvas.Width-w-miniMapPadding, canvas.Y+miniMapPadding
	}

	// Extent of the content plus the current view, in grid space.
	ext := ed.prevNodes[0].rect
	for i := 1; i < len(ed.prevNodes); i++ {
		ext = union(ext, ed.prevNodes[i].rect)
	}
	view := Rect{
		X:      -ed.panning.X,
		Y:      -ed.panning.Y,
		Width:  canvas.Width,
		Height: canvas.Height,
	}
	ext = union(ext, view)
	if ext.Width <= 0 || ext.Height <= 0 {
		return
	}

	scale := w / ext.Width
	if s := h / ext.Height; s < scale {
		scale = s
	}

	project := func(r Rect) Rect {
		return Rect{
			X:      ox + (r.X-ext.X)*scale,
			Y:      oy + (r.Y-ext.Y)*scale,
			Width:  r.Width * scale,
			Height: r.Height * scale,
		}
	}

	vector.DrawFilledRect(dst, ox, oy, w, h, st.Colors[ColGridBackground].RGBA(), false)
	vector.StrokeRect(dst, ox, oy, w, h, 1, st.Colors[ColNodeOutline].RGBA(), false)

	for i := range ed.prevNodes {
		n := &ed.prevNodes[i]
		col := st.Colors[ColNodeBackground]
		if ed.nodeSelected(n.node) {
			col = st.Colors[ColNodeBackgroundSelected]
		}
		r := project(n.rect)
		vector.DrawFilledRect(dst, r.X, r.Y, r.Width, r.Height, col.RGBA(), false)
		vector.StrokeRect(dst, r.X, r.Y, r.Width, r.Height, 1, st.Colors[ColNodeOutline].RGBA(), false)
	}

	vr := project(view)
	vector.StrokeRect(dst, vr.X, vr.Y, vr.Width, vr.Height, 1, st.Colors[ColBoxSelectorOutline].RGBA(), false)
}

// union returns the smallest rect covering both inputs.
func union(a, b Rect) Rect {
	x0, y0 := a.X, a.Y
	if b.X < x0 {
		x0 = b.X
	}
	if b.Y < y0 {
		y0 = b.Y
	}
	x1, y1 := a.X+a.Width, a.Y+a.Height
	if v := b.X + b.Width; v > x1 {
		x1 = v
	}
	if v := b.Y + b.Height; v > y1 {
		y1 = v
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
