package weave

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawnNode retains one node's row content between End and Draw.
// drawRows and prevNodes are appended in the same NodeScope.End calls,
// so index i of one matches index i of the other.
type drawnNode struct {
	node NodeID
	rows []nodeRow
}

// sliderDraw is the render snapshot of one SliderFloat widget.
type sliderDraw struct {
	label string
	value float32
	min   float32
	max   float32
	width float32
}

// whiteImage is the 1x1 source for DrawTriangles fills. Created lazily
// so headless library tests never touch the GPU.
var whiteImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteImage
}

// Draw renders the most recently completed frame onto screen. Call it
// from the game's Draw after the frame's EditorScope has ended. Rendering
// is clipped to the editor bounds when they are set.
func (ed *EditorContext) Draw(screen *ebiten.Image) {
	ed.checkLive()

	canvas := ed.bounds
	if canvas.Width == 0 && canvas.Height == 0 {
		b := screen.Bounds()
		canvas = Rect{
			X:      float32(b.Min.X),
			Y:      float32(b.Min.Y),
			Width:  float32(b.Dx()),
			Height: float32(b.Dy()),
		}
	}
	target := screen.SubImage(image.Rect(
		int(canvas.X), int(canvas.Y),
		int(canvas.X+canvas.Width), int(canvas.Y+canvas.Height),
	)).(*ebiten.Image)

	ed.drawGrid(target, canvas)
	ed.drawLinks(target)
	ed.drawPendingLink(target)
	ed.drawNodes(target)
	ed.drawBoxSelector(target)
	ed.drawMiniMap(target, canvas)
	ed.flushScreenshots(screen)
}

// drawGrid fills the canvas and draws grid lines aligned to the panning
// offset.
func (ed *EditorContext) drawGrid(dst *ebiten.Image, canvas Rect) {
	st := &ed.style
	vector.DrawFilledRect(dst, canvas.X, canvas.Y, canvas.Width, canvas.Height,
		st.Colors[ColGridBackground].RGBA(), false)

	spacing := st.GridSpacing
	if spacing <= 0 {
		return
	}
	line := st.Colors[ColGridLine].RGBA()
	for x := mod(ed.panning.X, spacing); x < canvas.Width; x += spacing {
		vector.StrokeLine(dst, canvas.X+x, canvas.Y, canvas.X+x, canvas.Y+canvas.Height, 1, line, false)
	}
	for y := mod(ed.panning.Y, spacing); y < canvas.Height; y += spacing {
		vector.StrokeLine(dst, canvas.X, canvas.Y+y, canvas.X+canvas.Width, canvas.Y+y, 1, line, false)
	}
}

func mod(v, m float32) float32 {
	r := v - m*float32(int(v/m))
	if r < 0 {
		r += m
	}
	return r
}

// drawLinks strokes every resolved link of the frame.
func (ed *EditorContext) drawLinks(dst *ebiten.Image) {
	st := &ed.style
	for i := range ed.prevLinks {
		l := &ed.prevLinks[i]
		if !l.resolved {
			continue
		}
		col := st.Colors[ColLink]
		if ed.linkSelected(l.id) {
			col = st.Colors[ColLinkSelected]
		} else if ed.frame.hasHoveredLink && ed.frame.hoveredLink == l.id {
			col = st.Colors[ColLinkHovered]
		}
		ed.strokeBezier(dst, l.p0, l.p3, st.LinkThickness, col)
	}
}

// drawPendingLink strokes the in-progress link from its origin pin to
// the cursor.
func (ed *EditorContext) drawPendingLink(dst *ebiten.Image) {
	p := &ed.pointer
	if p.mode != pointerDragLink {
		return
	}
	from, to := p.linkStart.pos, p.cursor
	if p.linkStart.input {
		// Keep the curve direction stable: output side first.
		from, to = to, from
	}
	ed.strokeBezier(dst, from, to, ed.style.LinkThickness, ed.style.Colors[ColLink])
}

// strokeBezier draws the link curve between two grid-space endpoints as
// line segments, matching the sampling used for hit testing.
func (ed *EditorContext) strokeBezier(dst *ebiten.Image, p0, p3 Vec2, thickness float32, col Color) {
	c := col.RGBA()
	prev := ed.fromGrid(p0, ScreenSpace)
	for i := 1; i <= linkHoverSamples; i++ {
		pt := ed.fromGrid(linkPoint(p0, p3, float32(i)/linkHoverSamples), ScreenSpace)
		vector.StrokeLine(dst, prev.X, prev.Y, pt.X, pt.Y, thickness, c, true)
		prev = pt
	}
}

// drawNodes renders node bodies, title bars, content rows, and pins in
// submission order, so later nodes draw on top.
func (ed *EditorContext) drawNodes(dst *ebiten.Image) {
	st := &ed.style
	for i := range ed.prevNodes {
		n := &ed.prevNodes[i]

		body := st.Colors[ColNodeBackground]
		title := st.Colors[ColTitleBar]
		if ed.nodeSelected(n.node) {
			body = st.Colors[ColNodeBackgroundSelected]
			title = st.Colors[ColTitleBarSelected]
		} else if ed.frame.hasHoveredNode && ed.frame.hoveredNode == n.node {
			body = st.Colors[ColNodeBackgroundHovered]
			title = st.Colors[ColTitleBarHovered]
		}

		r := ed.screenRect(n.rect)
		vector.DrawFilledRect(dst, r.X, r.Y, r.Width, r.Height, body.RGBA(), false)
		if n.title.Height > 0 {
			t := ed.screenRect(n.title)
			vector.DrawFilledRect(dst, t.X, t.Y, t.Width, t.Height, title.RGBA(), false)
		}
		vector.StrokeRect(dst, r.X, r.Y, r.Width, r.Height,
			st.NodeBorderThickness, st.Colors[ColNodeOutline].RGBA(), false)

		if i < len(ed.drawRows) && ed.drawRows[i].node == n.node {
			ed.drawNodeContent(dst, n, ed.drawRows[i].rows)
		}
	}

	for i := range ed.prevPins {
		ed.drawPin(dst, &ed.prevPins[i])
	}
}

// drawNodeContent lays text and sliders back onto the node, mirroring the
// row layout computed at End.
func (ed *EditorContext) drawNodeContent(dst *ebiten.Image, n *nodeGeom, rows []nodeRow) {
	st := &ed.style
	y := n.rect.Y + st.NodePaddingV
	for i := range rows {
		r := &rows[i]
		if r.kind == rowTitle && i == 0 {
			ty := n.title.Y + st.NodePaddingV
			for _, line := range r.lines {
				ed.drawText(dst, line, n.rect.X+st.NodePaddingH, ty)
				ty += lineHeight
			}
			y = n.title.Y + n.title.Height + st.NodePaddingV
			continue
		}

		ly := y
		for _, line := range r.lines {
			x := n.rect.X + st.NodePaddingH
			if r.kind == rowOutput {
				// Right-align output labels toward their pin.
				x = n.rect.X + n.rect.Width - st.NodePaddingH - float32(len(line)*charWidth)
			}
			ed.drawText(dst, line, x, ly)
			ly += lineHeight
		}
		if r.slider != nil {
			ed.drawSlider(dst, r.slider, n.rect.X+st.NodePaddingH, ly)
		}
		y += r.height + st.NodePaddingV
	}
}

// drawSlider renders the track, the filled portion, and the label.
func (ed *EditorContext) drawSlider(dst *ebiten.Image, s *sliderDraw, x, y float32) {
	st := &ed.style
	p := ed.fromGrid(Vec2{X: x, Y: y}, ScreenSpace)
	vector.DrawFilledRect(dst, p.X, p.Y+2, s.width, lineHeight-4,
		st.Colors[ColNodeOutline].RGBA(), false)
	t := float32(0)
	if s.max > s.min {
		t = (s.value - s.min) / (s.max - s.min)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	vector.DrawFilledRect(dst, p.X, p.Y+2, s.width*t, lineHeight-4,
		st.Colors[ColLink].RGBA(), false)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s %.2f", s.label, s.value),
		int(p.X+s.width)+charWidth, int(p.Y))
}

// drawPin renders one pin in its shape, highlighted when hovered.
func (ed *EditorContext) drawPin(dst *ebiten.Image, g *pinGeom) {
	st := &ed.style
	col := st.Colors[ColPin]
	if ed.frame.hasHoveredPin && ed.frame.hoveredPin == g.pin {
		col = st.Colors[ColPinHovered]
	}
	c := col.RGBA()

	pos := g.pos
	if g.input {
		pos.X -= st.PinOffset
	} else {
		pos.X += st.PinOffset
	}
	p := ed.fromGrid(pos, ScreenSpace)

	switch g.shape {
	case PinCircle:
		vector.StrokeCircle(dst, p.X, p.Y, st.PinCircleRadius, st.PinLineThickness, c, true)
	case PinCircleFilled:
		vector.DrawFilledCircle(dst, p.X, p.Y, st.PinCircleRadius, c, true)
	case PinQuad:
		h := st.PinQuadSideLength / 2
		vector.StrokeRect(dst, p.X-h, p.Y-h, st.PinQuadSideLength, st.PinQuadSideLength,
			st.PinLineThickness, c, true)
	case PinQuadFilled:
		h := st.PinQuadSideLength / 2
		vector.DrawFilledRect(dst, p.X-h, p.Y-h, st.PinQuadSideLength, st.PinQuadSideLength, c, true)
	case PinTriangle:
		a, b, d := trianglePoints(p, st.PinTriangleSideLength)
		vector.StrokeLine(dst, a.X, a.Y, b.X, b.Y, st.PinLineThickness, c, true)
		vector.StrokeLine(dst, b.X, b.Y, d.X, d.Y, st.PinLineThickness, c, true)
		vector.StrokeLine(dst, d.X, d.Y, a.X, a.Y, st.PinLineThickness, c, true)
	case PinTriangleFilled:
		a, b, d := trianglePoints(p, st.PinTriangleSideLength)
		fillTriangle(dst, a, b, d, col)
	}
}

// trianglePoints returns the corners of a right-pointing triangle of the
// given side length centered on p.
func trianglePoints(p Vec2, side float32) (Vec2, Vec2, Vec2) {
	h := side / 2
	return Vec2{X: p.X - h/2, Y: p.Y - h},
		Vec2{X: p.X - h/2, Y: p.Y + h},
		Vec2{X: p.X + h, Y: p.Y}
}

// fillTriangle draws one solid triangle using the white pixel source.
func fillTriangle(dst *ebiten.Image, a, b, c Vec2, col Color) {
	cr := col.R * col.A
	cg := col.G * col.A
	cb := col.B * col.A
	verts := []ebiten.Vertex{
		{DstX: a.X, DstY: a.Y, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: col.A},
		{DstX: b.X, DstY: b.Y, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: col.A},
		{DstX: c.X, DstY: c.Y, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: col.A},
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	dst.DrawTriangles(verts, []uint16{0, 1, 2}, whitePixel(), &op)
}

// drawBoxSelector renders the live box selection rectangle.
func (ed *EditorContext) drawBoxSelector(dst *ebiten.Image) {
	if !ed.boxActive {
		return
	}
	st := &ed.style
	r := ed.screenRect(ed.boxSelect)
	vector.DrawFilledRect(dst, r.X, r.Y, r.Width, r.Height,
		st.Colors[ColBoxSelector].RGBA(), false)
	vector.StrokeRect(dst, r.X, r.Y, r.Width, r.Height,
		1, st.Colors[ColBoxSelectorOutline].RGBA(), false)
}

// drawText prints one debug-font line at a grid-space position.
func (ed *EditorContext) drawText(dst *ebiten.Image, s string, x, y float32) {
	p := ed.fromGrid(Vec2{X: x, Y: y}, ScreenSpace)
	ebitenutil.DebugPrintAt(dst, s, int(p.X), int(p.Y))
}

// screenRect converts a grid-space rect to screen space.
func (ed *EditorContext) screenRect(r Rect) Rect {
	p := ed.fromGrid(Vec2{X: r.X, Y: r.Y}, ScreenSpace)
	return Rect{X: p.X, Y: p.Y, Width: r.Width, Height: r.Height}
}
