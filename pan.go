package weave

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// panAnim holds active panning tweens for X and Y.
type panAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Panning returns the editor's panning offset: the screen-space position
// of the grid origin relative to the canvas.
func (ed *EditorContext) Panning() Vec2 {
	return ed.panning
}

// ResetPanning sets the panning offset immediately, cancelling any
// animation in progress.
func (ed *EditorContext) ResetPanning(p Vec2) {
	ed.panning = p
	ed.panTween = nil
}

// MoveToNode animates panning over duration seconds so the node ends up
// near the canvas origin. Unknown nodes animate to the grid origin.
func (ed *EditorContext) MoveToNode(id NodeID, duration float32, easeFn ease.TweenFunc) {
	pos := Vec2{}
	if v, ok := ed.visuals[id]; ok {
		pos = v.pos
	}
	target := Vec2{X: -pos.X + ed.style.GridSpacing, Y: -pos.Y + ed.style.GridSpacing}
	ed.panTween = &panAnim{
		tweenX: gween.New(ed.panning.X, target.X, duration, easeFn),
		tweenY: gween.New(ed.panning.Y, target.Y, duration, easeFn),
	}
}

// stepPanTween advances the panning animation by one frame. Frames are
// assumed to tick at the display rate ebiten runs updates at.
func (ed *EditorContext) stepPanTween() {
	t := ed.panTween
	if t == nil {
		return
	}
	const dt = 1.0 / 60
	if !t.doneX {
		val, done := t.tweenX.Update(dt)
		ed.panning.X = val
		t.doneX = done
	}
	if !t.doneY {
		val, done := t.tweenY.Update(dt)
		ed.panning.Y = val
		t.doneY = done
	}
	if t.doneX && t.doneY {
		ed.panTween = nil
	}
}
