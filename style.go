package weave

import "fmt"

// StyleCol indexes the editor color table.
type StyleCol uint8

const (
	ColNodeBackground StyleCol = iota
	ColNodeBackgroundHovered
	ColNodeBackgroundSelected
	ColNodeOutline
	ColTitleBar
	ColTitleBarHovered
	ColTitleBarSelected
	ColLink
	ColLinkHovered
	ColLinkSelected
	ColPin
	ColPinHovered
	ColBoxSelector
	ColBoxSelectorOutline
	ColGridBackground
	ColGridLine
	styleColCount
)

// StyleVar indexes the scalar style parameters.
type StyleVar uint8

const (
	StyleVarGridSpacing StyleVar = iota
	StyleVarNodeCornerRounding
	StyleVarNodePaddingHorizontal
	StyleVarNodePaddingVertical
	StyleVarNodeBorderThickness
	StyleVarLinkThickness
	StyleVarLinkHoverDistance
	// StyleVarPinCircleRadius is the circle radius used when the pin
	// shape is PinCircle or PinCircleFilled.
	StyleVarPinCircleRadius
	// StyleVarPinQuadSideLength is the square side length used when the
	// pin shape is PinQuad or PinQuadFilled.
	StyleVarPinQuadSideLength
	// StyleVarPinTriangleSideLength is the equilateral triangle side
	// length used when the pin shape is PinTriangle or PinTriangleFilled.
	StyleVarPinTriangleSideLength
	// StyleVarPinLineThickness is the stroke width used for unfilled pins.
	StyleVarPinLineThickness
	// StyleVarPinHoverRadius is the radius around a pin's center inside
	// which it counts as hovered (and inside which an in-progress link
	// snaps).
	StyleVarPinHoverRadius
	// StyleVarPinOffset shifts pins outward from the node edge.
	StyleVarPinOffset
)

// Style holds every visual parameter of an editor. The default size of
// each pin shape is balanced to occupy approximately the same surface
// area on screen.
type Style struct {
	GridSpacing           float32
	NodeCornerRounding    float32
	NodePaddingH          float32
	NodePaddingV          float32
	NodeBorderThickness   float32
	LinkThickness         float32
	LinkHoverDistance     float32
	PinCircleRadius       float32
	PinQuadSideLength     float32
	PinTriangleSideLength float32
	PinLineThickness      float32
	PinHoverRadius        float32
	PinOffset             float32

	Colors [styleColCount]Color
}

func rgba8(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

func baseStyle() Style {
	return Style{
		GridSpacing:           32,
		NodeCornerRounding:    4,
		NodePaddingH:          8,
		NodePaddingV:          8,
		NodeBorderThickness:   1,
		LinkThickness:         3,
		LinkHoverDistance:     10,
		PinCircleRadius:       4,
		PinQuadSideLength:     7,
		PinTriangleSideLength: 9.5,
		PinLineThickness:      1,
		PinHoverRadius:        10,
		PinOffset:             0,
	}
}

// StyleColorsDark returns the dark color theme, the default for new editors.
func StyleColorsDark() Style {
	s := baseStyle()
	s.Colors = [styleColCount]Color{
		ColNodeBackground:         rgba8(50, 50, 50, 255),
		ColNodeBackgroundHovered:  rgba8(75, 75, 75, 255),
		ColNodeBackgroundSelected: rgba8(75, 75, 75, 255),
		ColNodeOutline:            rgba8(100, 100, 100, 255),
		ColTitleBar:               rgba8(41, 74, 122, 255),
		ColTitleBarHovered:        rgba8(66, 150, 250, 255),
		ColTitleBarSelected:       rgba8(66, 150, 250, 255),
		ColLink:                   rgba8(61, 133, 224, 200),
		ColLinkHovered:            rgba8(66, 150, 250, 255),
		ColLinkSelected:           rgba8(66, 150, 250, 255),
		ColPin:                    rgba8(53, 150, 250, 180),
		ColPinHovered:             rgba8(53, 150, 250, 255),
		ColBoxSelector:            rgba8(61, 133, 224, 30),
		ColBoxSelectorOutline:     rgba8(61, 133, 224, 150),
		ColGridBackground:         rgba8(40, 40, 50, 200),
		ColGridLine:               rgba8(200, 200, 200, 40),
	}
	return s
}

// StyleColorsClassic returns the classic color theme.
func StyleColorsClassic() Style {
	s := baseStyle()
	s.Colors = [styleColCount]Color{
		ColNodeBackground:         rgba8(50, 50, 50, 255),
		ColNodeBackgroundHovered:  rgba8(75, 75, 75, 255),
		ColNodeBackgroundSelected: rgba8(75, 75, 75, 255),
		ColNodeOutline:            rgba8(100, 100, 100, 255),
		ColTitleBar:               rgba8(69, 69, 138, 255),
		ColTitleBarHovered:        rgba8(82, 82, 161, 255),
		ColTitleBarSelected:       rgba8(82, 82, 161, 255),
		ColLink:                   rgba8(255, 255, 255, 100),
		ColLinkHovered:            rgba8(105, 99, 204, 153),
		ColLinkSelected:           rgba8(105, 99, 204, 153),
		ColPin:                    rgba8(89, 102, 156, 170),
		ColPinHovered:             rgba8(102, 122, 179, 200),
		ColBoxSelector:            rgba8(90, 170, 250, 30),
		ColBoxSelectorOutline:     rgba8(90, 170, 250, 150),
		ColGridBackground:         rgba8(40, 40, 50, 200),
		ColGridLine:               rgba8(200, 200, 200, 40),
	}
	return s
}

// StyleColorsLight returns the light color theme.
func StyleColorsLight() Style {
	s := baseStyle()
	s.Colors = [styleColCount]Color{
		ColNodeBackground:         rgba8(240, 240, 240, 255),
		ColNodeBackgroundHovered:  rgba8(240, 240, 240, 255),
		ColNodeBackgroundSelected: rgba8(240, 240, 240, 255),
		ColNodeOutline:            rgba8(100, 100, 100, 255),
		ColTitleBar:               rgba8(248, 248, 248, 255),
		ColTitleBarHovered:        rgba8(209, 209, 209, 255),
		ColTitleBarSelected:       rgba8(209, 209, 209, 255),
		ColLink:                   rgba8(66, 150, 250, 100),
		ColLinkHovered:            rgba8(66, 150, 250, 242),
		ColLinkSelected:           rgba8(66, 150, 250, 242),
		ColPin:                    rgba8(66, 150, 250, 160),
		ColPinHovered:             rgba8(66, 150, 250, 255),
		ColBoxSelector:            rgba8(90, 170, 250, 30),
		ColBoxSelectorOutline:     rgba8(90, 170, 250, 150),
		ColGridBackground:         rgba8(225, 225, 225, 255),
		ColGridLine:               rgba8(180, 180, 180, 100),
	}
	return s
}

// SetStyle replaces the editor's entire style.
func (ed *EditorContext) SetStyle(s Style) {
	ed.style = s
}

// Style returns a pointer to the editor's style for direct tweaking.
func (ed *EditorContext) Style() *Style {
	return &ed.style
}

// varPtr maps a StyleVar to its field.
func (s *Style) varPtr(v StyleVar) *float32 {
	switch v {
	case StyleVarGridSpacing:
		return &s.GridSpacing
	case StyleVarNodeCornerRounding:
		return &s.NodeCornerRounding
	case StyleVarNodePaddingHorizontal:
		return &s.NodePaddingH
	case StyleVarNodePaddingVertical:
		return &s.NodePaddingV
	case StyleVarNodeBorderThickness:
		return &s.NodeBorderThickness
	case StyleVarLinkThickness:
		return &s.LinkThickness
	case StyleVarLinkHoverDistance:
		return &s.LinkHoverDistance
	case StyleVarPinCircleRadius:
		return &s.PinCircleRadius
	case StyleVarPinQuadSideLength:
		return &s.PinQuadSideLength
	case StyleVarPinTriangleSideLength:
		return &s.PinTriangleSideLength
	case StyleVarPinLineThickness:
		return &s.PinLineThickness
	case StyleVarPinHoverRadius:
		return &s.PinHoverRadius
	case StyleVarPinOffset:
		return &s.PinOffset
	default:
		panic(fmt.Sprintf("weave: unknown style var %d", v))
	}
}

// --- Push/pop stacks ---
//
// Tokens must be popped in reverse push order before the editor frame's
// state is inspected again; popping out of order or twice panics. The
// tokens do not auto-pop when discarded, since that would hide bugs.

type colorEntry struct {
	col  StyleCol
	prev Color
}

type varEntry struct {
	v    StyleVar
	prev float32
}

// ColorToken restores a pushed style color when popped.
type ColorToken struct {
	ed     *EditorContext
	index  int
	popped bool
}

// PushColorStyle overrides one style color until the token is popped.
func (ed *EditorContext) PushColorStyle(col StyleCol, c Color) *ColorToken {
	if col >= styleColCount {
		panic(fmt.Sprintf("weave: unknown style color %d", col))
	}
	ed.colorStack = append(ed.colorStack, colorEntry{col: col, prev: ed.style.Colors[col]})
	ed.style.Colors[col] = c
	return &ColorToken{ed: ed, index: len(ed.colorStack) - 1}
}

// Pop restores the color this token pushed.
func (t *ColorToken) Pop() {
	if t.popped {
		panic("weave: color token popped twice")
	}
	if t.index != len(t.ed.colorStack)-1 {
		panic("weave: color tokens must be popped in reverse push order")
	}
	t.popped = true
	e := t.ed.colorStack[t.index]
	t.ed.style.Colors[e.col] = e.prev
	t.ed.colorStack = t.ed.colorStack[:t.index]
}

// StyleVarToken restores a pushed style var when popped.
type StyleVarToken struct {
	ed     *EditorContext
	index  int
	popped bool
}

// PushStyleVar overrides one scalar style parameter until the token is
// popped.
func (ed *EditorContext) PushStyleVar(v StyleVar, value float32) *StyleVarToken {
	p := ed.style.varPtr(v)
	ed.varStack = append(ed.varStack, varEntry{v: v, prev: *p})
	*p = value
	return &StyleVarToken{ed: ed, index: len(ed.varStack) - 1}
}

// Pop restores the value this token pushed.
func (t *StyleVarToken) Pop() {
	if t.popped {
		panic("weave: style var token popped twice")
	}
	if t.index != len(t.ed.varStack)-1 {
		panic("weave: style var tokens must be popped in reverse push order")
	}
	t.popped = true
	e := t.ed.varStack[t.index]
	*t.ed.style.varPtr(e.v) = e.prev
	t.ed.varStack = t.ed.varStack[:t.index]
}

// AttributeFlagToken removes a pushed attribute flag when popped.
type AttributeFlagToken struct {
	ed     *EditorContext
	index  int
	popped bool
}

// PushAttributeFlag enables an attribute behavior flag until the token is
// popped. By default only AttrFlagNone is set.
func (ed *EditorContext) PushAttributeFlag(flag AttrFlag) *AttributeFlagToken {
	ed.flagStack = append(ed.flagStack, flag)
	return &AttributeFlagToken{ed: ed, index: len(ed.flagStack) - 1}
}

// Pop removes the flag this token pushed.
func (t *AttributeFlagToken) Pop() {
	if t.popped {
		panic("weave: attribute flag token popped twice")
	}
	if t.index != len(t.ed.flagStack)-1 {
		panic("weave: attribute flag tokens must be popped in reverse push order")
	}
	t.popped = true
	t.ed.flagStack = t.ed.flagStack[:t.index]
}

// flagPushed reports whether the given flag is anywhere on the stack.
func (ed *EditorContext) flagPushed(flag AttrFlag) bool {
	for _, f := range ed.flagStack {
		if f == flag {
			return true
		}
	}
	return false
}
