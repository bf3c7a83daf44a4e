package weave

import "testing"

func TestStylePresetsDiffer(t *testing.T) {
	dark := StyleColorsDark()
	classic := StyleColorsClassic()
	light := StyleColorsLight()

	if dark.Colors[ColTitleBar] == classic.Colors[ColTitleBar] {
		t.Error("dark and classic share a title bar color")
	}
	if dark.Colors[ColNodeBackground] == light.Colors[ColNodeBackground] {
		t.Error("dark and light share a node background color")
	}
	if dark.GridSpacing != classic.GridSpacing {
		t.Error("presets should share scalar defaults")
	}
}

func TestPushPopColor(t *testing.T) {
	ed := newTestEditor(t)
	orig := ed.Style().Colors[ColGridBackground]

	red := Color{R: 1, A: 1}
	token := ed.PushColorStyle(ColGridBackground, red)
	if ed.Style().Colors[ColGridBackground] != red {
		t.Error("pushed color not applied")
	}
	token.Pop()
	if ed.Style().Colors[ColGridBackground] != orig {
		t.Error("popped color not restored")
	}
}

func TestPopOutOfOrderPanics(t *testing.T) {
	ed := newTestEditor(t)
	first := ed.PushColorStyle(ColLink, Color{R: 1, A: 1})
	second := ed.PushColorStyle(ColPin, Color{G: 1, A: 1})

	expectPanic(t, "pop out of order", func() {
		first.Pop()
	})
	second.Pop()
	first.Pop()
}

func TestDoublePopPanics(t *testing.T) {
	ed := newTestEditor(t)
	token := ed.PushStyleVar(StyleVarLinkThickness, 5)
	token.Pop()
	expectPanic(t, "double pop", func() {
		token.Pop()
	})
}

func TestPushPopStyleVar(t *testing.T) {
	ed := newTestEditor(t)
	orig := ed.Style().GridSpacing

	token := ed.PushStyleVar(StyleVarGridSpacing, 48)
	if ed.Style().GridSpacing != 48 {
		t.Errorf("GridSpacing = %f, want 48", ed.Style().GridSpacing)
	}
	inner := ed.PushStyleVar(StyleVarGridSpacing, 64)
	if ed.Style().GridSpacing != 64 {
		t.Errorf("GridSpacing = %f, want 64", ed.Style().GridSpacing)
	}
	inner.Pop()
	if ed.Style().GridSpacing != 48 {
		t.Errorf("GridSpacing after inner pop = %f, want 48", ed.Style().GridSpacing)
	}
	token.Pop()
	if ed.Style().GridSpacing != orig {
		t.Errorf("GridSpacing after outer pop = %f, want %f", ed.Style().GridSpacing, orig)
	}
}

func TestAttributeFlagStack(t *testing.T) {
	ed := newTestEditor(t)
	if ed.flagPushed(AttrFlagEnableLinkCreationOnSnap) {
		t.Error("snap flag set before any push")
	}
	token := ed.PushAttributeFlag(AttrFlagEnableLinkCreationOnSnap)
	if !ed.flagPushed(AttrFlagEnableLinkCreationOnSnap) {
		t.Error("snap flag not set after push")
	}
	if ed.flagPushed(AttrFlagEnableLinkDetachWithDragClick) {
		t.Error("detach flag set without a push")
	}
	token.Pop()
	if ed.flagPushed(AttrFlagEnableLinkCreationOnSnap) {
		t.Error("snap flag still set after pop")
	}
}
