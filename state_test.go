package weave

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEditorStateStringRoundTrip(t *testing.T) {
	ed := newTestEditor(t)
	gen := ed.IDGen()
	a := gen.NextNode()
	b := gen.NextNode()
	ed.SetNodePosition(a, Vec2{X: 120, Y: 80}, GridSpace)
	ed.SetNodePosition(b, Vec2{X: 300, Y: 220}, GridSpace)
	ed.ResetPanning(Vec2{X: 15, Y: -40})
	ed.SelectNode(b)
	ed.selectLink(LinkID(9))

	data, err := ed.SaveEditorStateToString()
	if err != nil {
		t.Fatalf("SaveEditorStateToString: %v", err)
	}

	// Disturb everything, then restore.
	ed.SetNodePosition(a, Vec2{X: 1, Y: 1}, GridSpace)
	ed.SetNodePosition(b, Vec2{X: 2, Y: 2}, GridSpace)
	ed.ResetPanning(Vec2{})
	ed.ClearNodeSelection()
	ed.ClearLinkSelection()

	if err := ed.LoadEditorStateFromString(data); err != nil {
		t.Fatalf("LoadEditorStateFromString: %v", err)
	}
	if got := ed.NodePosition(a, GridSpace); got != (Vec2{X: 120, Y: 80}) {
		t.Errorf("node a position = %v, want {120 80}", got)
	}
	if got := ed.NodePosition(b, GridSpace); got != (Vec2{X: 300, Y: 220}) {
		t.Errorf("node b position = %v, want {300 220}", got)
	}
	if got := ed.Panning(); got != (Vec2{X: 15, Y: -40}) {
		t.Errorf("panning = %v, want {15 -40}", got)
	}
	if len(ed.selNodes) != 1 || ed.selNodes[0] != b {
		t.Errorf("selected nodes = %v, want [%d]", ed.selNodes, b)
	}
	if len(ed.selLinks) != 1 || ed.selLinks[0] != LinkID(9) {
		t.Errorf("selected links = %v, want [9]", ed.selLinks)
	}
}

func TestEditorStateOrderedByID(t *testing.T) {
	ed := newTestEditor(t)
	// Register positions in reverse id order; output must still be sorted.
	ed.SetNodePosition(NodeID(7), Vec2{X: 1, Y: 1}, GridSpace)
	ed.SetNodePosition(NodeID(3), Vec2{X: 2, Y: 2}, GridSpace)

	data, err := ed.SaveEditorStateToString()
	if err != nil {
		t.Fatalf("SaveEditorStateToString: %v", err)
	}
	first := strings.Index(data, "id = 3")
	second := strings.Index(data, "id = 7")
	if first < 0 || second < 0 {
		t.Fatalf("ids missing from output:\n%s", data)
	}
	if first > second {
		t.Errorf("node entries not sorted by id:\n%s", data)
	}
}

func TestLoadEditorStateBadInput(t *testing.T) {
	ed := newTestEditor(t)
	if err := ed.LoadEditorStateFromString("panning = {"); err == nil {
		t.Error("no error for malformed input")
	}
}

func TestEditorStateFileRoundTrip(t *testing.T) {
	ed := newTestEditor(t)
	id := ed.IDGen().NextNode()
	ed.SetNodePosition(id, Vec2{X: 64, Y: 96}, GridSpace)

	path := filepath.Join(t.TempDir(), "state.toml")
	if err := ed.SaveEditorStateToFile(path); err != nil {
		t.Fatalf("SaveEditorStateToFile: %v", err)
	}

	ed.SetNodePosition(id, Vec2{}, GridSpace)
	found, err := ed.LoadEditorStateFromFile(path)
	if err != nil {
		t.Fatalf("LoadEditorStateFromFile: %v", err)
	}
	if !found {
		t.Fatal("existing state file reported as missing")
	}
	if got := ed.NodePosition(id, GridSpace); got != (Vec2{X: 64, Y: 96}) {
		t.Errorf("restored position = %v, want {64 96}", got)
	}
}

func TestLoadEditorStateMissingFile(t *testing.T) {
	ed := newTestEditor(t)
	found, err := ed.LoadEditorStateFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file returned error: %v", err)
	}
	if found {
		t.Error("missing file reported as found")
	}
}

func TestLoadEditorStateUnreadableFile(t *testing.T) {
	ed := newTestEditor(t)
	// A directory in place of the file is an error, not a clean miss.
	dir := filepath.Join(t.TempDir(), "state.toml")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.LoadEditorStateFromFile(dir); err == nil {
		t.Error("no error reading a directory as state")
	}
}
