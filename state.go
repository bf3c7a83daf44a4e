package weave

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Persistence covers the retained visual state an application cannot
// rebuild from its own model: panning, per-node grid positions, and the
// current selection. Everything else (nodes, links, values) is the
// application's data and must be saved separately, reassociated by id.

type editorStateDoc struct {
	Panning       panningDoc     `toml:"panning"`
	SelectedLinks []int32        `toml:"selected_links,omitempty"`
	Nodes         []nodeStateDoc `toml:"node"`
}

type panningDoc struct {
	X float32 `toml:"x"`
	Y float32 `toml:"y"`
}

type nodeStateDoc struct {
	ID       int32   `toml:"id"`
	X        float32 `toml:"x"`
	Y        float32 `toml:"y"`
	Selected bool    `toml:"selected,omitempty"`
}

// SaveEditorStateToString serializes the editor's visual state. Node
// entries are ordered by id so output is stable across runs.
func (ed *EditorContext) SaveEditorStateToString() (string, error) {
	ed.checkLive()
	doc := editorStateDoc{
		Panning: panningDoc{X: ed.panning.X, Y: ed.panning.Y},
	}
	for _, id := range ed.selLinks {
		doc.SelectedLinks = append(doc.SelectedLinks, int32(id))
	}
	sort.Slice(doc.SelectedLinks, func(i, j int) bool { return doc.SelectedLinks[i] < doc.SelectedLinks[j] })
	for id, v := range ed.visuals {
		doc.Nodes = append(doc.Nodes, nodeStateDoc{
			ID: int32(id), X: v.pos.X, Y: v.pos.Y,
			Selected: ed.nodeSelected(id),
		})
	}
	sort.Slice(doc.Nodes, func(i, j int) bool { return doc.Nodes[i].ID < doc.Nodes[j].ID })

	out, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("weave: marshal editor state: %w", err)
	}
	return string(out), nil
}

// LoadEditorStateFromString restores visual state saved by
// SaveEditorStateToString. Positions for nodes the application no longer
// submits are retained but harmless; nodes not mentioned keep their
// current position.
func (ed *EditorContext) LoadEditorStateFromString(data string) error {
	ed.checkLive()
	var doc editorStateDoc
	if err := toml.Unmarshal([]byte(data), &doc); err != nil {
		return fmt.Errorf("weave: unmarshal editor state: %w", err)
	}
	ed.ResetPanning(Vec2{X: doc.Panning.X, Y: doc.Panning.Y})
	ed.ClearNodeSelection()
	ed.ClearLinkSelection()
	for _, id := range doc.SelectedLinks {
		ed.selectLink(LinkID(id))
	}
	for _, n := range doc.Nodes {
		ed.visual(NodeID(n.ID)).pos = Vec2{X: n.X, Y: n.Y}
		if n.Selected {
			ed.SelectNode(NodeID(n.ID))
		}
	}
	return nil
}

// SaveEditorStateToFile writes the editor's visual state to path.
func (ed *EditorContext) SaveEditorStateToFile(path string) error {
	data, err := ed.SaveEditorStateToString()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("weave: save editor state: %w", err)
	}
	return nil
}

// LoadEditorStateFromFile restores visual state from path. A missing
// file is not an error: it reports (false, nil) so a first run can fall
// through to default positions.
func (ed *EditorContext) LoadEditorStateFromFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("weave: load editor state: %w", err)
	}
	if err := ed.LoadEditorStateFromString(string(data)); err != nil {
		return false, err
	}
	return true, nil
}
