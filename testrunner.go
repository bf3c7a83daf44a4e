package weave

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	FromX  float32 `json:"fromX,omitempty"`
	FromY  float32 `json:"fromY,omitempty"`
	ToX    float32 `json:"toX,omitempty"`
	ToY    float32 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer events and screenshots across
// frames for automated visual testing. Attach to an editor via
// SetTestRunner; it advances one step per frame once the editor's inject
// queue has drained.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the editor. The runner is
// stepped at the start of each BeginEditor.
func (ed *EditorContext) SetTestRunner(runner *TestRunner) {
	ed.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// stepTestRunner advances the attached runner by one frame.
func (ed *EditorContext) stepTestRunner() {
	r := ed.testRunner
	if r == nil || r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(ed.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		ed.Screenshot(st.Label)
	case "click":
		ed.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		ed.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(ed.injectQueue) == 0 {
		r.done = true
	}
}
