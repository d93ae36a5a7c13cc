package famexplorer

import (
	"testing"
	"time"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "tile", "handle": "alice"},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "Escape"},
			{"action": "type", "text": "bob"}
		]
	}`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != "tile" || runner.steps[1].Handle != "alice" {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid json":   `not json`,
		"no steps":       `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "explode"}]}`,
		"unknown key":    `{"steps": [{"action": "key", "key": "hyper"}]}`,
		"tile no handle": `{"steps": [{"action": "tile"}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadScript([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScriptRunnerOpensTile(t *testing.T) {
	e, _ := newTestExplorer(t)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "tile", "handle": "alice"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	e.SetScript(runner)

	runner.step(e)
	if e.PendingInput() != 3 {
		t.Fatalf("expected hover + press + release, got %d", e.PendingInput())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}
	drain(e)
	runner.step(e)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
	e.Advance(50 * time.Millisecond)
	if st := e.Tooltip().State(); !st.Visible || st.Selected.Handle != "alice" {
		t.Errorf("tooltip = %+v, want alice", st)
	}
}

func TestScriptRunnerWait(t *testing.T) {
	e, _ := newTestExplorer(t)
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "key", "key": "+"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(e) // wait, frame 1
	runner.step(e) // frame 2
	runner.step(e) // frame 3
	if e.PendingInput() != 0 {
		t.Fatal("key injected before the wait finished")
	}
	runner.step(e)
	if e.PendingInput() != 1 {
		t.Errorf("PendingInput = %d, want 1", e.PendingInput())
	}
}

func TestScriptRunnerTypeAndSubmit(t *testing.T) {
	e, rec := newTestExplorer(t)
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "key", "key": "/"},
		{"action": "type", "text": "bob"},
		{"action": "submit"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10 && !runner.Done(); i++ {
		runner.step(e)
		drain(e)
	}
	if e.Query() != "bob" || rec.count(EventNavigate) != 1 {
		t.Errorf("Query = %q, navigate = %d", e.Query(), rec.count(EventNavigate))
	}
}
