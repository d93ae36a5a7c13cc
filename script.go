package famexplorer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Handle string  `json:"handle,omitempty"`
	Key    string  `json:"key,omitempty"`
	Text   string  `json:"text,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for an interaction script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and screenshots across frames, for
// demos and automated visual checks. Attach to an Explorer via SetScript.
//
// Supported actions:
//
//	click {x, y}        tile {handle}       hover {x, y}
//	drag {fromX, fromY, toX, toY, frames}
//	key {key}           type {text}         submit
//	wait {frames}       screenshot {label}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script. Keys and actions are
// validated up front so a bad script fails before the window opens.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("famexplorer: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("famexplorer: parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "hover", "drag", "type", "submit", "wait", "screenshot":
		case "tile":
			if st.Handle == "" {
				return nil, fmt.Errorf("famexplorer: script step %d: tile needs a handle", i)
			}
		case "key":
			if _, err := parseKey(st.Key); err != nil {
				return nil, fmt.Errorf("famexplorer: script step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("famexplorer: script step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// scriptKeys names the keys the explorer responds to.
var scriptKeys = map[string]ebiten.Key{
	"enter":     ebiten.KeyEnter,
	"escape":    ebiten.KeyEscape,
	"backspace": ebiten.KeyBackspace,
	"+":         ebiten.KeyEqual,
	"-":         ebiten.KeyMinus,
	"0":         ebiten.KeyDigit0,
	"f":         ebiten.KeyF,
	"/":         ebiten.KeySlash,
}

func parseKey(name string) (ebiten.Key, error) {
	k, ok := scriptKeys[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

// SetScript attaches a ScriptRunner. The runner's step method is called from
// Explorer.Update before processInput each frame.
func (e *Explorer) SetScript(runner *ScriptRunner) {
	e.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Explorer.Update.
func (r *ScriptRunner) step(e *Explorer) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
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
		e.Screenshot(st.Label)
	case "click":
		e.InjectClick(st.X, st.Y)
	case "tile":
		if x, y, ok := e.TileScreenCenter(st.Handle); ok {
			e.InjectHover(x, y)
			e.InjectClick(x, y)
		} else {
			e.logger.Sugar().Warnf("script: no tile for %q", st.Handle)
		}
	case "hover":
		e.InjectHover(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "key":
		k, _ := parseKey(st.Key)
		e.InjectKey(k)
	case "type":
		e.InjectText(st.Text)
	case "submit":
		e.Submit()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}

// TileScreenCenter returns the screen position of the centre of the tile
// for handle.
func (e *Explorer) TileScreenCenter(handle string) (x, y float64, ok bool) {
	r, ok := e.layout.TileBounds(handle)
	if !ok {
		return 0, 0, false
	}
	c := r.Center()
	x, y = e.viewport.WorldToScreen(c.X, c.Y)
	return x, y, true
}
