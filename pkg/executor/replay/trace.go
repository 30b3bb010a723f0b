package replay

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/strokes/pkg/config"
	"github.com/entrhq/strokes/pkg/types"
)

// defaultStep is the interpolation spacing for path shorthands, in pixels.
const defaultStep = 2.0

// sampleInterval is the synthetic time between interpolated events.
const sampleInterval = 8 * time.Millisecond

// Trace is a replay file.
type Trace struct {
	Name     string                            `yaml:"name" json:"name"`
	Host     string                            `yaml:"host" json:"host"`
	Config   map[string]map[string]interface{} `yaml:"config" json:"config"`
	Gestures []Gesture                         `yaml:"gestures" json:"gestures"`
}

// Gesture is one recorded or described gesture.
type Gesture struct {
	Name   string       `yaml:"name" json:"name"`
	Host   string       `yaml:"host" json:"host"`
	Events []Event      `yaml:"events" json:"events"`
	Path   *Path        `yaml:"path" json:"path"`
	Expect *Expectation `yaml:"expect" json:"expect"`
}

// Event is a pointer event as written in a trace. T is milliseconds from
// the start of the gesture.
type Event struct {
	Type     types.PointerEventType `yaml:"type" json:"type"`
	Button   types.Button           `yaml:"button" json:"button"`
	X        float64                `yaml:"x" json:"x"`
	Y        float64                `yaml:"y" json:"y"`
	T        int64                  `yaml:"t" json:"t"`
	Link     string                 `yaml:"link" json:"link"`
	Target   string                 `yaml:"target" json:"target"`
	Editable bool                   `yaml:"editable" json:"editable"`
	Shift    bool                   `yaml:"shift" json:"shift"`
	Alt      bool                   `yaml:"alt" json:"alt"`
	Ctrl     bool                   `yaml:"ctrl" json:"ctrl"`
	Meta     bool                   `yaml:"meta" json:"meta"`
}

// Path describes a gesture as a polyline. It expands to a pointer-down at
// the first point, moves every Step pixels along each leg, and a pointer-up
// at the last point.
type Path struct {
	Button types.Button `yaml:"button" json:"button"`
	Step   float64      `yaml:"step" json:"step"`
	Points [][2]float64 `yaml:"points" json:"points"`
	Link   string       `yaml:"link" json:"link"`
	Shift  bool         `yaml:"shift" json:"shift"`
	Alt    bool         `yaml:"alt" json:"alt"`
	Ctrl   bool         `yaml:"ctrl" json:"ctrl"`
	Meta   bool         `yaml:"meta" json:"meta"`
}

// Expectation is what a gesture should produce. Empty fields are not
// checked. Action "none" expects no request.
type Expectation struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Action  string `yaml:"action" json:"action"`
	URL     string `yaml:"url" json:"url"`
	Outcome string `yaml:"outcome" json:"outcome"`
}

// LoadTrace reads a trace file. Files ending in .yaml or .yml are YAML,
// anything else is JSON.
func LoadTrace(path string) (*Trace, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	trace, err := ParseTrace(raw, config.FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trace, nil
}

// ParseTrace decodes and checks a trace.
func ParseTrace(raw []byte, format config.Format) (*Trace, error) {
	var trace Trace
	var err error
	switch format {
	case config.FormatYAML:
		err = yaml.Unmarshal(raw, &trace)
	default:
		err = json.Unmarshal(raw, &trace)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}

	if len(trace.Gestures) == 0 {
		return nil, fmt.Errorf("trace has no gestures")
	}
	for i, g := range trace.Gestures {
		if len(g.Events) == 0 && g.Path == nil {
			return nil, fmt.Errorf("gesture %d (%s) has neither events nor path", i, g.Name)
		}
		if g.Path != nil && len(g.Path.Points) < 1 {
			return nil, fmt.Errorf("gesture %d (%s) path has no points", i, g.Name)
		}
	}
	return &trace, nil
}

// PointerEvents returns the engine events for g, with timestamps relative
// to base.
func (g Gesture) PointerEvents(base time.Time) []types.PointerEvent {
	if g.Path != nil {
		return g.Path.expand(base)
	}

	out := make([]types.PointerEvent, 0, len(g.Events))
	for _, e := range g.Events {
		out = append(out, types.PointerEvent{
			Type:      e.Type,
			Button:    e.Button,
			X:         e.X,
			Y:         e.Y,
			Timestamp: base.Add(time.Duration(e.T) * time.Millisecond),
			Target:    types.Target{ID: e.Target, LinkURL: e.Link, Editable: e.Editable},
			Modifiers: types.Modifiers{Shift: e.Shift, Alt: e.Alt, Ctrl: e.Ctrl, Meta: e.Meta},
		})
	}
	return out
}

func (p *Path) expand(base time.Time) []types.PointerEvent {
	button := p.Button
	if button == types.ButtonNone {
		button = types.ButtonRight
	}
	step := p.Step
	if step <= 0 {
		step = defaultStep
	}
	mods := types.Modifiers{Shift: p.Shift, Alt: p.Alt, Ctrl: p.Ctrl, Meta: p.Meta}

	var out []types.PointerEvent
	at := func(i int) time.Time { return base.Add(time.Duration(i) * sampleInterval) }

	first := p.Points[0]
	out = append(out, types.PointerEvent{
		Type:      types.PointerDown,
		Button:    button,
		X:         first[0],
		Y:         first[1],
		Timestamp: at(0),
		Target:    types.Target{LinkURL: p.Link},
		Modifiers: mods,
	})
	for i := 1; i < len(p.Points); i++ {
		from, to := p.Points[i-1], p.Points[i]
		n := int(math.Ceil(math.Hypot(to[0]-from[0], to[1]-from[1]) / step))
		for k := 1; k <= n; k++ {
			f := float64(k) / float64(n)
			out = append(out, types.PointerEvent{
				Type:      types.PointerMove,
				X:         from[0] + (to[0]-from[0])*f,
				Y:         from[1] + (to[1]-from[1])*f,
				Timestamp: at(len(out)),
				Modifiers: mods,
			})
		}
	}
	last := p.Points[len(p.Points)-1]
	out = append(out, types.PointerEvent{
		Type:      types.PointerUp,
		Button:    button,
		X:         last[0],
		Y:         last[1],
		Timestamp: at(len(out)),
		Modifiers: mods,
	})
	return out
}
