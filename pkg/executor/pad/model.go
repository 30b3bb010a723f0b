package pad

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/strokes/pkg/config"
	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/types"
)

// frameInterval is the paint cadence. Pointer moves between two frames
// collapse into one trail update.
const frameInterval = time.Second / 60

// maxHistory bounds the list of recent requests shown under the canvas.
const maxHistory = 5

type frameMsg time.Time

// model is the Bubble Tea model of the gesture pad.
type model struct {
	engine      *gesture.Engine
	manager     *config.Manager
	unsubscribe func()

	cellWidth  float64
	cellHeight float64

	// inbox collects engine events. The engine calls the sink synchronously,
	// but config updates may arrive from another goroutine.
	inboxMu sync.Mutex
	inbox   []types.EngineEvent

	trail   gesture.TrailHint
	pattern string
	status  string
	last    *types.ActionRequest
	history []string

	// pressed is the button of the live press. Some terminals report
	// releases without a button.
	pressed types.Button

	width  int
	height int

	keys keyMap
	help help.Model

	now             func() time.Time
	copyToClipboard func(string) error
}

func newModel(manager *config.Manager, opts Options) *model {
	opts = opts.withDefaults()
	m := &model{
		manager:         manager,
		cellWidth:       opts.CellWidth,
		cellHeight:      opts.CellHeight,
		status:          "draw with the right mouse button",
		keys:            defaultKeyMap(),
		help:            help.New(),
		now:             time.Now,
		copyToClipboard: clipboard.WriteAll,
	}

	cfg := gesture.DefaultConfig()
	if manager != nil {
		cfg = manager.Snapshot()
	}
	engineOpts := []gesture.Option{gesture.WithEventSink(m.record)}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, gesture.WithLogger(opts.Logger))
	}
	m.engine = gesture.NewEngine(cfg, engineOpts...)
	m.engine.SetPageHost(opts.Host)

	if manager != nil {
		m.unsubscribe = manager.Subscribe(func(cfg gesture.Config) {
			m.engine.UpdateConfig(cfg)
		})
	} else {
		m.keys.Diagonals.SetEnabled(false)
	}
	return m
}

func (m *model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *model) record(ev types.EngineEvent) {
	m.inboxMu.Lock()
	defer m.inboxMu.Unlock()
	m.inbox = append(m.inbox, ev)
}

func (m *model) drain() []types.EngineEvent {
	m.inboxMu.Lock()
	defer m.inboxMu.Unlock()
	events := m.inbox
	m.inbox = nil
	return events
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init starts the paint loop.
func (m *model) Init() tea.Cmd {
	return frameTick()
}

// Update handles terminal input and frame ticks.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		m.handleEvents(m.drain())
		m.paint()
		return m, frameTick()

	case tea.MouseMsg:
		if ev, ok := m.pointerEvent(msg); ok {
			m.engine.Handle(ev)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.Cancel("pad closed")
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.engine.Cancel("cancelled from keyboard")
		case key.Matches(msg, m.keys.Copy):
			m.copyLast()
		case key.Matches(msg, m.keys.Diagonals):
			m.toggleDiagonals()
		case key.Matches(msg, m.keys.Clear):
			m.history = nil
			m.last = nil
		}
	}

	m.handleEvents(m.drain())
	return m, nil
}

// paint pulls the coalesced trail for this frame.
func (m *model) paint() {
	hint, ok := m.engine.TrailFrame()
	if !ok {
		return
	}
	if hint.Clear {
		m.trail = gesture.TrailHint{}
		return
	}
	m.trail = hint
}

// pointerEvent converts a terminal mouse event at cell resolution into an
// engine event at pixel resolution, aimed at the cell center.
func (m *model) pointerEvent(msg tea.MouseMsg) (types.PointerEvent, bool) {
	ev := types.PointerEvent{
		X:         (float64(msg.X) + 0.5) * m.cellWidth,
		Y:         (float64(msg.Y) + 0.5) * m.cellHeight,
		Timestamp: m.now(),
		Modifiers: types.Modifiers{Shift: msg.Shift, Alt: msg.Alt, Ctrl: msg.Ctrl},
	}

	switch msg.Action {
	case tea.MouseActionPress:
		button, ok := mouseButton(msg.Button)
		if !ok {
			return ev, false
		}
		ev.Type = types.PointerDown
		ev.Button = button
		m.pressed = button
	case tea.MouseActionMotion:
		ev.Type = types.PointerMove
	case tea.MouseActionRelease:
		ev.Type = types.PointerUp
		ev.Button = m.pressed
		if button, ok := mouseButton(msg.Button); ok {
			ev.Button = button
		}
		m.pressed = types.ButtonNone
	default:
		return ev, false
	}
	return ev, true
}

func mouseButton(b tea.MouseButton) (types.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return types.ButtonLeft, true
	case tea.MouseButtonMiddle:
		return types.ButtonMiddle, true
	case tea.MouseButtonRight:
		return types.ButtonRight, true
	default:
		return types.ButtonNone, false
	}
}

func (m *model) handleEvents(events []types.EngineEvent) {
	for _, ev := range events {
		switch ev.Type {
		case types.EventTypeSessionStarted:
			m.pattern = ""
			m.status = "tracking"
		case types.EventTypePatternChanged:
			m.pattern = ev.Pattern
		case types.EventTypeSessionCancelled:
			m.status = "cancelled: " + ev.Reason
		case types.EventTypeSessionFinalized:
			m.pattern = ev.Pattern
			if ev.Reason != "" {
				m.status = ev.Reason
			}
		case types.EventTypeActionRequested:
			m.last = ev.Request
			m.status = describeRequest(ev.Request)
			m.history = append(m.history, m.status)
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
		case types.EventTypeStartRefused:
			m.status = "refused: " + ev.Reason
		case types.EventTypeConfigDeferred:
			m.status = "settings change waits for the gesture to end"
		case types.EventTypeConfigApplied:
			m.status = "settings applied"
		}
	}
}

func (m *model) copyLast() {
	if m.last == nil {
		m.status = "no request to copy"
		return
	}
	raw, err := json.Marshal(m.last)
	if err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	if err := m.copyToClipboard(string(raw)); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = "copied last request"
}

func (m *model) toggleDiagonals() {
	if m.manager == nil {
		return
	}
	section, ok := m.manager.GetSection(config.SectionIDRecognition)
	if !ok {
		return
	}
	current, _ := section.Data()["normalize_diagonals"].(bool)
	err := m.manager.Apply(config.SectionIDRecognition, map[string]interface{}{
		"normalize_diagonals": !current,
	})
	if err != nil {
		m.status = fmt.Sprintf("settings change failed: %v", err)
	}
}

func describeRequest(req *types.ActionRequest) string {
	if req.Context.URL != "" {
		return fmt.Sprintf("%s → %s %s", req.Context.Pattern, req.Action, req.Context.URL)
	}
	return fmt.Sprintf("%s → %s", req.Context.Pattern, req.Action)
}
