package gesture

import (
	"sync"

	"github.com/google/uuid"

	"github.com/entrhq/strokes/pkg/types"
)

// TargetInspector answers capability questions about host elements.
type TargetInspector interface {
	// IsEditableSurface reports whether the target is a text input,
	// editable region or code editor.
	IsEditableSurface(target types.Target) bool
}

// EventTargetInspector trusts the Editable flag carried by the event.
type EventTargetInspector struct{}

// IsEditableSurface returns target.Editable.
func (EventTargetInspector) IsEditableSurface(target types.Target) bool {
	return target.Editable
}

// Logger is the subset of the logging package the engine uses.
type Logger interface {
	Debugf(format string, v ...interface{})
}

// Option configures an Engine.
type Option func(*Engine)

// WithInspector sets the editable-surface capability query.
func WithInspector(i TargetInspector) Option {
	return func(e *Engine) { e.inspector = i }
}

// WithEventSink registers a callback for engine events. The callback runs
// after the engine has released its lock and may call back into the engine.
func WithEventSink(sink func(types.EngineEvent)) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger sets a debug logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// Engine is the gesture recognition state machine for one page context.
type Engine struct {
	mu sync.Mutex

	active  Config
	pending *Config
	host    string

	state   State
	session *Session
	trail   trail

	inspector TargetInspector
	sink      func(types.EngineEvent)
	logger    Logger
	newID     func() string
}

// NewEngine creates an idle engine with the given configuration.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		active:    cfg.normalized(),
		state:     StateIdle,
		inspector: EventTargetInspector{},
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetPageHost records the host of the page gestures are drawn on.
func (e *Engine) SetPageHost(host string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.host = host
}

// State returns the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Config returns the active configuration snapshot.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.active
	cfg.Actions = cfg.Actions.Clone()
	return cfg
}

// HasPendingConfig reports whether an update is waiting for the session to end.
func (e *Engine) HasPendingConfig() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil
}

// Session returns the live session, or nil when idle.
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Handle dispatches a pointer event to the matching handler and returns the
// action request produced by a pointer-up, if any.
func (e *Engine) Handle(ev types.PointerEvent) *types.ActionRequest {
	switch ev.Type {
	case types.PointerDown:
		e.PointerDown(ev)
	case types.PointerMove:
		e.PointerMove(ev)
	case types.PointerUp:
		return e.PointerUp(ev)
	case types.PointerCancel:
		e.Cancel("pointer cancelled")
	}
	return nil
}

// PointerDown starts a session when the button is the trigger button, the
// policy gate allows the current host and the target is not editable. It
// reports whether a session started. A pointer-down while a session is
// live is ignored.
func (e *Engine) PointerDown(ev types.PointerEvent) bool {
	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return false
	}

	cfg := e.active
	var refused string
	switch {
	case ev.Button != cfg.Recognition.TriggerButton:
		refused = "not the trigger button"
	case e.inspector.IsEditableSurface(ev.Target):
		refused = "started on an editable surface"
	default:
		if d := cfg.Gate.Check(e.host, ev.Modifiers); !d.Allowed {
			refused = d.Reason
		}
	}
	if refused != "" {
		e.mu.Unlock()
		e.debugf("start refused on %q: %s", e.host, refused)
		e.emit(types.EngineEvent{Type: types.EventTypeStartRefused, Reason: refused})
		return false
	}

	s := newSession(e.newID(), e.host, cfg, ev)
	e.session = s
	e.state = StateTracking
	e.trail.markDirty(s.ID)
	e.mu.Unlock()

	e.debugf("session %s started on %q at (%.0f, %.0f)", s.ID, s.Host, ev.X, ev.Y)
	e.emit(types.EngineEvent{Type: types.EventTypeSessionStarted, SessionID: s.ID})
	return true
}

// PointerMove feeds a position into the live session. Moving onto an
// editable surface cancels the session.
func (e *Engine) PointerMove(ev types.PointerEvent) {
	e.mu.Lock()
	if e.state != StateTracking {
		e.mu.Unlock()
		return
	}
	if e.inspector.IsEditableSurface(ev.Target) {
		events := e.cancelLocked("pointer entered an editable surface")
		e.mu.Unlock()
		e.emit(events...)
		return
	}

	s := e.session
	kept, token := s.track(Sample{X: ev.X, Y: ev.Y, Time: ev.Timestamp})
	if kept {
		e.trail.markDirty(s.ID)
	}
	var pattern string
	if token != DirNone {
		pattern = s.Pattern().String()
	}
	e.mu.Unlock()

	if token != DirNone {
		e.emit(types.EngineEvent{
			Type:      types.EventTypePatternChanged,
			SessionID: s.ID,
			Pattern:   pattern,
		})
	}
}

// PointerUp finishes the live session. The release position is tracked like
// a final move. If the pointer never moved far enough the release counts as
// a plain click and nothing is resolved. At most one request is returned.
func (e *Engine) PointerUp(ev types.PointerEvent) *types.ActionRequest {
	e.mu.Lock()
	if e.state != StateTracking || ev.Button != e.session.button {
		e.mu.Unlock()
		return nil
	}

	s := e.session
	e.state = StateFinalizing
	s.track(Sample{X: ev.X, Y: ev.Y, Time: ev.Timestamp})

	var req *types.ActionRequest
	pattern := s.finalPattern()
	if s.moved {
		if r, ok := Resolve(pattern, s.start, s.cfg.Actions, s.cfg.Recognition.LinkOverride); ok {
			r.Context.SessionID = s.ID
			req = &r
		}
	}

	events := []types.EngineEvent{{
		Type:      types.EventTypeSessionFinalized,
		SessionID: s.ID,
		Pattern:   pattern.String(),
		Reason:    finalizeReason(s.moved, req),
	}}
	if req != nil {
		events = append(events, types.EngineEvent{
			Type:      types.EventTypeActionRequested,
			SessionID: s.ID,
			Pattern:   pattern.String(),
			Request:   req,
		})
	}
	events = append(events, e.endSessionLocked()...)
	e.mu.Unlock()

	e.debugf("session %s finalized: pattern=%q moved=%v action=%v", s.ID, pattern.String(), s.moved, actionOf(req))
	e.emit(events...)
	return req
}

// Cancel discards the live session without resolving anything.
func (e *Engine) Cancel(reason string) {
	e.mu.Lock()
	if e.state != StateTracking {
		e.mu.Unlock()
		return
	}
	events := e.cancelLocked(reason)
	e.mu.Unlock()
	e.emit(events...)
}

func (e *Engine) cancelLocked(reason string) []types.EngineEvent {
	s := e.session
	e.state = StateCancelled
	e.debugf("session %s cancelled: %s", s.ID, reason)
	events := []types.EngineEvent{{
		Type:      types.EventTypeSessionCancelled,
		SessionID: s.ID,
		Pattern:   s.Pattern().String(),
		Reason:    reason,
	}}
	return append(events, e.endSessionLocked()...)
}

// endSessionLocked returns the engine to Idle and applies a queued config.
func (e *Engine) endSessionLocked() []types.EngineEvent {
	e.session = nil
	e.state = StateIdle
	e.trail.markClear()
	if e.pending == nil {
		return nil
	}
	e.active = *e.pending
	e.pending = nil
	return []types.EngineEvent{{Type: types.EventTypeConfigApplied, Reason: "applied after session end"}}
}

// UpdateConfig installs a new configuration. While a session is tracking the
// snapshot is queued (replacing any earlier queued one) and applied when the
// session ends. It reports whether the update took effect immediately.
func (e *Engine) UpdateConfig(cfg Config) bool {
	cfg = cfg.normalized()

	e.mu.Lock()
	if e.state == StateTracking {
		e.pending = &cfg
		e.mu.Unlock()
		e.debugf("config update deferred until session ends")
		e.emit(types.EngineEvent{Type: types.EventTypeConfigDeferred})
		return false
	}
	e.active = cfg
	e.pending = nil
	e.mu.Unlock()

	e.emit(types.EngineEvent{Type: types.EventTypeConfigApplied})
	return true
}

// TrailFrame returns the trail hint for the next paint, or false when nothing
// changed since the previous frame. Hosts call it once per paint.
func (e *Engine) TrailFrame() (TrailHint, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trail.frame(e.session)
}

// Pattern returns the live pattern of the current session.
func (e *Engine) Pattern() Pattern {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Pattern{}
	}
	return e.session.Pattern()
}

func (e *Engine) emit(events ...types.EngineEvent) {
	if e.sink == nil {
		return
	}
	for _, ev := range events {
		e.sink(ev)
	}
}

func (e *Engine) debugf(format string, v ...interface{}) {
	if e.logger != nil {
		e.logger.Debugf(format, v...)
	}
}

func finalizeReason(moved bool, req *types.ActionRequest) string {
	switch {
	case !moved:
		return "click"
	case req == nil:
		return "no action bound"
	default:
		return ""
	}
}

func actionOf(req *types.ActionRequest) types.Action {
	if req == nil {
		return types.ActionNone
	}
	return req.Action
}
