package types

// EngineEventType defines the type of event emitted by the gesture engine.
type EngineEventType string

const (
	EventTypeSessionStarted   EngineEventType = "session_started"   // EventTypeSessionStarted indicates the engine entered Tracking.
	EventTypePatternChanged   EngineEventType = "pattern_changed"   // EventTypePatternChanged indicates a token was appended to the live pattern.
	EventTypeSessionCancelled EngineEventType = "session_cancelled" // EventTypeSessionCancelled indicates the session was discarded without an action.
	EventTypeSessionFinalized EngineEventType = "session_finalized" // EventTypeSessionFinalized indicates the session ended on pointer-up.
	EventTypeActionRequested  EngineEventType = "action_requested"  // EventTypeActionRequested indicates an action request was produced.
	EventTypeStartRefused     EngineEventType = "start_refused"     // EventTypeStartRefused indicates a pointer-down did not qualify.
	EventTypeConfigApplied    EngineEventType = "config_applied"    // EventTypeConfigApplied indicates a new configuration snapshot is active.
	EventTypeConfigDeferred   EngineEventType = "config_deferred"   // EventTypeConfigDeferred indicates a snapshot was queued behind a live session.
)

// EngineEvent represents an event emitted by the engine to its host.
type EngineEvent struct {
	// Type indicates the kind of event.
	Type EngineEventType

	// SessionID is the gesture session the event belongs to, if any.
	SessionID string

	// Pattern is the serialized pattern at the time of the event.
	Pattern string

	// Reason explains cancellations and refused starts.
	Reason string

	// Request is set for EventTypeActionRequested.
	Request *ActionRequest
}

// IsTerminal reports whether the event ends a gesture session.
func (e EngineEvent) IsTerminal() bool {
	return e.Type == EventTypeSessionCancelled || e.Type == EventTypeSessionFinalized
}
