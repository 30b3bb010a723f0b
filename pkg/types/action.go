package types

// Action is a command name from the closed host vocabulary.
type Action string

const (
	ActionNone     Action = ""          // ActionNone is the no-op action.
	ActionBack     Action = "back"      // ActionBack navigates history backwards.
	ActionForward  Action = "forward"   // ActionForward navigates history forwards.
	ActionTop      Action = "top"       // ActionTop scrolls to the top of the page.
	ActionBottom   Action = "bottom"    // ActionBottom scrolls to the bottom of the page.
	ActionReload   Action = "reload"    // ActionReload reloads the current page.
	ActionNewTab   Action = "new_tab"   // ActionNewTab opens a new tab, optionally at Context.URL.
	ActionCloseTab Action = "close_tab" // ActionCloseTab closes the current tab.
)

// Actions lists every non-empty action in the vocabulary.
var Actions = []Action{
	ActionBack,
	ActionForward,
	ActionTop,
	ActionBottom,
	ActionReload,
	ActionNewTab,
	ActionCloseTab,
}

// ParseAction maps a name to an Action, reporting whether it belongs to the
// vocabulary. The empty name is the valid no-op action.
func ParseAction(name string) (Action, bool) {
	if name == "" {
		return ActionNone, true
	}
	for _, a := range Actions {
		if string(a) == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Trigger sources recorded in ActionContext.Source.
const (
	SourceMapping      = "mapping"
	SourceLinkOverride = "link_override"
)

// ActionContext carries optional data for an action request.
type ActionContext struct {
	// URL is the target for new_tab requests produced by the link override.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Pattern is the serialized recognized pattern.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Source is SourceMapping or SourceLinkOverride.
	Source string `json:"source" yaml:"source"`

	// SessionID identifies the gesture session that produced the request.
	SessionID string `json:"session_id" yaml:"session_id"`
}

// ActionRequest is emitted by the engine when a gesture resolves to an action.
type ActionRequest struct {
	Action  Action        `json:"action" yaml:"action"`
	Context ActionContext `json:"context" yaml:"context"`
}
