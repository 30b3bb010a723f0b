package types

import "time"

// PointerEventType defines the kind of pointer input delivered to the engine.
type PointerEventType string

const (
	PointerDown   PointerEventType = "down"   // PointerDown indicates a button was pressed.
	PointerMove   PointerEventType = "move"   // PointerMove indicates the pointer moved.
	PointerUp     PointerEventType = "up"     // PointerUp indicates a button was released.
	PointerCancel PointerEventType = "cancel" // PointerCancel indicates the host aborted the gesture.
)

// Button identifies the pointer button that produced an event.
type Button string

const (
	ButtonNone   Button = ""
	ButtonLeft   Button = "left"
	ButtonMiddle Button = "middle"
	ButtonRight  Button = "right"
)

// ParseButton maps a button name to a Button. Unknown names yield ButtonNone.
func ParseButton(name string) Button {
	switch Button(name) {
	case ButtonLeft, ButtonMiddle, ButtonRight:
		return Button(name)
	default:
		return ButtonNone
	}
}

// ModifierKey identifies a keyboard modifier.
type ModifierKey string

const (
	ModifierShift ModifierKey = "shift"
	ModifierAlt   ModifierKey = "alt"
	ModifierCtrl  ModifierKey = "ctrl"
	ModifierMeta  ModifierKey = "meta"
)

// ParseModifierKey maps a modifier name to a ModifierKey, reporting whether
// the name was recognized.
func ParseModifierKey(name string) (ModifierKey, bool) {
	switch ModifierKey(name) {
	case ModifierShift, ModifierAlt, ModifierCtrl, ModifierMeta:
		return ModifierKey(name), true
	default:
		return "", false
	}
}

// Modifiers is the set of modifier keys held when an event was produced.
type Modifiers struct {
	Shift bool `yaml:"shift" json:"shift"`
	Alt   bool `yaml:"alt" json:"alt"`
	Ctrl  bool `yaml:"ctrl" json:"ctrl"`
	Meta  bool `yaml:"meta" json:"meta"`
}

// Held reports whether the given modifier key is held.
func (m Modifiers) Held(key ModifierKey) bool {
	switch key {
	case ModifierShift:
		return m.Shift
	case ModifierAlt:
		return m.Alt
	case ModifierCtrl:
		return m.Ctrl
	case ModifierMeta:
		return m.Meta
	default:
		return false
	}
}

// Target describes the element under the pointer as reported by the host.
// The engine never inspects markup; it only sees these capability bits.
type Target struct {
	// ID is an opaque host identity for the element.
	ID string `yaml:"id" json:"id"`

	// LinkURL is the resolved absolute URL when the element is, or is
	// contained in, a hyperlink. Empty otherwise.
	LinkURL string `yaml:"link_url" json:"link_url"`

	// Editable is true for text inputs, contenteditable regions and code editors.
	Editable bool `yaml:"editable" json:"editable"`
}

// PointerEvent is a single pointer input delivered by the host.
type PointerEvent struct {
	Type      PointerEventType `yaml:"type" json:"type"`
	Button    Button           `yaml:"button" json:"button"`
	X         float64          `yaml:"x" json:"x"`
	Y         float64          `yaml:"y" json:"y"`
	Timestamp time.Time        `yaml:"timestamp" json:"timestamp"`
	Target    Target           `yaml:"target" json:"target"`
	Modifiers Modifiers        `yaml:"modifiers" json:"modifiers"`
}
