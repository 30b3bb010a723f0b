package types

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Action
		ok       bool
	}{
		{name: "empty is the no-op", input: "", expected: ActionNone, ok: true},
		{name: "back", input: "back", expected: ActionBack, ok: true},
		{name: "new_tab", input: "new_tab", expected: ActionNewTab, ok: true},
		{name: "close_tab", input: "close_tab", expected: ActionCloseTab, ok: true},
		{name: "unknown", input: "bookmark", expected: ActionNone, ok: false},
		{name: "case sensitive", input: "Back", expected: ActionNone, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAction(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ParseAction(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestActionsVocabulary(t *testing.T) {
	if len(Actions) != 7 {
		t.Fatalf("expected 7 actions, got %d", len(Actions))
	}
	for _, a := range Actions {
		if got, ok := ParseAction(string(a)); !ok || got != a {
			t.Errorf("action %q does not round-trip through ParseAction", a)
		}
	}
}

func TestParseButton(t *testing.T) {
	tests := map[string]Button{
		"left":   ButtonLeft,
		"middle": ButtonMiddle,
		"right":  ButtonRight,
		"":       ButtonNone,
		"wheel":  ButtonNone,
	}
	for input, expected := range tests {
		if got := ParseButton(input); got != expected {
			t.Errorf("ParseButton(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestModifiers(t *testing.T) {
	mods := Modifiers{Alt: true, Meta: true}

	tests := []struct {
		key  ModifierKey
		held bool
	}{
		{ModifierShift, false},
		{ModifierAlt, true},
		{ModifierCtrl, false},
		{ModifierMeta, true},
		{ModifierKey("hyper"), false},
	}
	for _, tt := range tests {
		if got := mods.Held(tt.key); got != tt.held {
			t.Errorf("Held(%q) = %v, want %v", tt.key, got, tt.held)
		}
	}

	if _, ok := ParseModifierKey("hyper"); ok {
		t.Error("expected hyper to be rejected")
	}
	if key, ok := ParseModifierKey("ctrl"); !ok || key != ModifierCtrl {
		t.Errorf("ParseModifierKey(ctrl) = (%q, %v)", key, ok)
	}
}

func TestEngineEventIsTerminal(t *testing.T) {
	terminal := map[EngineEventType]bool{
		EventTypeSessionStarted:   false,
		EventTypePatternChanged:   false,
		EventTypeSessionCancelled: true,
		EventTypeSessionFinalized: true,
		EventTypeActionRequested:  false,
		EventTypeStartRefused:     false,
		EventTypeConfigApplied:    false,
		EventTypeConfigDeferred:   false,
	}
	for typ, expected := range terminal {
		if got := (EngineEvent{Type: typ}).IsTerminal(); got != expected {
			t.Errorf("%s: IsTerminal() = %v, want %v", typ, got, expected)
		}
	}
}
