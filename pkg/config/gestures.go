package config

import (
	"sort"
	"sync"

	"github.com/entrhq/strokes/pkg/gesture"
)

// SectionIDGestures is the identifier for the gesture mapping section
const SectionIDGestures = "gestures"

// GesturesSection holds the pattern to action mapping.
type GesturesSection struct {
	actions gesture.ActionMap
	dropped []string
	mu      sync.RWMutex
}

// NewGesturesSection creates a gestures section with the default mapping.
func NewGesturesSection() *GesturesSection {
	return &GesturesSection{actions: gesture.DefaultActionMap()}
}

// ID returns the section identifier.
func (s *GesturesSection) ID() string {
	return SectionIDGestures
}

// Title returns the section title.
func (s *GesturesSection) Title() string {
	return "Gestures"
}

// Description returns the section description.
func (s *GesturesSection) Description() string {
	return "Maps direction patterns such as R or DR to browser actions."
}

// Data returns the current configuration data.
func (s *GesturesSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mappings := make(map[string]interface{}, len(s.actions))
	for pattern, action := range s.actions {
		mappings[pattern] = string(action)
	}
	return map[string]interface{}{
		"mappings": mappings,
	}
}

// SetData replaces the mapping when a "mappings" key is present. Entries
// with unparsable patterns or unknown actions are dropped and reported by
// Dropped. A mappings value that is not a map is an error and leaves the
// current mapping in place.
func (s *GesturesSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}
	raw, ok := data["mappings"]
	if !ok {
		return nil
	}
	m, err := toMap("mappings", raw)
	if err != nil {
		return err
	}

	strs := make(map[string]string, len(m))
	var dropped []string
	for pattern, v := range m {
		name, ok := toString(v)
		if !ok {
			dropped = append(dropped, pattern)
			continue
		}
		strs[pattern] = name
	}
	actions, bad := gesture.NewActionMap(strs)
	dropped = append(dropped, bad...)
	sort.Strings(dropped)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = actions
	s.dropped = dropped
	return nil
}

// Validate always succeeds; invalid entries are dropped by SetData.
func (s *GesturesSection) Validate() error {
	return nil
}

// Reset restores the default mapping.
func (s *GesturesSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = gesture.DefaultActionMap()
	s.dropped = nil
}

// Actions returns a copy of the current mapping.
func (s *GesturesSection) Actions() gesture.ActionMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actions.Clone()
}

// Dropped returns the pattern keys rejected by the last SetData.
func (s *GesturesSection) Dropped() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.dropped...)
}
