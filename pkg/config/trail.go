package config

import (
	"sync"

	"github.com/entrhq/strokes/pkg/gesture"
)

// SectionIDTrail is the identifier for the trail style section
const SectionIDTrail = "trail"

// TrailSection holds the on-screen trail style.
type TrailSection struct {
	style gesture.TrailStyle
	mu    sync.RWMutex
}

// NewTrailSection creates a trail section with the default style.
func NewTrailSection() *TrailSection {
	return &TrailSection{style: gesture.DefaultTrailStyle()}
}

// ID returns the section identifier.
func (s *TrailSection) ID() string {
	return SectionIDTrail
}

// Title returns the section title.
func (s *TrailSection) Title() string {
	return "Trail"
}

// Description returns the section description.
func (s *TrailSection) Description() string {
	return "Color, width and length of the trail drawn while a gesture is in progress."
}

// Data returns the current configuration data.
func (s *TrailSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"enabled":    s.style.Enabled,
		"color":      s.style.Color,
		"width":      s.style.Width,
		"max_points": s.style.MaxPoints,
	}
}

// SetData updates the configuration from the provided data. It never fails.
func (s *TrailSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	def := gesture.DefaultTrailStyle()
	style := s.style
	for key, value := range data {
		switch key {
		case "enabled":
			if b, ok := toBool(value); ok {
				style.Enabled = b
			} else {
				style.Enabled = def.Enabled
			}
		case "color":
			if c, ok := toString(value); ok {
				style.Color = c
			} else {
				style.Color = def.Color
			}
		case "width":
			if n, ok := toInt(value); ok {
				style.Width = n
			} else {
				style.Width = def.Width
			}
		case "max_points":
			if n, ok := toInt(value); ok {
				style.MaxPoints = n
			} else {
				style.MaxPoints = def.MaxPoints
			}
		default:
			continue
		}
	}
	s.style = style.Clamped()

	return nil
}

// Validate always succeeds; SetData clamps.
func (s *TrailSection) Validate() error {
	return nil
}

// Reset resets the section to default configuration.
func (s *TrailSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = gesture.DefaultTrailStyle()
}

// Style returns the current trail style.
func (s *TrailSection) Style() gesture.TrailStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}
