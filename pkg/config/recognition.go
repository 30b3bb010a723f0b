package config

import (
	"strings"
	"sync"

	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/types"
)

// SectionIDRecognition is the identifier for the recognition section
const SectionIDRecognition = "recognition"

// RecognitionSection holds the recognition thresholds and switches. Values
// that cannot be read as the right type fall back to their default, and
// numbers outside their range are clamped.
type RecognitionSection struct {
	cfg gesture.RecognitionConfig
	mu  sync.RWMutex
}

// NewRecognitionSection creates a recognition section with default settings.
func NewRecognitionSection() *RecognitionSection {
	return &RecognitionSection{cfg: gesture.DefaultRecognitionConfig()}
}

// ID returns the section identifier.
func (s *RecognitionSection) ID() string {
	return SectionIDRecognition
}

// Title returns the section title.
func (s *RecognitionSection) Title() string {
	return "Recognition"
}

// Description returns the section description.
func (s *RecognitionSection) Description() string {
	return "Movement thresholds, direction tolerances, diagonal normalization and link override."
}

// Data returns the current configuration data.
func (s *RecognitionSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"min_segment_px":           s.cfg.MinSegmentPx,
		"jitter_px":                s.cfg.JitterPx,
		"sample_min_px":            s.cfg.SampleMinPx,
		"moved_px":                 s.cfg.MovedPx,
		"horizontal_tolerance_deg": s.cfg.HorizontalToleranceDeg,
		"vertical_tolerance_deg":   s.cfg.VerticalToleranceDeg,
		"normalize_diagonals":      s.cfg.NormalizeDiagonals,
		"link_override":            string(s.cfg.LinkOverride),
		"trigger_button":           string(s.cfg.TriggerButton),
	}
}

// SetData updates the configuration from the provided data. It never fails.
func (s *RecognitionSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	def := gesture.DefaultRecognitionConfig()
	cfg := s.cfg
	for key, value := range data {
		switch key {
		case "min_segment_px":
			cfg.MinSegmentPx = floatOr(value, def.MinSegmentPx)
		case "jitter_px":
			cfg.JitterPx = floatOr(value, def.JitterPx)
		case "sample_min_px":
			cfg.SampleMinPx = floatOr(value, def.SampleMinPx)
		case "moved_px":
			cfg.MovedPx = floatOr(value, def.MovedPx)
		case "horizontal_tolerance_deg":
			cfg.HorizontalToleranceDeg = floatOr(value, def.HorizontalToleranceDeg)
		case "vertical_tolerance_deg":
			cfg.VerticalToleranceDeg = floatOr(value, def.VerticalToleranceDeg)
		case "normalize_diagonals":
			if b, ok := toBool(value); ok {
				cfg.NormalizeDiagonals = b
			} else {
				cfg.NormalizeDiagonals = def.NormalizeDiagonals
			}
		case "link_override":
			name, _ := toString(value)
			cfg.LinkOverride, _ = gesture.ParseLinkOverride(name)
		case "trigger_button":
			name, _ := toString(value)
			if b := types.ParseButton(strings.ToLower(name)); b != types.ButtonNone {
				cfg.TriggerButton = b
			} else {
				cfg.TriggerButton = def.TriggerButton
			}
		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}
	s.cfg = cfg.Clamped()

	return nil
}

// Validate always succeeds; SetData clamps.
func (s *RecognitionSection) Validate() error {
	return nil
}

// Reset resets the section to default configuration.
func (s *RecognitionSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = gesture.DefaultRecognitionConfig()
}

// Recognition returns the current settings.
func (s *RecognitionSection) Recognition() gesture.RecognitionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func floatOr(v interface{}, fallback float64) float64 {
	if f, ok := toFloat(v); ok {
		return f
	}
	return fallback
}
