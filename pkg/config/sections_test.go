package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/policy"
	"github.com/entrhq/strokes/pkg/types"
)

func TestRecognitionSection_SetData(t *testing.T) {
	tests := []struct {
		name  string
		data  map[string]interface{}
		check func(t *testing.T, cfg gesture.RecognitionConfig)
	}{
		{
			name: "json numbers",
			data: map[string]interface{}{"min_segment_px": 24.0, "jitter_px": 2.0},
			check: func(t *testing.T, cfg gesture.RecognitionConfig) {
				assert.Equal(t, 24.0, cfg.MinSegmentPx)
				assert.Equal(t, 2.0, cfg.JitterPx)
			},
		},
		{
			name: "yaml ints and numeric strings",
			data: map[string]interface{}{"min_segment_px": 30, "moved_px": "12.5"},
			check: func(t *testing.T, cfg gesture.RecognitionConfig) {
				assert.Equal(t, 30.0, cfg.MinSegmentPx)
				assert.Equal(t, 12.5, cfg.MovedPx)
			},
		},
		{
			name: "out of range clamps",
			data: map[string]interface{}{"min_segment_px": 1.0, "jitter_px": 500.0, "sample_min_px": -3.0},
			check: func(t *testing.T, cfg gesture.RecognitionConfig) {
				assert.Equal(t, gesture.MinMinSegmentPx, cfg.MinSegmentPx)
				assert.Equal(t, gesture.MaxJitterPx, cfg.JitterPx)
				assert.Equal(t, gesture.MinSampleMinPx, cfg.SampleMinPx)
			},
		},
		{
			name: "non-numeric falls back to default",
			data: map[string]interface{}{"min_segment_px": "far", "jitter_px": []interface{}{1}},
			check: func(t *testing.T, cfg gesture.RecognitionConfig) {
				assert.Equal(t, gesture.DefaultMinSegmentPx, cfg.MinSegmentPx)
				assert.Equal(t, gesture.DefaultJitterPx, cfg.JitterPx)
			},
		},
		{
			name: "tolerances",
			data: map[string]interface{}{"horizontal_tolerance_deg": 60.0, "vertical_tolerance_deg": 60.0},
			check: func(t *testing.T, cfg gesture.RecognitionConfig) {
				assert.Equal(t, 60.0, cfg.HorizontalToleranceDeg)
				assert.Equal(t, 30.0, cfg.VerticalToleranceDeg)
			},
		},
		{
			name: "switches",
			data: map[string]interface{}{
				"normalize_diagonals": "false",
				"link_override":       "canonical_only",
				"trigger_button":      "Middle",
			},
			check: func(t *testing.T, cfg gesture.RecognitionConfig) {
				assert.False(t, cfg.NormalizeDiagonals)
				assert.Equal(t, gesture.LinkOverrideCanonicalOnly, cfg.LinkOverride)
				assert.Equal(t, types.ButtonMiddle, cfg.TriggerButton)
			},
		},
		{
			name: "unknown enum values fall back",
			data: map[string]interface{}{"link_override": "sometimes", "trigger_button": "thumb"},
			check: func(t *testing.T, cfg gesture.RecognitionConfig) {
				assert.Equal(t, gesture.LinkOverrideMappedForward, cfg.LinkOverride)
				assert.Equal(t, types.ButtonRight, cfg.TriggerButton)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRecognitionSection()
			require.NoError(t, s.SetData(tt.data))
			require.NoError(t, s.Validate())
			tt.check(t, s.Recognition())
		})
	}
}

func TestRecognitionSection_DataRoundTrip(t *testing.T) {
	s := NewRecognitionSection()
	require.NoError(t, s.SetData(map[string]interface{}{"min_segment_px": 40.0, "link_override": "off"}))

	other := NewRecognitionSection()
	require.NoError(t, other.SetData(s.Data()))
	assert.Equal(t, s.Recognition(), other.Recognition())

	other.Reset()
	assert.Equal(t, gesture.DefaultRecognitionConfig(), other.Recognition())
}

func TestGesturesSection(t *testing.T) {
	s := NewGesturesSection()
	assert.Equal(t, gesture.DefaultActionMap(), s.Actions())

	require.NoError(t, s.SetData(map[string]interface{}{"other": 1}), "no mappings key keeps defaults")
	assert.Equal(t, gesture.DefaultActionMap(), s.Actions())

	require.NoError(t, s.SetData(map[string]interface{}{
		"mappings": map[string]interface{}{
			"R":   "forward",
			"d r": "close_tab",
			"LU":  "fly",
			"XYZ": "back",
			"U":   7,
		},
	}))
	assert.Equal(t, gesture.ActionMap{"R": types.ActionForward, "DR": types.ActionCloseTab}, s.Actions())
	assert.Equal(t, []string{"LU", "U", "XYZ"}, s.Dropped())

	assert.Error(t, s.SetData(map[string]interface{}{"mappings": "R=forward"}))
	assert.Equal(t, gesture.ActionMap{"R": types.ActionForward, "DR": types.ActionCloseTab}, s.Actions())

	actions := s.Actions()
	actions["L"] = types.ActionBack
	assert.NotContains(t, s.Actions(), "L", "Actions returns a copy")

	s.Reset()
	assert.Equal(t, gesture.DefaultActionMap(), s.Actions())
	assert.Empty(t, s.Dropped())
}

func TestSitesSection(t *testing.T) {
	s := NewSitesSection()
	assert.Equal(t, types.ModifierShift, s.Modifier())

	require.NoError(t, s.SetData(map[string]interface{}{
		"modifier": "CTRL",
		"sites": []interface{}{
			map[string]interface{}{"host": "GitHub.com", "behavior": "require_modifier"},
			map[string]interface{}{"host": "https://bad.example", "behavior": "disabled"},
			map[string]interface{}{"host": "maps.example.org", "behavior": "DISABLED"},
			map[string]interface{}{"host": "news.example.org", "behavior": "whenever"},
			"not a map",
		},
	}))

	assert.Equal(t, types.ModifierCtrl, s.Modifier())
	assert.Equal(t, []policy.SitePolicy{
		{Host: "github.com", Behavior: policy.BehaviorRequireModifier},
		{Host: "maps.example.org", Behavior: policy.BehaviorDisabled},
		{Host: "news.example.org", Behavior: policy.BehaviorNormal},
	}, s.Sites())

	assert.Error(t, s.SetData(map[string]interface{}{"sites": map[string]interface{}{}}))
	assert.Len(t, s.Sites(), 3)

	require.NoError(t, s.SetSite("Example.com", policy.BehaviorDisabled))
	require.NoError(t, s.SetSite("github.com", policy.BehaviorNormal))
	assert.Error(t, s.SetSite("https://x.test", policy.BehaviorDisabled))
	assert.Error(t, s.SetSite("x.test", "sometimes"))
	assert.Len(t, s.Sites(), 4)
	assert.Equal(t, policy.BehaviorNormal, policy.Evaluate("github.com", s.Sites()))

	assert.True(t, s.RemoveSite("EXAMPLE.com"))
	assert.False(t, s.RemoveSite("example.com"))

	require.NoError(t, s.SetData(map[string]interface{}{"modifier": "hyper"}))
	assert.Equal(t, types.ModifierShift, s.Modifier())

	s.Reset()
	assert.Empty(t, s.Sites())
}

func TestEnablementSection(t *testing.T) {
	s := NewEnablementSection()
	assert.Equal(t, policy.DefaultEnablement(), s.Enablement())

	require.NoError(t, s.SetData(map[string]interface{}{
		"enabled":     false,
		"mode":        "Whitelist",
		"domain_list": []interface{}{"Example.com", "example.com", "https://x.test", "a.test/path", "", "*.corp.test", 12},
	}))
	en := s.Enablement()
	assert.False(t, en.Enabled)
	assert.Equal(t, policy.ModeWhitelist, en.Mode)
	assert.Equal(t, []string{"example.com", "*.corp.test"}, en.DomainList)

	require.NoError(t, s.SetData(map[string]interface{}{"mode": "greylist", "enabled": "yes please"}))
	en = s.Enablement()
	assert.Equal(t, policy.ModeBlacklist, en.Mode)
	assert.True(t, en.Enabled)

	assert.Error(t, s.SetData(map[string]interface{}{"domain_list": "example.com"}))

	require.NoError(t, s.AddDomain("News.test"))
	require.NoError(t, s.AddDomain("news.test"))
	assert.Error(t, s.AddDomain("http://news.test"))
	assert.Equal(t, []string{"example.com", "*.corp.test", "news.test"}, s.Enablement().DomainList)
	assert.True(t, s.RemoveDomain("example.com"))
	assert.False(t, s.RemoveDomain("example.com"))

	s.SetEnabled(false)
	assert.False(t, s.Enablement().Enabled)

	s.Reset()
	assert.Equal(t, policy.DefaultEnablement(), s.Enablement())
}

func TestTrailSection(t *testing.T) {
	s := NewTrailSection()
	assert.Equal(t, gesture.DefaultTrailStyle(), s.Style())

	require.NoError(t, s.SetData(map[string]interface{}{
		"enabled":    false,
		"color":      "#00FF00",
		"width":      50.0,
		"max_points": 3,
	}))
	style := s.Style()
	assert.False(t, style.Enabled)
	assert.Equal(t, "#00FF00", style.Color)
	assert.Equal(t, gesture.MaxTrailWidth, style.Width)
	assert.Equal(t, gesture.MinTrailMaxPoints, style.MaxPoints)

	require.NoError(t, s.SetData(map[string]interface{}{"width": "thick", "color": 5}))
	style = s.Style()
	assert.Equal(t, gesture.DefaultTrailWidth, style.Width)
	assert.Equal(t, gesture.DefaultTrailColor, style.Color)

	other := NewTrailSection()
	require.NoError(t, other.SetData(s.Data()))
	assert.Equal(t, s.Style(), other.Style())
}
