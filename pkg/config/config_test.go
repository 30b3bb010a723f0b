package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/strokes/pkg/gesture"
	"github.com/entrhq/strokes/pkg/policy"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	globalMu.Lock()
	globalManager = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		globalMu.Lock()
		globalManager = nil
		globalMu.Unlock()
	})
}

func TestInitialize(t *testing.T) {
	t.Run("registers every section", func(t *testing.T) {
		resetGlobal(t)
		require.NoError(t, Initialize(filepath.Join(t.TempDir(), "config.json")))
		require.True(t, IsInitialized())

		var ids []string
		for _, s := range Global().GetSections() {
			ids = append(ids, s.ID())
		}
		assert.Equal(t, []string{
			SectionIDRecognition,
			SectionIDGestures,
			SectionIDSites,
			SectionIDEnablement,
			SectionIDTrail,
		}, ids)

		assert.NotNil(t, GetRecognition())
		assert.NotNil(t, GetGestures())
		assert.NotNil(t, GetSites())
		assert.NotNil(t, GetEnablement())
		assert.NotNil(t, GetTrail())
	})

	t.Run("persists across restarts", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, Initialize(configPath))

		require.NoError(t, GetSites().SetSite("github.com", policy.BehaviorRequireModifier))
		require.NoError(t, GetEnablement().AddDomain("example.com"))
		require.NoError(t, Global().SaveAll())

		resetGlobal(t)
		require.NoError(t, Initialize(configPath))
		assert.Equal(t, []policy.SitePolicy{{Host: "github.com", Behavior: policy.BehaviorRequireModifier}}, GetSites().Sites())
		assert.Equal(t, []string{"example.com"}, GetEnablement().Enablement().DomainList)
	})

	t.Run("bad section still installs the manager", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.json")
		content := `{"version":"1.0","sections":{"sites":{"sites":"github.com"},"trail":{"width":9}}}`
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

		err := Initialize(configPath)
		require.Error(t, err)
		require.True(t, IsInitialized())
		assert.Empty(t, GetSites().Sites())
		assert.Equal(t, 9, GetTrail().Style().Width)
	})

	t.Run("truncated file falls back to defaults", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"version":"1.0","sections":{"recognition":{"min_segment_px":`), 0600))

		assert.Error(t, Initialize(configPath))
		require.True(t, IsInitialized())
		assert.Equal(t, gesture.DefaultRecognitionConfig(), GetRecognition().Recognition())
		assert.Equal(t, gesture.DefaultActionMap(), GetGestures().Actions())
		assert.Empty(t, GetSites().Sites())
	})
}

func TestGlobal_PanicsWhenUninitialized(t *testing.T) {
	resetGlobal(t)
	assert.Panics(t, func() { Global() })
	assert.Nil(t, GetRecognition())
	assert.Nil(t, GetTrail())
}
