package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewFileStore(t *testing.T) {
	t.Run("creates store with custom path", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")

		store, err := NewFileStore(configPath)
		require.NoError(t, err)

		assert.Equal(t, configPath, store.Path())
		assert.Equal(t, FormatJSON, store.Format())
		assert.False(t, store.IsModified())
	})

	t.Run("creates store with default path when empty", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		store, err := NewFileStore("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".strokes", "config.json"), store.Path())
	})

	t.Run("corrupt file starts empty and is not overwritten", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte("{invalid json}"), 0600))

		store, err := NewFileStore(configPath)
		assert.Error(t, err)
		require.NotNil(t, store)

		all, err := store.GetAll()
		require.NoError(t, err)
		assert.Empty(t, all)

		require.NoError(t, store.SetSection(SectionIDTrail, map[string]interface{}{"width": 4}))
		assert.Error(t, store.Save())
		raw, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, "{invalid json}", string(raw))
	})
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("/etc/strokes.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("strokes.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("strokes.json"))
	assert.Equal(t, FormatJSON, FormatForPath("strokes"))
}

func TestFileStore_LoadJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(map[string]interface{}{
		"version": "1.0",
		"sections": map[string]interface{}{
			"recognition": map[string]interface{}{"min_segment_px": 24},
			"enablement":  map[string]interface{}{"domain_list": []string{"example.com"}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0600))

	store, err := NewFileStore(configPath)
	require.NoError(t, err)

	recognition, err := store.GetSection("recognition")
	require.NoError(t, err)
	assert.Equal(t, 24.0, recognition["min_segment_px"])

	enablement, _ := store.GetSection("enablement")
	assert.Equal(t, []interface{}{"example.com"}, enablement["domain_list"])

	missing, err := store.GetSection("nope")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestFileStore_LoadYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "strokes.yaml")
	content := `version: "1.0"
sections:
  recognition:
    min_segment_px: 24
    link_override: canonical_only
  sites:
    sites:
      - host: github.com
        behavior: require_modifier
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	store, err := NewFileStore(configPath)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, store.Format())

	recognition, _ := store.GetSection("recognition")
	assert.Equal(t, 24, recognition["min_segment_px"])
	assert.Equal(t, "canonical_only", recognition["link_override"])

	sites, _ := store.GetSection("sites")
	list, ok := sites["sites"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, map[string]interface{}{"host": "github.com", "behavior": "require_modifier"}, list[0])
}

func TestFileStore_Save(t *testing.T) {
	t.Run("json round trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
		store, err := NewFileStore(configPath)
		require.NoError(t, err)

		require.NoError(t, store.SetSection("trail", map[string]interface{}{"width": 5}))
		assert.True(t, store.IsModified())
		require.NoError(t, store.Save())
		assert.False(t, store.IsModified())
		assert.NoFileExists(t, configPath+".tmp")

		raw, err := os.ReadFile(configPath)
		require.NoError(t, err)
		var env map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, "1.0", env["version"])

		reloaded, err := NewFileStore(configPath)
		require.NoError(t, err)
		trail, _ := reloaded.GetSection("trail")
		assert.Equal(t, 5.0, trail["width"])
	})

	t.Run("yaml round trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		store, err := NewFileStore(configPath)
		require.NoError(t, err)

		require.NoError(t, store.SetSection("enablement", map[string]interface{}{
			"enabled": false,
			"mode":    "whitelist",
		}))
		require.NoError(t, store.Save())

		raw, err := os.ReadFile(configPath)
		require.NoError(t, err)
		var env envelope
		require.NoError(t, yaml.Unmarshal(raw, &env))
		assert.Equal(t, false, env.Sections["enablement"]["enabled"])
		assert.Equal(t, "whitelist", env.Sections["enablement"]["mode"])
	})
}

func TestFileStore_Copies(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	data := map[string]interface{}{"key": "value"}
	require.NoError(t, store.SetSection("s", data))
	data["key"] = "changed"

	got, _ := store.GetSection("s")
	assert.Equal(t, "value", got["key"])
	got["key"] = "changed again"

	all, _ := store.GetAll()
	assert.Equal(t, "value", all["s"]["key"])

	require.NoError(t, store.SetAll(map[string]map[string]interface{}{"other": {"a": 1}}))
	all, _ = store.GetAll()
	assert.Len(t, all, 1)
	assert.Contains(t, all, "other")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Load())
	require.NoError(t, store.SetSection("trail", map[string]interface{}{"width": 4}))

	got, err := store.GetSection("trail")
	require.NoError(t, err)
	assert.Equal(t, 4, got["width"])

	manager, err := NewDefaultManager(store)
	require.NoError(t, err)
	require.NoError(t, manager.LoadAll())
	assert.Equal(t, 4, manager.Snapshot().Trail.Width)
	require.NoError(t, manager.SaveAll())

	all, _ := store.GetAll()
	assert.Len(t, all, 5)
}
