package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettingsFrom(t *testing.T) {
	t.Run("missing file returns empty settings", func(t *testing.T) {
		settings, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "settings.json"))
		require.NoError(t, err)
		assert.Nil(t, settings.PageSize)
		assert.Empty(t, settings.BaseURL)
	})

	t.Run("json", func(t *testing.T) {
		path := writeSettings(t, "settings.json", `{
			"base_url": "http://gw:9000/api/v1",
			"page_size": 50,
			"auto_refresh": false,
			"refresh_interval_seconds": 10
		}`)

		settings, err := LoadSettingsFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "http://gw:9000/api/v1", settings.BaseURL)
		require.NotNil(t, settings.PageSize)
		assert.Equal(t, 50, *settings.PageSize)
		require.NotNil(t, settings.AutoRefresh)
		assert.False(t, *settings.AutoRefresh)
		require.NotNil(t, settings.RefreshIntervalSeconds)
		assert.Equal(t, 10, *settings.RefreshIntervalSeconds)
		assert.Nil(t, settings.Retries)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeSettings(t, "settings.yaml", "page_size: 20\nmax_notifications: 3\n")

		settings, err := LoadSettingsFrom(path)
		require.NoError(t, err)
		require.NotNil(t, settings.PageSize)
		assert.Equal(t, 20, *settings.PageSize)
		require.NotNil(t, settings.MaxNotifications)
		assert.Equal(t, 3, *settings.MaxNotifications)
	})
}

func TestSettingsValidate(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name     string
		settings Settings
		wantErr  string
	}{
		{"empty", Settings{}, ""},
		{"valid", Settings{PageSize: intPtr(100), RefreshIntervalSeconds: intPtr(60)}, ""},
		{"bad page size", Settings{PageSize: intPtr(25)}, "page_size"},
		{"bad interval", Settings{RefreshIntervalSeconds: intPtr(15)}, "refresh_interval_seconds"},
		{"bad timeout", Settings{RequestTimeoutSeconds: intPtr(0)}, "request_timeout_seconds"},
		{"negative retries", Settings{Retries: intPtr(-1)}, "retries"},
		{"bad notification duration", Settings{NotificationDurationMs: intPtr(0)}, "notification_duration_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetSettingsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("LUMINA_HOME", home)

	assert.Equal(t, filepath.Join(home, "settings.json"), GetSettingsPath())

	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.toml"), []byte("page_size = 10\n"), 0644))
	assert.Equal(t, filepath.Join(home, "settings.toml"), GetSettingsPath())
	assert.Equal(t, filepath.Join(home, "state.db"), GetDBPath())
}
