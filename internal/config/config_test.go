package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading and precedence
func TestLoad(t *testing.T) {
	t.Run("defaults apply without file or env", func(t *testing.T) {
		t.Setenv("ECOM_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "ecommerce_data", cfg.Paths.DataDir)
		assert.Equal(t, "reports", cfg.Paths.ReportsDir)
		assert.Empty(t, cfg.Analysis.WindowStart)
	})

	t.Run("yaml file values are loaded", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `
server:
  port: 9090
logging:
  level: debug
paths:
  data_dir: /srv/data
analysis:
  window_start: "2023-01-01"
  window_end: "2023-02-01"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		t.Setenv("ECOM_CONFIG_FILE", path)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/srv/data", cfg.Paths.DataDir)
		assert.Equal(t, "2023-01-01", cfg.Analysis.WindowStart)
	})

	t.Run("defaults fill fields the file leaves unset", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
		t.Setenv("ECOM_CONFIG_FILE", path)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port, "file value survives the defaulted field")
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
		t.Setenv("ECOM_CONFIG_FILE", path)
		t.Setenv("ECOM_SERVER_PORT", "7070")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("precedence is applied per field", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := "server:\n  port: 9090\nlogging:\n  level: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		t.Setenv("ECOM_CONFIG_FILE", path)
		t.Setenv("ECOM_SERVER_PORT", "7070")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port, "env wins the field it sets")
		assert.Equal(t, "debug", cfg.Logging.Level, "file wins the fields env leaves unset")
	})

	t.Run("invalid logging level fails validation", func(t *testing.T) {
		t.Setenv("ECOM_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
		t.Setenv("ECOM_LOGGING_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})
}

// TestAnalysisWindow tests window parsing from configuration
func TestAnalysisWindow(t *testing.T) {
	t.Run("empty window means all data", func(t *testing.T) {
		window, err := AnalysisConfig{}.Window()
		require.NoError(t, err)
		assert.True(t, window.IsZero())
	})

	t.Run("parses a valid period", func(t *testing.T) {
		cfg := AnalysisConfig{WindowStart: "2023-01-01", WindowEnd: "2023-02-01"}
		window, err := cfg.Window()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), window.Start)
		assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), window.End)
	})

	testCases := []struct {
		name  string
		start string
		end   string
	}{
		{name: "start without end", start: "2023-01-01", end: ""},
		{name: "end without start", start: "", end: "2023-02-01"},
		{name: "malformed start", start: "Jan 1 2023", end: "2023-02-01"},
		{name: "end before start", start: "2023-02-01", end: "2023-01-01"},
		{name: "end equals start", start: "2023-01-01", end: "2023-01-01"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := AnalysisConfig{WindowStart: tc.start, WindowEnd: tc.end}
			_, err := cfg.Window()
			assert.Error(t, err)
		})
	}
}
