package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmmndr/movement_detector/internal/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vidsource.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, logger.LevelInfo, cfg.Level())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
video_dir: clips
extensions: [".mp4"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, logger.LevelDebug, cfg.Level())
	require.Equal(t, "clips", cfg.VideoDir)
	require.Equal(t, []string{".mp4"}, cfg.Extensions)
	require.Equal(t, "movement_detector", cfg.ProjectMarker)
	require.Equal(t, ".", cfg.OutputDir)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
log_level: loud
extensions: ["mp4"]
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "log_level")
	require.ErrorContains(t, err, "must start with a dot")
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: [unterminated"))
	require.ErrorContains(t, err, "parse config")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
