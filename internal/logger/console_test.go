package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelWarn, ParseLevel("warn"))
	require.Equal(t, LevelQuiet, ParseLevel("quiet"))
	require.Equal(t, LevelInfo, ParseLevel("bogus"))
	require.Equal(t, "error", LevelError.String())
}

func TestConsoleFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelWarn, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden %d", 2)
	log.Warn("shown %d", 3)
	log.Error("shown %d", 4)

	require.Equal(t, "shown 3\nshown 4\n", buf.String())
}

func TestConsoleComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelDebug, &buf).WithComponent("video")

	log.Info("Accumulated %d frames", 150)

	require.Equal(t, "[video] Accumulated 150 frames\n", buf.String())
}

func TestQuietLevelDropsErrors(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelQuiet, &buf)

	log.Error("boom")

	require.Empty(t, buf.String())
}
