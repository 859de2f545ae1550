package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Cached(t *testing.T) {
	a := Logger("test-cache")
	b := Logger("test-cache")
	assert.Same(t, a, b)
}

func TestLogger_SubsystemAttr(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(new(bytes.Buffer)) })

	log := Logger("test-attr")
	SetLevel("test-attr", slog.LevelInfo)
	log.Info("hello", "k", "v")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "subsystem=test-attr")
	assert.Contains(t, out, "k=v")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(new(bytes.Buffer)) })

	log := Logger("test-level")

	SetLevel("test-level", slog.LevelWarn)
	log.Info("filtered")
	assert.Empty(t, buf.String())

	SetLevel("test-level", slog.LevelDebug)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestParseLevelConfig(t *testing.T) {
	cfg := &config{
		defaultLevel:    slog.LevelInfo,
		subsystemLevels: make(map[string]slog.Level),
	}
	parseLevelConfig(cfg, "session=debug, node=warn ,error")

	assert.Equal(t, slog.LevelDebug, cfg.levelFor("session"))
	assert.Equal(t, slog.LevelWarn, cfg.levelFor("node"))
	assert.Equal(t, slog.LevelError, cfg.levelFor("other"))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	// 不应 panic，也不应输出
	log.Info("dropped", "k", 1)
	log.Error("dropped too")
}
