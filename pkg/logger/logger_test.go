package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentLoggerFormatsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	log := WithComponent("scheduler")
	log.Info("session started", "target", "msg-1", "events", 12)

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "[scheduler]")
	assert.Contains(t, out, "session started")
	assert.Contains(t, out, "target=msg-1")
	assert.Contains(t, out, "events=12")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	mu.Lock()
	defaultLogger.level = LevelWarn
	mu.Unlock()
	defer func() {
		mu.Lock()
		defaultLogger.level = LevelDebug
		mu.Unlock()
	}()

	Debug("hidden")
	Info("hidden too")
	Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, parseLevel("debug"))
	assert.Equal(t, LevelWarn, parseLevel("WARNING"))
	assert.Equal(t, LevelInfo, parseLevel("bogus"))
}
