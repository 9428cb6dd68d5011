package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"trace", logrus.TraceLevel},
	}

	for _, tt := range tests {
		log, err := New(Config{Level: tt.level, Format: FormatText, Output: &bytes.Buffer{}})
		require.NoError(t, err, tt.level)
		assert.Equal(t, tt.want, log.GetLevel(), tt.level)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestAutoFormatOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: FormatAuto, Output: &buf})
	require.NoError(t, err)

	log.WithField("n", 3).Info("hello")

	line := buf.String()
	require.True(t, gjson.Valid(line), "non-terminal output should be JSON: %q", line)
	assert.Equal(t, "hello", gjson.Get(line, "msg").String())
	assert.Equal(t, int64(3), gjson.Get(line, "n").Int())
	assert.False(t, IsTerminal(&buf))
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Format: FormatText, Output: &buf})
	require.NoError(t, err)

	WithComponent(log, "script").Debug("loaded")
	out := buf.String()
	assert.Contains(t, out, "component=script")
	assert.Contains(t, out, "msg=loaded")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "warn", Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", gjson.Get(lines[0], "msg").String())
}

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	entry, id := WithRun(log)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	entry.Info("run")
	assert.Equal(t, id, gjson.Get(buf.String(), "run_id").String())

	_, other := WithRun(log)
	assert.NotEqual(t, id, other)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing")
	assert.Equal(t, logrus.PanicLevel, log.GetLevel())
}
