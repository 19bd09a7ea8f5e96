package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) Event {
	t.Helper()
	var e Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	return e
}

func TestLoggerInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("stream", &buf)

	log.Info("process_start", map[string]interface{}{"events": 3})

	e := decodeLine(t, &buf)
	assert.Equal(t, LevelInfo, e.Level)
	assert.Equal(t, "stream", e.Component)
	assert.Equal(t, "process_start", e.Event)
	assert.EqualValues(t, 3, e.Extra["events"])
}

func TestLoggerErrorIncludesError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("client", &buf)

	log.Error("stream_failed", nil, errors.New("connection reset"))

	e := decodeLine(t, &buf)
	assert.Equal(t, LevelError, e.Level)
	assert.Equal(t, "connection reset", e.Error)
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("session", &buf).WithSession("sess-1").WithRun("run-1")

	log.Debug("append", nil)

	e := decodeLine(t, &buf)
	assert.Equal(t, "sess-1", e.Session)
	assert.Equal(t, "run-1", e.Run)
}
