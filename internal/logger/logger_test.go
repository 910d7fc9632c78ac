package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Info("members loaded", "count", 3)

	output := buf.String()
	assert.Contains(t, output, "members loaded")
	assert.Contains(t, output, "count")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Error("reservation rejected")

	assert.Contains(t, buf.String(), "reservation rejected")
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Debug("reconcile pass")

	assert.Contains(t, buf.String(), "reconcile pass")
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Infof("migrations %s", "done")

	assert.Contains(t, buf.String(), "done")
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Errorf("payment %s", "rejected")

	assert.Contains(t, buf.String(), "rejected")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	WithError(assert.AnError).Info("create member failed")

	output := buf.String()
	assert.Contains(t, output, "create member failed")
	assert.Contains(t, output, "error")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	WithFields(map[string]interface{}{
		"member_id":  7,
		"session_id": 12,
	}).Info("reservation confirmed")

	output := buf.String()
	assert.Contains(t, output, "reservation confirmed")
	assert.Contains(t, output, "member_id")
	assert.Contains(t, output, "session_id")
}
