package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Infof("booking %d created", 42)

	assert.Contains(t, buf.String(), "booking 42 created")
}

func TestInfow(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Infow("HTTP request", "method", "GET", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "HTTP request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "status=200")
}

func TestInfowIgnoresDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Infow("message", "key")

	assert.Contains(t, buf.String(), "message")
	assert.NotContains(t, buf.String(), "key=")
}

func TestErrorw(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)

	Errorw("delivery failed", "booking_id", 7)

	assert.Contains(t, buf.String(), "delivery failed")
	assert.Contains(t, buf.String(), "booking_id=7")
}
