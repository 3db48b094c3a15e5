package utils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, false)
	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown", "error", errors.New("boom"))
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "err=boom")

	buf.Reset()
	NewLoggerTo(&buf, true).Info("read mesh nodes", "nodes", 4)
	assert.Contains(t, buf.String(), "nodes=4")

	NewNopLogger().Error("discarded")
}
