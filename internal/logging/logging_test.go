package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "locale", "zh_CN")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"locale":"zh_CN"`)

	buf.Reset()
	logger, err = New(&buf, "DEBUG", "")
	require.NoError(t, err)
	logger.Debug("page", "route", "/")
	assert.Contains(t, buf.String(), "route=/")

	_, err = New(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = New(&buf, "info", "xml")
	assert.Error(t, err)
}
