package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseGatesDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(false)
	Debugf("hidden %d", 1)
	assert.NotContains(t, buf.String(), "hidden")

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestConfigure_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer Configure("info", "text")

	Configure("warn", "json")
	Infof("not logged")
	Warnf("asset %s failed", "a.css")
	WithField("path", "a.css").Error("read failed")

	out := buf.String()
	assert.NotContains(t, out, "not logged")
	assert.Contains(t, out, `"msg":"asset a.css failed"`)
	assert.Contains(t, out, `"path":"a.css"`)
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer Configure("info", "text")

	Configure("chatty", "text")
	Infof("info visible")
	assert.Contains(t, buf.String(), "info visible")
}
