package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestVerboseOutput(t *testing.T) {
	buf := capture(t, true)

	Section("Recommendation")
	Debug("query %q", "seo")
	Info("tags: %s", "adversarial,seo")

	assert.Equal(t,
		"\n=== Recommendation ===\n[DEBUG] query \"seo\"\n[INFO] tags: adversarial,seo\n",
		buf.String())
}

func TestQuietSuppressesDebugAndInfo(t *testing.T) {
	buf := capture(t, false)

	Section("Recommendation")
	Debug("hidden")
	Info("hidden")

	assert.Empty(t, buf.String())
}

func TestWarnAlwaysPrints(t *testing.T) {
	buf := capture(t, false)

	Warn("skipping row %d", 7)

	assert.Equal(t, "[WARN] skipping row 7\n", buf.String())
}

func TestTimed(t *testing.T) {
	buf := capture(t, true)

	Timed("load catalogs")()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[DEBUG] load catalogs took "), out)
}
