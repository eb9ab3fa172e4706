package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/andromeda/internal/config"
)

func TestLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := New(&out, &errOut, false, config.ColorNever)

	l.Info("variant %s", "release")
	l.Success("renamed")
	l.Warn("fallback name %q", "app-release")
	l.Debug("hidden")
	l.Error("failed: %d", 3)

	assert.Equal(t, "[INFO] variant release\n[SUCCESS] renamed\n[WARN] fallback name \"app-release\"\n", out.String())
	assert.Equal(t, "[ERROR] failed: 3\n", errOut.String())
}

func TestLogger_DebugWhenVerbose(t *testing.T) {
	var out bytes.Buffer
	l := New(&out, &out, true, config.ColorNever)

	assert.True(t, l.Verbose())
	l.Debug("store %s", "hit")
	assert.Equal(t, "[DEBUG] store hit\n", out.String())
}

func TestLogger_Lifecycle(t *testing.T) {
	var out bytes.Buffer
	l := New(&out, &out, false, config.ColorNever)

	l.Lifecycle("line one\nline two")
	l.Lifecycle("done\n")
	assert.Equal(t, "line one\nline two\ndone\n", out.String())
}

func TestLogger_ColorModes(t *testing.T) {
	var out bytes.Buffer
	New(&out, &out, false, config.ColorAlways).Warn("careful")
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "careful")

	out.Reset()
	New(&out, &out, false, config.ColorNever).Warn("careful")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(&config.Config{Verbose: true, Color: config.ColorNever}, &out, &out)
	assert.NotNil(t, l)
	assert.True(t, l.Verbose())

	l.Debug("shown")
	assert.Equal(t, "[DEBUG] shown\n", out.String())
}

func TestLogger_ThemeFollowsColorMode(t *testing.T) {
	var out bytes.Buffer

	plain := New(&out, &out, false, config.ColorNever)
	assert.NotContains(t, plain.Theme().RenameSummary("/out", "Demo.apk"), "\x1b[")
	assert.NotContains(t, plain.Theme().Banner("1.0.0", ""), "\x1b[")

	forced := New(&out, &out, false, config.ColorAlways)
	assert.Contains(t, forced.Theme().RenameSummary("/out", "Demo.apk"), "\x1b[")
}
