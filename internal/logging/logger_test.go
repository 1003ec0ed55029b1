package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCategoriesAreNamedChildren(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Rewrite("replaced %s", "bg-white/5")
	TruncateDebug("kept %d lines", 1002)
	Tactile("writing %s", "a.jsx")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "rewrite", entries[0].LoggerName)
	assert.Equal(t, "replaced bg-white/5", entries[0].Message)
	assert.Equal(t, "truncate", entries[1].LoggerName)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "tactile", entries[2].LoggerName)
}

func TestSetLoggerResetsCategoryCache(t *testing.T) {
	first, firstLogs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(first))
	Boot("one")

	second, secondLogs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(second))
	t.Cleanup(func() { SetLogger(nil) })
	Boot("two")

	assert.Equal(t, 1, firstLogs.Len())
	assert.Equal(t, 1, secondLogs.Len())
	assert.Equal(t, "two", secondLogs.All()[0].Message)
}

func TestBuild(t *testing.T) {
	t.Run("defaults to info console", func(t *testing.T) {
		l, err := Build(Config{}, false)
		require.NoError(t, err)
		assert.Equal(t, zapcore.InfoLevel, l.Level())
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		l, err := Build(Config{Level: "error"}, true)
		require.NoError(t, err)
		assert.Equal(t, zapcore.DebugLevel, l.Level())
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := Build(Config{Level: "loud"}, false)
		assert.Error(t, err)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := Build(Config{Format: "xml"}, false)
		assert.Error(t, err)
	})
}

func TestInitializeWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixup.log")
	require.NoError(t, Initialize(Config{Level: "info", Format: "json", File: path}, false))
	t.Cleanup(func() { SetLogger(nil) })

	Truncate("truncating %s", "SettingsPage.jsx")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"logger":"truncate"`), string(data))
	assert.Contains(t, string(data), "truncating SettingsPage.jsx")
}

func TestTimerStopWithThreshold(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	timer := StartTimer(CategoryTactile, "File read")
	time.Sleep(2 * time.Millisecond)
	timer.StopWithThreshold(time.Nanosecond)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "File read slow", logs.All()[0].Message)
}
