package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"DEBUG":   DEBUG,
		"debug":   DEBUG,
		"INFO":    INFO,
		"warn":    WARN,
		"WARNING": WARN,
		"ERROR":   ERROR,
		"":        INFO,
		"verbose": INFO,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, WARN)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("shown warn")
	l.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "ERROR")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestFieldsAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, DEBUG).With(F("component", "store"))

	l.Info("Task saved", F("id", "t1"), F("title", "two words"), F("error", errors.New("x=1")))

	out := buf.String()
	assert.Contains(t, out, "logger_test.go:")
	assert.Contains(t, out, "Task saved | component=store id=t1")
	assert.Contains(t, out, `title="two words"`)
	assert.Contains(t, out, `error="x=1"`)
}

func TestGlobalIsNoopWithoutInit(t *testing.T) {
	SetGlobal(nil)
	assert.NotPanics(t, func() {
		Info("nobody listening", F("k", "v"))
		assert.Nil(t, With(F("k", "v")))
		assert.NoError(t, Close())
	})
}

func TestGlobalWrites(t *testing.T) {
	var buf bytes.Buffer
	SetGlobal(NewWriter(&buf, INFO))
	t.Cleanup(func() { SetGlobal(nil) })

	Debug("not shown")
	Warn("disk almost full", F("free", 12))

	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "disk almost full | free=12")
}

func TestRotationBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ironboard.log")
	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 200, MaxBackups: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	for i := 0; i < 20; i++ {
		l.Info("filling the log file with a reasonably long line", F("i", i))
	}
	require.NoError(t, l.Close())

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "first backup should exist")
	_, err = os.Stat(path + ".2")
	assert.NoError(t, err, "second backup should exist")
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err), "backups beyond MaxBackups are dropped")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(400))
}
