package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestQuietWithoutFileIsNop(t *testing.T) {
	l, err := New(Options{Quiet: true})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "crms.log")
	l, err := New(Options{Level: "warn", File: path, Quiet: true})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", zap.String("date", "2024-01-01"))
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dropped")
	assert.Contains(t, string(b), `"msg":"kept"`)
	assert.Contains(t, string(b), `"date":"2024-01-01"`)
}

func TestVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crms.log")
	l, err := New(Options{Level: "error", File: path, Verbose: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
