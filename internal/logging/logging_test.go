package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"  WARN ": LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseLevel(input), "input %q", input)
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestWriterForwardsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	w := NewWriter(logger)

	n, err := w.Write([]byte("End Program\n"))
	assert.NoError(t, err)
	assert.Equal(t, len("End Program\n"), n)
	assert.Contains(t, buf.String(), "End Program")

	buf.Reset()
	_, err = w.Write([]byte("\n"))
	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestWriterNilLogger(t *testing.T) {
	w := NewWriter(nil)
	n, err := w.Write([]byte("ignored"))
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
}
