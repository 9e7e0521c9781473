package logger_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/annocache/internal/adapters/logger"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/zerr"
)

func newBuffered() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	return lg, &buf
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered()
	lg.Debug("hidden")
	lg.Info("some message", "key", "App.User")
	lg.Warn("some warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "some message")
	assert.Contains(t, out, "key=App.User")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "some warning")
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered()
	lg.SetLevel(domain.LogLevelDebug)
	lg.Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	lg.SetLevel(domain.LogLevelError)
	lg.Warn("suppressed")
	assert.Empty(t, buf.String())
}

func TestLogger_SetLevelSurvivesOutputChange(t *testing.T) {
	t.Parallel()

	lg := logger.New()
	lg.SetLevel(domain.LogLevelDebug)

	var buf bytes.Buffer
	lg.SetOutput(&buf)
	lg.Debug("still visible")
	assert.Contains(t, buf.String(), "still visible")
}

func TestLogger_ErrorNil(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered()
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorStandard(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered()
	lg.Error(os.ErrPermission)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_JSON(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered()
	lg.SetJSON(true)
	lg.Info("json message", "outcome", "miss")
	lg.Error(errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"json message"`)
	assert.Contains(t, lines[0], `"outcome":"miss"`)
	assert.Contains(t, lines[1], `"error":"boom"`)
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard error",
			err:  errors.New("simple error"),
			want: "Error: simple error",
		},
		{
			name: "zerr chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			want: "Error: outer layer\n\n  Caused by:\n    -> middle layer\n    -> root cause",
		},
		{
			name: "metadata sorted by key",
			err:  zerr.With(zerr.With(zerr.New("cycle detected"), "cycle", "A -> B -> A"), "at", "B"),
			want: "Error: cycle detected (at=B, cycle=A -> B -> A)",
		},
		{
			name: "multiline message",
			err:  errors.New("first\nsecond"),
			want: "Error: first\n       second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.FormatError(tt.err))
		})
	}
}
