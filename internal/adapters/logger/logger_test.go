package logger_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vend/internal/adapters/logger"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	originalStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = originalStderr }()

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	require.NoError(t, w.Close())
	output := <-done
	require.NoError(t, r.Close())
	return output
}

func TestNew_WritesToStderr(t *testing.T) {
	output := captureStderr(t, func() {
		lg := logger.New()
		lg.Info("resolved 3 dependencies")
	})

	assert.Contains(t, output, "resolved 3 dependencies")
	assert.Contains(t, output, "INFO")
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWriter(&buf)

	lg.Info("some message")
	lg.Warn("some warning")
	lg.Error(os.ErrPermission)

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"some message\"")
	assert.Contains(t, out, "level=WARN msg=\"some warning\"")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWriter(&buf)
	lg.SetLevel(slog.LevelWarn)

	lg.Info("hidden")
	lg.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWriter(&first)
	lg.SetLevel(slog.LevelWarn)

	lg.SetOutput(&second)
	lg.Info("hidden")
	lg.Warn("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
	assert.NotContains(t, second.String(), "hidden")
}
