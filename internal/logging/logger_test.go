package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("Error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "WARN")

	logger.Info("[Test] hidden")
	logger.Warn("[Test] shown", slog.String("symbol", "AAPL"))

	out := buf.String()
	assert.Equal(t, false, strings.Contains(out, "hidden"))
	assert.Equal(t, true, strings.Contains(out, "shown"))
	assert.Equal(t, true, strings.Contains(out, "AAPL"))
}
