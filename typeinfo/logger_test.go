package typeinfo

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("debug", "k", "v")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok)
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.logger)
	})

	t.Run("levels and attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("debug message", "method", "Get")
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "debug message")
		assert.Contains(t, out, "method=Get")
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "level=ERROR")
	})

	t.Run("With prepends attributes", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))
		adapter.With("controller", "OrderController").Info("built")
		assert.Contains(t, buf.String(), "controller=OrderController")
	})
}

func TestOrNop(t *testing.T) {
	_, ok := OrNop(nil).(NopLogger)
	assert.True(t, ok)

	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, OrNop(adapter))
}
