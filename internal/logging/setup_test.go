package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aura400/aurasetup/internal/testutil"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandlerText(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{"trace", "trace", log.DebugLevel},
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning_alias", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"uppercase", "INFO", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &testutil.ThreadSafeBuffer{}
			handler := SetupHandlerText(tt.logLevel, buf)
			require.NotNil(t, handler)

			charmLogger, ok := handler.(*log.Logger)
			require.True(t, ok)
			assert.Equal(t, tt.expectedLevel, charmLogger.GetLevel())
		})
	}

	t.Run("writes_to_provided_writer", func(t *testing.T) {
		buf := &testutil.ThreadSafeBuffer{}
		logger := slog.New(SetupHandlerText("info", buf))

		logger.Info("provisioning started", "sandbox", ".venv")
		assert.Contains(t, buf.String(), "provisioning started")
		assert.Contains(t, buf.String(), ".venv")
	})

	t.Run("level_filters", func(t *testing.T) {
		buf := &testutil.ThreadSafeBuffer{}
		logger := slog.New(SetupHandlerText("warn", buf))

		logger.Info("hidden")
		logger.Warn("visible")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestSetupHandlerJSON(t *testing.T) {
	t.Run("emits_json", func(t *testing.T) {
		buf := &testutil.ThreadSafeBuffer{}
		logger := slog.New(SetupHandlerJSON("info", buf))

		logger.Info("config ready", "path", ".env")
		assert.Contains(t, buf.String(), `"msg":"config ready"`)
		assert.Contains(t, buf.String(), `"path":".env"`)
	})

	t.Run("debug_level_enabled", func(t *testing.T) {
		buf := &testutil.ThreadSafeBuffer{}
		handler := SetupHandlerJSON("debug", buf)
		assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("default_level_is_info", func(t *testing.T) {
		buf := &testutil.ThreadSafeBuffer{}
		handler := SetupHandlerJSON("bogus", buf)
		assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
		assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	})
}

func TestSetupLoggerWithOutput(t *testing.T) {
	// slog.SetDefault is process-global; restore it after the test
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Run("file_destination", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "setup.log")
		require.NoError(t, SetupLoggerWithOutput("info", path))

		slog.Info("sandbox created")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(content), "sandbox created"))
	})

	t.Run("stderr_destination", func(t *testing.T) {
		assert.NoError(t, SetupLoggerWithOutput("info", "stderr"))
	})
}
