// Package logging configures the process-wide slog logger. Console output
// goes through the charmbracelet handler; a file destination can be selected
// with an output spec (see the writers subpackage).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aura400/aurasetup/internal/logging/writers"
	"github.com/charmbracelet/log"
)

// SetupHandlerText configures a text slog handler with the provided writer and log level
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(logLevel) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "info":
		lvl = log.InfoLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// SetupHandlerJSON configures a JSON slog handler with the provided writer
// and log level, used for file destinations
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "trace", "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: strings.EqualFold(logLevel, "trace"),
	})
}

// SetupLogger configures the default logger based on provided log level
func SetupLogger(logLevel string) {
	handler := SetupHandlerText(logLevel, nil)
	slog.SetDefault(slog.New(handler))
}

// SetupLoggerWithOutput configures the default logger with a destination
// spec: "stderr", "stdout", or a file path ("file://..." or a plain path).
// File destinations get the JSON handler so the log survives as a record of
// the provisioning run; terminals get the text handler.
func SetupLoggerWithOutput(logLevel, output string) error {
	w, err := writers.CreateWriter(output)
	if err != nil {
		return err
	}

	var handler slog.Handler
	if w == os.Stdout || w == os.Stderr {
		handler = SetupHandlerText(logLevel, w)
	} else {
		handler = SetupHandlerJSON(logLevel, w)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
