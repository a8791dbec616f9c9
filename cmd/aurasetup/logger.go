package main

import (
	"github.com/aura400/aurasetup/internal/logging"
)

// SetupLogger configures the default logger based on provided log level and destination
func SetupLogger(logLevel, output string) error {
	return logging.SetupLoggerWithOutput(logLevel, output)
}
