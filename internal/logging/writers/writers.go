// Package writers resolves log destination specs into io.Writers.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CreateWriter creates an io.Writer based on the output specification.
// Supported formats:
//   - "stdout" or "" - writes to os.Stdout
//   - "stderr" - writes to os.Stderr
//   - "file:///path/to/file" - writes to file (creates directories if needed)
//   - "/path/to/file" or "relative/path" - writes to file
func CreateWriter(output string) (io.Writer, error) {
	switch {
	case output == "" || output == "stdout":
		return os.Stdout, nil
	case output == "stderr":
		return os.Stderr, nil
	case strings.HasPrefix(output, "file://"):
		return createFileWriter(strings.TrimPrefix(output, "file://"))
	default:
		return createFileWriter(output)
	}
}

// createFileWriter opens the file for appending, creating parent directories
// as needed. The file stays open for the process lifetime.
func createFileWriter(path string) (io.Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("empty log file path")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
