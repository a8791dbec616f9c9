package provision

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/uuid/v5"
)

// ConfigDefaults are the settings written into a freshly materialized
// application config file. The key names match what the AURA400 entry points
// read from their environment.
type ConfigDefaults struct {
	Port           int
	Debug          bool
	LogLevel       string
	Backend        string
	Blocks         int
	QubitsPerBlock int
}

// DefaultConfig returns the stock application settings
func DefaultConfig() ConfigDefaults {
	return ConfigDefaults{
		Port:           5000,
		Debug:          true,
		LogLevel:       "INFO",
		Backend:        "aer_simulator",
		Blocks:         100,
		QubitsPerBlock: 4,
	}
}

// MaterializeConfig writes the application config file at path unless one
// already exists. An existing file is never touched, whatever its contents:
// user edits survive re-provisioning. The secret key is a fresh random UUID,
// never derived from a counter or timestamp. Returns true when a new file
// was written.
func MaterializeConfig(path string, defaults ConfigDefaults, logger *slog.Logger) (bool, error) {
	if logger == nil {
		logger = slog.Default().WithGroup("provision.Config")
	}

	if _, err := os.Stat(path); err == nil {
		logger.Info("Config file already exists, leaving it untouched", "path", path)
		return false, nil
	}

	secret, err := uuid.NewV4()
	if err != nil {
		return false, fmt.Errorf("%w: secret key generation: %w", ErrConfigWrite, err)
	}

	content := fmt.Sprintf(
		"SECRET_KEY=%s\nPORT=%d\nDEBUG=%t\nLOG_LEVEL=%s\nQUANTUM_BACKEND=%s\nN_BLOCKS=%d\nQUBITS_PER_BLOCK=%d\n",
		secret.String(),
		defaults.Port,
		defaults.Debug,
		defaults.LogLevel,
		defaults.Backend,
		defaults.Blocks,
		defaults.QubitsPerBlock,
	)

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrConfigWrite, path, err)
	}

	logger.Info("Config file created", "path", path, "port", defaults.Port)
	return true, nil
}
