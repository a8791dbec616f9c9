package provision

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
)

var (
	// ErrRuntimeNotFound indicates no usable Python interpreter was found on the host
	ErrRuntimeNotFound = errors.New("python runtime not found")

	// ErrProvision indicates the sandbox directory could not be reset or created
	ErrProvision = errors.New("sandbox provisioning failed")

	// ErrActivation indicates the sandbox exists but its interpreter is unusable
	ErrActivation = errors.New("sandbox activation failed")

	// ErrInstall indicates the bulk dependency install failed
	ErrInstall = errors.New("dependency installation failed")

	// ErrConfigWrite indicates the application config file could not be written
	ErrConfigWrite = errors.New("config file write failed")

	// ErrPipUpgrade indicates the best-effort pip upgrade failed (non-fatal)
	ErrPipUpgrade = errors.New("package manager upgrade failed")

	// ErrVerification indicates a dependency lookup could not be completed (non-fatal)
	ErrVerification = errors.New("dependency verification incomplete")

	// ErrManifestEmpty indicates the manifest contained no installable entries
	ErrManifestEmpty = errors.New("manifest has no dependencies")
)

// StepError wraps an error that aborted a provisioning workflow at a specific step
type StepError struct {
	ID       uuid.UUID
	Step     string
	Message  string
	Original error
}

// Error implements the error interface
func (se *StepError) Error() string {
	if se.Original != nil {
		return fmt.Sprintf("workflow %s aborted during %s: %s: %v", se.ID, se.Step, se.Message, se.Original)
	}
	return fmt.Sprintf("workflow %s aborted during %s: %s", se.ID, se.Step, se.Message)
}

// Unwrap returns the underlying error
func (se *StepError) Unwrap() error {
	return se.Original
}

// NewStepError creates a new step error
func NewStepError(id uuid.UUID, step, message string, err error) *StepError {
	return &StepError{
		ID:       id,
		Step:     step,
		Message:  message,
		Original: err,
	}
}
