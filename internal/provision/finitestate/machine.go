// Provisioning workflow state machine implementation.
// Tracks the lifecycle of a single environment setup run.
package finitestate

import (
	"log/slog"

	"github.com/robbyt/go-fsm"
)

// Workflow state constants
const (
	StateNew                   = "new"                    // Initial state when a workflow is created
	StateRuntimeChecked        = "runtime_checked"        // Interpreter detected and version recorded
	StateEnvironmentReady      = "environment_ready"      // Sandbox reset and recreated
	StateActivated             = "activated"              // Sandbox interpreter and pip resolved
	StateDependenciesInstalled = "dependencies_installed" // Bulk install completed
	StateConfigReady           = "config_ready"           // Application config present on disk
	StateVerified              = "verified"               // Dependency status computed
	StateRepaired              = "repaired"               // Bulk install re-run after missing entries
	StateDone                  = "done"                   // Workflow finished (terminal state)
	StateAborted               = "aborted"                // Fatal step failed (terminal state)
)

// WorkflowTransitions defines the valid state transitions for a provisioning
// run. The pipeline is linear; aborted is reachable from every fatal step.
var WorkflowTransitions = map[string][]string{
	StateNew:                   {StateRuntimeChecked, StateAborted},
	StateRuntimeChecked:        {StateEnvironmentReady, StateAborted},
	StateEnvironmentReady:      {StateActivated, StateAborted},
	StateActivated:             {StateDependenciesInstalled, StateAborted},
	StateDependenciesInstalled: {StateConfigReady, StateAborted},
	StateConfigReady:           {StateVerified, StateAborted},
	StateVerified:              {StateRepaired, StateDone},
	StateRepaired:              {StateDone},

	StateDone:    {}, // Done is a terminal state
	StateAborted: {}, // Aborted is a terminal state
}

// Machine defines the interface for the finite state machine that tracks a
// provisioning run. This abstraction simplifies testing.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// SetState sets the state of the state machine to the specified state.
	SetState(state string) error

	// GetState returns the current state of the state machine.
	GetState() string
}

// New creates a new workflow state machine starting in the new state
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StateNew, WorkflowTransitions)
}
