package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ExecutionResult is the outcome of a single external command execution.
// Output holds stdout and stderr merged in the order they were written.
//
// Every command issued by the Command Runner produces exactly one
// ExecutionResult, including commands that could not be started at all.
type ExecutionResult struct {
	// ExitCode is the process exit status. It is 1 when the command
	// could not be executed.
	ExitCode int `json:"exitCode"`

	// Output is the merged stdout+stderr text, or a diagnostic message
	// when the command could not be executed.
	Output string `json:"output"`
}

// Success reports whether the command completed with exit status 0.
func (r ExecutionResult) Success() bool {
	return r.ExitCode == 0
}

// ProjectContext describes the compose project that every command runs
// against. It is resolved once at startup and is read-only afterwards:
// the fields are unexported so that no caller can mutate a context after
// NewProjectContext returns it.
type ProjectContext struct {
	workingDirectory      string
	composeDescriptorPath string
	envFilePath           string
}

// NewProjectContext builds a ProjectContext. Relative descriptor and env
// file paths are resolved against dir, and dir itself is made absolute.
func NewProjectContext(dir, composeFile, envFile string) (ProjectContext, error) {
	if strings.TrimSpace(dir) == "" {
		return ProjectContext{}, fmt.Errorf("project directory must not be empty")
	}
	if strings.TrimSpace(composeFile) == "" {
		return ProjectContext{}, fmt.Errorf("compose descriptor path must not be empty")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ProjectContext{}, fmt.Errorf("failed to resolve project directory %q: %w", dir, err)
	}

	return ProjectContext{
		workingDirectory:      absDir,
		composeDescriptorPath: resolveAgainst(absDir, composeFile),
		envFilePath:           resolveAgainst(absDir, envFile),
	}, nil
}

// resolveAgainst joins a relative path onto base. Absolute and empty
// paths are returned unchanged (apart from cleaning).
func resolveAgainst(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// WorkingDirectory is the directory every command is executed in.
func (p ProjectContext) WorkingDirectory() string {
	return p.workingDirectory
}

// ComposeDescriptorPath is the absolute path of the compose file.
func (p ProjectContext) ComposeDescriptorPath() string {
	return p.composeDescriptorPath
}

// EnvFilePath is the absolute path of the env file. It may be empty.
func (p ProjectContext) EnvFilePath() string {
	return p.envFilePath
}

// Action is the closed set of operations an operator can pick from the menu.
type Action int

const (
	// ActionInvalid marks input that did not match any menu entry.
	ActionInvalid Action = iota
	ActionStart
	ActionStop
	ActionRestart
	ActionStatus
	ActionLogs
	ActionExit
)

// String returns the menu label of the action.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionRestart:
		return "restart"
	case ActionStatus:
		return "status"
	case ActionLogs:
		return "logs"
	case ActionExit:
		return "exit"
	default:
		return "invalid"
	}
}

// IsValid reports whether the action is a recognized menu entry.
func (a Action) IsValid() bool {
	return a >= ActionStart && a <= ActionExit
}

// MenuChoice is a parsed operator selection. Tail is only meaningful for
// ActionLogs: a positive value bounds the number of trailing log lines per
// service, and zero requests the full history.
type MenuChoice struct {
	Action Action
	Tail   int
}

// HasTail reports whether the choice carries a log line bound.
func (c MenuChoice) HasTail() bool {
	return c.Action == ActionLogs && c.Tail > 0
}

// ExitCode defines the process exit statuses of docker-manager.
type ExitCode int

const (
	// ExitSuccess indicates normal termination, including an operator
	// interrupt.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unhandled fault or a failed one-shot
	// operation.
	ExitGeneralError ExitCode = 1

	// ExitRuntimeUnavailable indicates the container daemon was not
	// reachable at startup. It shares status 1 with ExitGeneralError.
	ExitRuntimeUnavailable ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
