package model

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecutionResult_Success verifies that only exit status 0 counts as success.
func TestExecutionResult_Success(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{127, false},
	}

	for _, tt := range tests {
		r := ExecutionResult{ExitCode: tt.code}
		assert.Equal(t, tt.want, r.Success(), "exit code %d", tt.code)
	}
}

// TestNewProjectContext_ResolvesRelativePaths verifies that descriptor and
// env file paths are resolved against the project directory.
func TestNewProjectContext_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()

	ctx, err := NewProjectContext(dir, "docker-compose.yml", ".env")
	require.NoError(t, err)

	assert.Equal(t, dir, ctx.WorkingDirectory())
	assert.Equal(t, filepath.Join(dir, "docker-compose.yml"), ctx.ComposeDescriptorPath())
	assert.Equal(t, filepath.Join(dir, ".env"), ctx.EnvFilePath())
}

// TestNewProjectContext_KeepsAbsolutePaths verifies that absolute paths
// are not re-rooted under the project directory.
func TestNewProjectContext_KeepsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	composeFile := filepath.Join(other, "compose.yaml")

	ctx, err := NewProjectContext(dir, composeFile, "")
	require.NoError(t, err)

	assert.Equal(t, composeFile, ctx.ComposeDescriptorPath())
	assert.Empty(t, ctx.EnvFilePath(), "empty env file stays empty")
}

// TestNewProjectContext_RelativeDirectoryBecomesAbsolute verifies that the
// working directory is always stored as an absolute path.
func TestNewProjectContext_RelativeDirectoryBecomesAbsolute(t *testing.T) {
	ctx, err := NewProjectContext(".", "docker-compose.yml", ".env")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(ctx.WorkingDirectory()))
}

// TestNewProjectContext_Errors checks the required fields.
func TestNewProjectContext_Errors(t *testing.T) {
	_, err := NewProjectContext("", "docker-compose.yml", ".env")
	assert.Error(t, err)

	_, err = NewProjectContext(t.TempDir(), "  ", ".env")
	assert.Error(t, err)
}

// TestAction_String verifies the labels used in logs.
func TestAction_String(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionStart, "start"},
		{ActionStop, "stop"},
		{ActionRestart, "restart"},
		{ActionStatus, "status"},
		{ActionLogs, "logs"},
		{ActionExit, "exit"},
		{ActionInvalid, "invalid"},
		{Action(42), "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.String())
		})
	}
}

// TestAction_IsValid checks that only menu entries pass validation.
func TestAction_IsValid(t *testing.T) {
	assert.True(t, ActionStart.IsValid())
	assert.True(t, ActionExit.IsValid())
	assert.False(t, ActionInvalid.IsValid())
	assert.False(t, Action(-1).IsValid())
	assert.False(t, Action(7).IsValid())
}

// TestMenuChoice_HasTail verifies that only positive tails on a logs
// choice count as a bound.
func TestMenuChoice_HasTail(t *testing.T) {
	assert.True(t, MenuChoice{Action: ActionLogs, Tail: 50}.HasTail())
	assert.False(t, MenuChoice{Action: ActionLogs}.HasTail())
	assert.False(t, MenuChoice{Action: ActionLogs, Tail: -5}.HasTail())
	assert.False(t, MenuChoice{Action: ActionStatus, Tail: 50}.HasTail())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitRuntimeUnavailable, "Docker is not running!")
		assert.Equal(t, ExitRuntimeUnavailable, err.Code)
		assert.Equal(t, "Docker is not running!", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := WrapCLIError(ExitGeneralError, "start failed", inner)
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := WrapCLIError(ExitGeneralError, "start failed", inner)
		assert.True(t, errors.Is(err, inner))
	})
}

// TestExitCodes pins the process statuses that scripts rely on.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, int(ExitSuccess))
	assert.Equal(t, 1, int(ExitGeneralError))
	assert.Equal(t, 1, int(ExitRuntimeUnavailable))
}
