// Package runner executes shell commands inside the project directory and
// captures their merged output.
//
// The runner never reports a Go error to its caller. A command that exits
// non-zero yields its own exit status, and a command that cannot be started
// at all (missing shell, missing directory, permission denied) yields a
// synthetic result with exit status 1 and a diagnostic message. Callers can
// therefore test every outcome with ExecutionResult.Success alone.
package runner

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// Runner executes a single command and returns its outcome.
type Runner interface {
	Run(command string) model.ExecutionResult
}

// ShellRunner runs commands through the platform shell in a fixed
// working directory.
type ShellRunner struct {
	// dir is the working directory of every command, taken from the
	// ProjectContext and never changed afterwards.
	dir string
	log logrus.FieldLogger

	// shell and prefix form the interpreter invocation: "sh -c" on Unix,
	// "cmd /C" on Windows. The command text is appended as one argument.
	shell  string
	prefix []string
}

// New creates a ShellRunner rooted at the project's working directory.
func New(project model.ProjectContext, log logrus.FieldLogger) *ShellRunner {
	shell, prefix := "sh", []string{"-c"}
	if runtime.GOOS == "windows" {
		shell, prefix = "cmd", []string{"/C"}
	}
	return &ShellRunner{
		dir:    project.WorkingDirectory(),
		log:    log,
		shell:  shell,
		prefix: prefix,
	}
}

// Run executes command and blocks until it exits. Standard output and
// standard error share one buffer, so their interleaving is preserved as
// far as the child process flushes them.
//
// The command is not bound to a context: once issued it runs to
// completion, and an operator interrupt is handled by the caller after Run
// returns.
func (r *ShellRunner) Run(command string) model.ExecutionResult {
	args := append(append([]string{}, r.prefix...), command)
	cmd := exec.Command(r.shell, args...)
	cmd.Dir = r.dir

	r.log.WithFields(logrus.Fields{"command": command, "dir": r.dir}).Debug("running command")

	// CombinedOutput attaches one buffer to both stdout and stderr.
	output, err := cmd.CombinedOutput()
	result := classify(string(output), err)

	r.log.WithFields(logrus.Fields{"command": command, "exitCode": result.ExitCode}).Debug("command finished")
	return result
}

// classify turns the raw outcome of exec into an ExecutionResult.
func classify(output string, err error) model.ExecutionResult {
	if err == nil {
		return model.ExecutionResult{ExitCode: 0, Output: output}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		// ExitCode is -1 when the process was terminated by a signal.
		if code <= 0 {
			code = 1
		}
		return model.ExecutionResult{ExitCode: code, Output: output}
	}

	diagnostic := fmt.Sprintf("failed to execute command: %v", err)
	if strings.TrimSpace(output) != "" {
		diagnostic = output + "\n" + diagnostic
	}
	return model.ExecutionResult{ExitCode: 1, Output: diagnostic}
}
