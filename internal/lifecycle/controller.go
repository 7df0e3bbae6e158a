// Package lifecycle implements the start, stop, restart, status and logs
// operations of a compose project on top of a Command Runner.
//
// Every operation is attempted exactly once. Output of the underlying
// command is always written to the operator, whether the command succeeded
// or not, and failures are reported through the boolean result rather than
// an error: a failed start or stop never ends the session.
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/docker-manager/internal/runner"
)

// CommandSet supplies the command strings for each operation.
// docker.Commands satisfies it; tests substitute fixed strings so that a
// scripted runner can match on them.
type CommandSet interface {
	Up() string
	Down() string
	Ps() string
	Logs(tail int) string
}

// Controller drives lifecycle operations for one project.
//
// Usage:
//
//	c := lifecycle.NewController(r, commands, os.Stdout, log)
//	if !c.Start() { /* output already shown to the operator */ }
type Controller struct {
	// runner executes every command. No operation bypasses it, so each
	// outcome is an ExecutionResult.
	runner runner.Runner

	// commands maps operations to command strings.
	commands CommandSet

	// out receives operator-facing text: progress lines and the merged
	// command output.
	out io.Writer

	// log receives diagnostics only, never operator output.
	log logrus.FieldLogger
}

// NewController creates a Controller that prints command output to out.
func NewController(r runner.Runner, commands CommandSet, out io.Writer, log logrus.FieldLogger) *Controller {
	return &Controller{runner: r, commands: commands, out: out, log: log}
}

// Start builds and brings up the project's containers in detached mode.
func (c *Controller) Start() bool {
	fmt.Fprintln(c.out, "Starting containers...")
	return c.runAndPrint("start", c.commands.Up())
}

// Stop tears down the project's containers.
func (c *Controller) Stop() bool {
	fmt.Fprintln(c.out, "Stopping containers...")
	return c.runAndPrint("stop", c.commands.Down())
}

// Restart stops and then starts the project. When Stop fails, Start is not
// attempted and Restart reports failure.
//
// ctx carries the operator interrupt. The tear-down itself always runs to
// completion, but an interrupt that arrives while it runs prevents the
// start and Restart reports failure.
func (c *Controller) Restart(ctx context.Context) bool {
	if !c.Stop() {
		c.log.Debug("restart aborted: stop failed")
		return false
	}

	// Check for a pending interrupt between the two steps, so an operator
	// who gave up during the tear-down does not get a fresh build.
	if err := ctx.Err(); err != nil {
		c.log.WithError(err).Debug("restart aborted: interrupted after stop")
		return false
	}

	return c.Start()
}

// Status prints the compose process listing verbatim.
func (c *Controller) Status() {
	c.runAndPrint("status", c.commands.Ps())
}

// Logs prints container logs. A positive tail bounds the number of
// trailing lines per service; zero requests the full history.
func (c *Controller) Logs(tail int) {
	c.runAndPrint("logs", c.commands.Logs(tail))
}

// runAndPrint runs command, writes its output to the operator and returns
// whether it succeeded.
func (c *Controller) runAndPrint(op, command string) bool {
	// Run blocks until the command exits; there is no retry.
	result := c.runner.Run(command)

	c.log.WithFields(logrus.Fields{
		"operation": op,
		"exitCode":  result.ExitCode,
	}).Debug("lifecycle operation finished")

	// Output is shown whatever the exit status, with exactly one trailing
	// newline so the next prompt starts on its own line.
	fmt.Fprintln(c.out, strings.TrimRight(result.Output, "\n"))
	return result.Success()
}
