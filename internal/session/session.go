// Package session implements the interactive menu that drives lifecycle
// operations.
//
// A Session is a small state machine:
//
//	Initializing --probe ok--> AwaitingChoice --choice--> Executing --+
//	     |                          ^  |                              |
//	     | probe failed (1)         |  +--invalid input (reprompt)    |
//	     v                          +---------------------------------+
//	Terminated <-- Exit choice (0) | interrupt (0) | fault (1)
//
// Exactly one choice is processed at a time. The next prompt is shown only
// after the previous command has finished and its output has been printed.
// An interrupt delivered through the context is honored while waiting for
// input, during the pause between iterations, and after an in-flight
// command has completed; a running command is never cut short.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// State is a node of the session state machine.
type State int

const (
	StateInitializing State = iota
	StateAwaitingChoice
	StateExecuting
	StateTerminated
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAwaitingChoice:
		return "awaiting-choice"
	case StateExecuting:
		return "executing"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// DefaultPause is the delay between finishing an operation and showing
// the menu again.
const DefaultPause = time.Second

// Probe reports whether the container daemon is reachable.
type Probe interface {
	IsRuntimeAvailable() bool
}

// Lifecycle is the set of operations the menu dispatches to.
// *lifecycle.Controller satisfies it.
type Lifecycle interface {
	Start() bool
	Stop() bool
	Restart(ctx context.Context) bool
	Status()
	Logs(tail int)
}

// Config holds the collaborators and settings of a Session.
type Config struct {
	Probe     Probe
	Lifecycle Lifecycle
	In        io.Reader
	Out       io.Writer
	Log       logrus.FieldLogger

	// Pause is the delay after each iteration. Zero disables it.
	Pause time.Duration

	// Services are listed in the banner when non-empty.
	Services []string
}

// errInterrupted is returned by readLine when the context is cancelled.
var errInterrupted = errors.New("interrupted")

// line is one result of the background input reader.
type line struct {
	text string
	err  error
}

// Session is one interactive run of the menu.
type Session struct {
	cfg   Config
	state State

	// lines carries input from the reader goroutine. It is unbuffered, so
	// at most one line is read ahead of the prompt that consumes it.
	lines chan line

	// done is closed when Run returns and releases the reader goroutine
	// if it is blocked on sending.
	done chan struct{}
}

// New creates a Session in the Initializing state.
func New(cfg Config) *Session {
	return &Session{
		cfg:   cfg,
		state: StateInitializing,
		lines: make(chan line),
		done:  make(chan struct{}),
	}
}

// State returns the current state of the session.
func (s *Session) State() State {
	return s.state
}

// Run drives the session until it terminates and returns the process exit
// status. Cancelling ctx is treated as an operator interrupt.
func (s *Session) Run(ctx context.Context) model.ExitCode {
	defer close(s.done)

	// Startup gate. An interrupt during the probe usually kills the probe
	// command too, so a failed probe is only reported as an unavailable
	// runtime when no interrupt is pending.
	available := s.cfg.Probe.IsRuntimeAvailable()
	if ctx.Err() != nil {
		return s.interrupted()
	}
	if !available {
		fmt.Fprintln(s.cfg.Out, "Error: Docker is not running!")
		return s.terminate(model.ExitRuntimeUnavailable)
	}

	// Input is read on its own goroutine so that waiting for a line can be
	// abandoned when the context is cancelled.
	go s.readLines()

	if len(s.cfg.Services) > 0 {
		fmt.Fprintf(s.cfg.Out, "Compose services: %s\n", strings.Join(s.cfg.Services, ", "))
	}

	for {
		s.transition(StateAwaitingChoice)
		printMenu(s.cfg.Out)
		fmt.Fprint(s.cfg.Out, "\nEnter your choice (1-6): ")

		raw, err := s.readLine(ctx)
		if err != nil {
			return s.inputFailed(err)
		}

		choice := model.MenuChoice{Action: ParseChoice(raw)}
		switch {
		case !choice.Action.IsValid():
			// Unrecognized input stays in AwaitingChoice.
			fmt.Fprintln(s.cfg.Out, "Invalid choice! Please try again.")

		case choice.Action == model.ActionExit:
			fmt.Fprintln(s.cfg.Out, "Exiting...")
			return s.terminate(model.ExitSuccess)

		default:
			if choice.Action == model.ActionLogs {
				fmt.Fprint(s.cfg.Out, "Enter number of log lines to show (press Enter for all): ")
				rawTail, err := s.readLine(ctx)
				if err != nil {
					return s.inputFailed(err)
				}
				choice.Tail = ParseTail(rawTail)
			}
			if fault := s.execute(ctx, choice); fault != nil {
				fmt.Fprintf(s.cfg.Out, "An error occurred: %v\n", fault)
				return s.terminate(model.ExitGeneralError)
			}
		}

		// An interrupt that arrived while a command ran is honored here,
		// once the command has finished and its output is printed.
		if ctx.Err() != nil || !s.pause(ctx) {
			return s.interrupted()
		}
	}
}

// execute dispatches choice to the lifecycle controller. A panic raised
// by the operation is recovered and returned as a fault.
//
// ctx is passed to operations that consist of several commands, so a
// pending interrupt can stop them between steps.
func (s *Session) execute(ctx context.Context, choice model.MenuChoice) (fault error) {
	s.transition(StateExecuting)
	s.cfg.Log.WithFields(logrus.Fields{
		"action": choice.Action.String(),
		"tail":   choice.Tail,
	}).Debug("dispatching menu choice")

	defer func() {
		if r := recover(); r != nil {
			fault = fmt.Errorf("%v", r)
		}
	}()

	switch choice.Action {
	case model.ActionStart:
		s.cfg.Lifecycle.Start()
	case model.ActionStop:
		s.cfg.Lifecycle.Stop()
	case model.ActionRestart:
		s.cfg.Lifecycle.Restart(ctx)
	case model.ActionStatus:
		s.cfg.Lifecycle.Status()
	case model.ActionLogs:
		tail := 0
		if choice.HasTail() {
			tail = choice.Tail
		}
		s.cfg.Lifecycle.Logs(tail)
	default:
		return fmt.Errorf("unsupported menu action %q", choice.Action)
	}
	return nil
}

// readLines feeds input lines to the session until input ends or the
// session finishes.
func (s *Session) readLines() {
	reader := bufio.NewReader(s.cfg.In)
	for {
		text, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && text != "") {
			s.send(line{err: err})
			return
		}
		if !s.send(line{text: strings.TrimRight(text, "\r\n")}) {
			return
		}
	}
}

// send delivers l unless the session has already finished.
func (s *Session) send(l line) bool {
	select {
	case s.lines <- l:
		return true
	case <-s.done:
		return false
	}
}

// readLine waits for the next input line or an interrupt.
func (s *Session) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", errInterrupted
	case l := <-s.lines:
		return l.text, l.err
	}
}

// pause waits for the configured delay. It returns false when interrupted.
func (s *Session) pause(ctx context.Context) bool {
	if s.cfg.Pause <= 0 {
		return true
	}
	timer := time.NewTimer(s.cfg.Pause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// inputFailed ends the session after a failed read.
func (s *Session) inputFailed(err error) model.ExitCode {
	if errors.Is(err, errInterrupted) {
		return s.interrupted()
	}
	if errors.Is(err, io.EOF) {
		err = errors.New("input closed")
	}
	fmt.Fprintf(s.cfg.Out, "\nAn error occurred: %v\n", err)
	return s.terminate(model.ExitGeneralError)
}

// interrupted ends the session after an operator interrupt.
func (s *Session) interrupted() model.ExitCode {
	fmt.Fprintln(s.cfg.Out, "\nExiting due to user interrupt...")
	return s.terminate(model.ExitSuccess)
}

func (s *Session) terminate(code model.ExitCode) model.ExitCode {
	s.transition(StateTerminated)
	s.cfg.Log.WithField("exitCode", int(code)).Debug("session terminated")
	return code
}

func (s *Session) transition(next State) {
	if s.state == next {
		return
	}
	s.cfg.Log.WithFields(logrus.Fields{"from": s.state.String(), "to": next.String()}).Debug("session state change")
	s.state = next
}

// printMenu writes the menu entries.
func printMenu(w io.Writer) {
	fmt.Fprintln(w, "\nDocker Manager Menu:")
	fmt.Fprintln(w, "1. Start containers")
	fmt.Fprintln(w, "2. Stop containers")
	fmt.Fprintln(w, "3. Restart containers")
	fmt.Fprintln(w, "4. Show container status")
	fmt.Fprintln(w, "5. Show container logs")
	fmt.Fprintln(w, "6. Exit")
}
