package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/docker-manager/internal/runner"
)

// ProbeMode selects how daemon availability is checked.
type ProbeMode string

const (
	// ProbeCLI runs "docker info" through the Command Runner.
	ProbeCLI ProbeMode = "cli"

	// ProbeAPI pings the Engine API over the Docker socket.
	ProbeAPI ProbeMode = "api"
)

// ParseProbeMode converts a string to a ProbeMode. An empty string
// selects ProbeCLI.
func ParseProbeMode(s string) (ProbeMode, error) {
	switch mode := ProbeMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return ProbeCLI, nil
	case ProbeCLI, ProbeAPI:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid probe mode: %q (valid: cli, api)", s)
	}
}

// Probe reports whether the container daemon is reachable.
type Probe interface {
	IsRuntimeAvailable() bool
}

// CLIProbe checks the daemon by running the info command through a Runner.
type CLIProbe struct {
	runner   runner.Runner
	commands Commands
	log      logrus.FieldLogger
}

// NewCLIProbe creates a CLIProbe.
func NewCLIProbe(r runner.Runner, commands Commands, log logrus.FieldLogger) *CLIProbe {
	return &CLIProbe{runner: r, commands: commands, log: log}
}

// IsRuntimeAvailable returns true iff the info command exits with status 0.
func (p *CLIProbe) IsRuntimeAvailable() bool {
	result := p.runner.Run(p.commands.Info())
	p.log.WithField("exitCode", result.ExitCode).Debug("runtime probe finished")
	return result.Success()
}

// Pinger is satisfied by *Client.
type Pinger interface {
	Ping(ctx context.Context) error
	Close() error
}

// ClientFactory creates a Pinger. NewClient is the production factory.
type ClientFactory func() (Pinger, error)

// APIProbe checks the daemon by pinging the Engine API.
type APIProbe struct {
	newClient ClientFactory
	log       logrus.FieldLogger
}

// NewAPIProbe creates an APIProbe. A nil factory uses NewClient.
func NewAPIProbe(factory ClientFactory, log logrus.FieldLogger) *APIProbe {
	if factory == nil {
		factory = func() (Pinger, error) { return NewClient() }
	}
	return &APIProbe{newClient: factory, log: log}
}

// IsRuntimeAvailable returns true iff a client can be created and the
// daemon answers a ping.
func (p *APIProbe) IsRuntimeAvailable() bool {
	c, err := p.newClient()
	if err != nil {
		p.log.WithError(err).Debug("runtime probe could not create client")
		return false
	}
	defer func() { _ = c.Close() }()

	if err := c.Ping(context.Background()); err != nil {
		p.log.WithError(err).Debug("runtime probe ping failed")
		return false
	}
	return true
}

// NewProbe returns the probe for mode.
func NewProbe(mode ProbeMode, r runner.Runner, commands Commands, log logrus.FieldLogger) (Probe, error) {
	switch mode {
	case ProbeCLI, "":
		return NewCLIProbe(r, commands, log), nil
	case ProbeAPI:
		return NewAPIProbe(nil, log), nil
	default:
		return nil, fmt.Errorf("invalid probe mode: %q", mode)
	}
}
