package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/docker-manager/internal/config"
	"github.com/mmr-tortoise/docker-manager/internal/docker"
	"github.com/mmr-tortoise/docker-manager/internal/lifecycle"
	"github.com/mmr-tortoise/docker-manager/internal/model"
	"github.com/mmr-tortoise/docker-manager/internal/runner"
)

// app bundles the components shared by the interactive session and the
// one-shot subcommands. It is built once per invocation.
type app struct {
	cfg        *config.Config
	log        logrus.FieldLogger
	probe      docker.Probe
	controller *lifecycle.Controller
}

// newApp resolves the configuration and wires runner, probe and
// controller together.
func newApp(cmd *cobra.Command) (*app, error) {
	logger := newLogger()

	cfg, err := config.Load(configPath, changedOptions(cmd), os.LookupEnv)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
	}

	log := logger.WithField("project", cfg.Project.WorkingDirectory())
	if cfg.Source != "" {
		log.WithField("config", cfg.Source).Debug("loaded config file")
	}

	r := runner.New(cfg.Project, log)
	commands := docker.NewCommands(cfg.Project, cfg.ComposeCommand)

	probe, err := docker.NewProbe(cfg.Probe, r, commands, log)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		probe:      probe,
		controller: lifecycle.NewController(r, commands, cmd.OutOrStdout(), log),
	}, nil
}

// services returns the compose service names, or nil when the descriptor
// cannot be read.
func (a *app) services() []string {
	services, err := docker.ComposeServices(a.cfg.Project.ComposeDescriptorPath())
	if err != nil {
		a.log.WithError(err).Debug("could not list compose services")
		return nil
	}
	return services
}

// requireRuntime is the startup gate for one-shot subcommands.
func requireRuntime(probe docker.Probe) error {
	if !probe.IsRuntimeAvailable() {
		return model.NewCLIError(model.ExitRuntimeUnavailable, "Docker is not running!")
	}
	return nil
}

// operationError converts a failed lifecycle operation into a CLIError.
func operationError(ok bool, op string) error {
	if ok {
		return nil
	}
	return model.NewCLIError(model.ExitGeneralError, fmt.Sprintf("failed to %s containers", op))
}
