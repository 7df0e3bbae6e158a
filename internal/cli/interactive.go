package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/docker-manager/internal/model"
	"github.com/mmr-tortoise/docker-manager/internal/session"
)

// runInteractive runs the menu session on the command's standard streams.
func runInteractive(cmd *cobra.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	s := session.New(session.Config{
		Probe:     a.probe,
		Lifecycle: a.controller,
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		Log:       a.log,
		Pause:     a.cfg.Pause,
		Services:  a.services(),
	})

	if code := s.Run(cmd.Context()); code != model.ExitSuccess {
		// The session has already told the operator what happened.
		return &model.CLIError{Code: code}
	}
	return nil
}
