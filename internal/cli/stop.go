package cli

import (
	"github.com/spf13/cobra"
)

// NewStopCommand creates the "stop" cobra command.
func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop and remove the project's containers",
		Long: `Tear down all services of the compose project. Running it again on a
stopped project is harmless; the result follows compose's own exit status.

Examples:
  docker-manager stop`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireRuntime(a.probe); err != nil {
				return err
			}
			return operationError(a.controller.Stop(), "stop")
		},
	}
}

// NewRestartCommand creates the "restart" cobra command.
func NewRestartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Stop, then start the project's containers",
		Long: `Tear down the compose project and bring it up again. If the tear-down
fails, or the command is interrupted while tearing down, the start is not
attempted.

Examples:
  docker-manager restart`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireRuntime(a.probe); err != nil {
				return err
			}
			return operationError(a.controller.Restart(cmd.Context()), "restart")
		},
	}
}
