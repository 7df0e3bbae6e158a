package cli

import (
	"github.com/spf13/cobra"
)

// NewStartCommand creates the "start" cobra command.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Build and start the project's containers",
		Long: `Build images and bring up all services of the compose project in
detached mode. Exits with status 1 if Docker is not running or compose
reports a failure.

Examples:
  docker-manager start
  docker-manager start --dir ./stack -f compose.prod.yml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireRuntime(a.probe); err != nil {
				return err
			}
			return operationError(a.controller.Start(), "start")
		},
	}
}
