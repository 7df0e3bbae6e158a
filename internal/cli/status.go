package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the compose process listing",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireRuntime(a.probe); err != nil {
				return err
			}
			a.controller.Status()
			return nil
		},
	}
}

// NewLogsCommand creates the "logs" cobra command.
func NewLogsCommand() *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show container logs",
		Long: `Print the logs of all services. With --tail, only the last N lines
of each service are shown; without it, the full history is printed.

Examples:
  docker-manager logs
  docker-manager logs --tail 50`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if tail < 0 {
				return fmt.Errorf("--tail must not be negative, got %d", tail)
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireRuntime(a.probe); err != nil {
				return err
			}
			a.controller.Logs(tail)
			return nil
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 0, "Number of trailing lines per service (0 for all)")
	return cmd
}
