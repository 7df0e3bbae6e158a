// Package cli implements the cobra-based CLI for docker-manager.
//
// Running the root command without a subcommand opens the interactive
// menu. The lifecycle operations are also available as one-shot
// subcommands (start, stop, restart, status, logs) for scripts.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/docker-manager/internal/config"
	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput formats errors as JSON on stderr.
	jsonOutput bool

	// verbose enables debug logging to stderr.
	verbose bool

	// configPath is an explicit config file. Empty means the default
	// file in the project directory, if present.
	configPath string

	// flagOptions collects the option flags. Only flags the user actually
	// set are applied (see changedOptions).
	flagOptions config.Options
)

// Version, Commit and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docker-manager",
		Short: "Interactive lifecycle manager for a docker compose project",
		Long: `docker-manager starts, stops, restarts and inspects the containers of a
docker compose project from an interactive menu.

The project directory defaults to the current working directory. Options
can be set by flag, by DOCKER_MANAGER_* environment variables, or in a
.docker-manager.yaml file in the project directory.`,

		// Errors are printed by Execute, in text or JSON.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output errors in JSON format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&configPath, "config", "", "Config file (default <dir>/"+config.DefaultFileName+" if present)")
	flags.StringVar(&flagOptions.Directory, "dir", "", "Project directory (default current directory)")
	flags.StringVarP(&flagOptions.ComposeFile, "file", "f", "", "Compose file, relative to the project directory (default "+config.DefaultComposeFile+")")
	flags.StringVar(&flagOptions.EnvFile, "env-file", "", "Env file, relative to the project directory (default "+config.DefaultEnvFile+")")
	flags.StringVar(&flagOptions.ComposeCommand, "compose-command", "", `Compose invocation (default "docker compose")`)
	flags.StringVar(&flagOptions.Probe, "probe", "", "Daemon availability check: cli or api (default "+config.DefaultProbe+")")
	flags.StringVar(&flagOptions.Pause, "pause", "", "Pause after each menu action (default "+config.DefaultPause+")")

	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewRestartCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewLogsCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// SIGINT and SIGTERM cancel the command's context, which the interactive
// session treats as an operator interrupt.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			// An empty message means the failure was already reported.
			if cliErr.Message != "" {
				printError(cliErr.Message, cliErr.Err)
			}
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	fmt.Fprintln(os.Stderr, formatError(message, underlying, jsonOutput))
}

// formatError renders an error as "Error: ..." text or as a JSON object.
func formatError(message string, underlying error, asJSON bool) string {
	if asJSON {
		detail := map[string]interface{}{"message": message}
		if underlying != nil {
			detail["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(map[string]interface{}{"error": detail}, "", "  ")
		return string(data)
	}
	if underlying != nil {
		return fmt.Sprintf("Error: %s: %v", message, underlying)
	}
	return fmt.Sprintf("Error: %s", message)
}

// newLogger creates the process logger. Debug output is enabled by
// --verbose; otherwise only warnings and errors are shown.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// changedOptions returns the option flags that were explicitly set on cmd.
func changedOptions(cmd *cobra.Command) config.Options {
	var opts config.Options
	set := func(name string, dst *string, value string) {
		if cmd.Flags().Changed(name) {
			*dst = value
		}
	}
	set("dir", &opts.Directory, flagOptions.Directory)
	set("file", &opts.ComposeFile, flagOptions.ComposeFile)
	set("env-file", &opts.EnvFile, flagOptions.EnvFile)
	set("compose-command", &opts.ComposeCommand, flagOptions.ComposeCommand)
	set("probe", &opts.Probe, flagOptions.Probe)
	set("pause", &opts.Pause, flagOptions.Pause)
	return opts
}
