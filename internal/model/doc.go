// Package model defines the domain types and value objects for the
// docker-manager CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (ExecutionResult, ProjectContext, MenuChoice) are process-level
// values: they are created during a session and never persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
