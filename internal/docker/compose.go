package docker

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// DefaultComposeCommand is the plugin-style compose invocation shipped with
// modern Docker. The legacy standalone binary ("docker-compose") can be
// configured instead.
const DefaultComposeCommand = "docker compose"

// infoCommand asks the daemon for system information. It fails fast when
// the daemon is unreachable, which makes it a cheap availability check.
const infoCommand = "docker info"

// Commands assembles compose command strings for one project.
type Commands struct {
	base string
}

// NewCommands builds the command set for project. The env file is only
// passed to compose when it exists at construction time, because compose
// rejects a missing --env-file.
func NewCommands(project model.ProjectContext, composeCommand string) Commands {
	composeCommand = strings.TrimSpace(composeCommand)
	if composeCommand == "" {
		composeCommand = DefaultComposeCommand
	}

	parts := []string{composeCommand, "-f", ShellQuote(project.ComposeDescriptorPath())}
	if env := project.EnvFilePath(); env != "" {
		if fi, err := os.Stat(env); err == nil && !fi.IsDir() {
			parts = append(parts, "--env-file", ShellQuote(env))
		}
	}

	return Commands{base: strings.Join(parts, " ")}
}

// Info returns the daemon information command.
func (c Commands) Info() string {
	return infoCommand
}

// Up returns the build-and-bring-up command. Containers run detached.
func (c Commands) Up() string {
	return c.base + " up -d --build"
}

// Down returns the tear-down command.
func (c Commands) Down() string {
	return c.base + " down"
}

// Ps returns the process-listing command.
func (c Commands) Ps() string {
	return c.base + " ps"
}

// Logs returns the log-retrieval command. A positive tail bounds the
// number of trailing lines per service; anything else requests the full
// history.
func (c Commands) Logs(tail int) string {
	if tail > 0 {
		return fmt.Sprintf("%s logs --tail=%d", c.base, tail)
	}
	return c.base + " logs"
}

// safeShellWord matches words that need no quoting in a POSIX shell.
var safeShellWord = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// ShellQuote quotes s for a POSIX shell. Words made only of safe
// characters are returned unchanged to keep logged commands readable.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if safeShellWord.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
