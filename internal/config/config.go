// Package config resolves docker-manager's options into an immutable
// project configuration.
//
// Every option has a documented default and can be overridden, in
// increasing order of precedence, by a config file, an environment
// variable and a command-line flag. Resolution happens once at startup.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/docker-manager/internal/docker"
	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// DefaultFileName is the config file looked up in the project directory
// when no explicit path is given.
const DefaultFileName = ".docker-manager.yaml"

// Defaults for each option. The project directory defaults to the
// current working directory.
const (
	DefaultComposeFile = "docker-compose.yml"
	DefaultEnvFile     = ".env"
	DefaultProbe       = "cli"
	DefaultPause       = "1s"
)

// Environment variables recognized by Load.
const (
	EnvDirectory      = "DOCKER_MANAGER_DIR"
	EnvComposeFile    = "DOCKER_MANAGER_COMPOSE_FILE"
	EnvEnvFile        = "DOCKER_MANAGER_ENV_FILE"
	EnvComposeCommand = "DOCKER_MANAGER_COMPOSE_COMMAND"
	EnvProbe          = "DOCKER_MANAGER_PROBE"
	EnvPause          = "DOCKER_MANAGER_PAUSE"
)

// Options is the raw, unresolved set of options. Empty fields mean
// "not set at this layer".
type Options struct {
	Directory      string `yaml:"directory" json:"directory"`
	ComposeFile    string `yaml:"compose_file" json:"compose_file"`
	EnvFile        string `yaml:"env_file" json:"env_file"`
	ComposeCommand string `yaml:"compose_command" json:"compose_command"`
	Probe          string `yaml:"probe" json:"probe"`
	Pause          string `yaml:"pause" json:"pause"`
}

// Defaults returns the default options for a process started in cwd.
func Defaults(cwd string) Options {
	return Options{
		Directory:      cwd,
		ComposeFile:    DefaultComposeFile,
		EnvFile:        DefaultEnvFile,
		ComposeCommand: docker.DefaultComposeCommand,
		Probe:          DefaultProbe,
		Pause:          DefaultPause,
	}
}

// Merge returns o with every non-empty field of override applied on top.
func (o Options) Merge(override Options) Options {
	pick := func(base, over string) string {
		if strings.TrimSpace(over) != "" {
			return over
		}
		return base
	}
	return Options{
		Directory:      pick(o.Directory, override.Directory),
		ComposeFile:    pick(o.ComposeFile, override.ComposeFile),
		EnvFile:        pick(o.EnvFile, override.EnvFile),
		ComposeCommand: pick(o.ComposeCommand, override.ComposeCommand),
		Probe:          pick(o.Probe, override.Probe),
		Pause:          pick(o.Pause, override.Pause),
	}
}

// FromEnv reads options from environment variables via lookup.
func FromEnv(lookup func(string) (string, bool)) Options {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return Options{
		Directory:      get(EnvDirectory),
		ComposeFile:    get(EnvComposeFile),
		EnvFile:        get(EnvEnvFile),
		ComposeCommand: get(EnvComposeCommand),
		Probe:          get(EnvProbe),
		Pause:          get(EnvPause),
	}
}

// LoadFile reads options from a config file. Files ending in .json or
// .jsonc are parsed as JSON with comments; everything else as YAML.
// Unknown keys are rejected.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var opts Options
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return Options{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty YAML document decodes to io.EOF; treat it as no options.
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return Options{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return opts, nil
}

// Config is the resolved, read-only configuration of a run.
type Config struct {
	Project        model.ProjectContext
	ComposeCommand string
	Probe          docker.ProbeMode
	Pause          time.Duration

	// Source is the config file that was applied, if any.
	Source string
}

// Load resolves the final configuration. configPath may be empty, in
// which case DefaultFileName is read from the project directory when it
// exists. flags holds the options set on the command line.
//
// A relative directory from flags or env is taken relative to the process
// working directory; one from a config file is taken relative to the
// directory containing that file.
func Load(configPath string, flags Options, lookupEnv func(string) (string, bool)) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	env := FromEnv(lookupEnv)

	// The project directory decides where the default config file lives,
	// so it is resolved from flags and env before any file is read.
	dir := Options{Directory: cwd}.Merge(env).Merge(flags).Directory
	if configPath == "" {
		candidate := filepath.Join(dir, DefaultFileName)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			configPath = candidate
		}
	}

	var file Options
	if configPath != "" {
		if file, err = LoadFile(configPath); err != nil {
			return nil, err
		}
		// A relative directory in a file is relative to that file.
		if file.Directory != "" && !filepath.IsAbs(file.Directory) {
			file.Directory = filepath.Join(filepath.Dir(configPath), file.Directory)
		}
	}

	opts := Defaults(cwd).Merge(file).Merge(env).Merge(flags)
	cfg, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	cfg.Source = configPath
	return cfg, nil
}

// Resolve validates opts and turns them into a Config.
func Resolve(opts Options) (*Config, error) {
	fi, err := os.Stat(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("project directory %q: %w", opts.Directory, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("project directory %q is not a directory", opts.Directory)
	}

	project, err := model.NewProjectContext(opts.Directory, opts.ComposeFile, opts.EnvFile)
	if err != nil {
		return nil, err
	}

	probe, err := docker.ParseProbeMode(opts.Probe)
	if err != nil {
		return nil, err
	}

	pause, err := time.ParseDuration(opts.Pause)
	if err != nil {
		return nil, fmt.Errorf("invalid pause %q: %w", opts.Pause, err)
	}
	if pause < 0 {
		return nil, fmt.Errorf("invalid pause %q: must not be negative", opts.Pause)
	}

	return &Config{
		Project:        project,
		ComposeCommand: opts.ComposeCommand,
		Probe:          probe,
		Pause:          pause,
	}, nil
}
