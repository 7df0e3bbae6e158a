package docker

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// fakeRunner returns a fixed result and records the commands it received.
type fakeRunner struct {
	result   model.ExecutionResult
	commands []string
}

func (f *fakeRunner) Run(command string) model.ExecutionResult {
	f.commands = append(f.commands, command)
	return f.result
}

// fakePinger is a Pinger with a configurable ping error.
type fakePinger struct {
	pingErr error
	closed  bool
}

func (f *fakePinger) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakePinger) Close() error                   { f.closed = true; return nil }

// TestParseProbeMode verifies string-to-mode conversion.
func TestParseProbeMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ProbeMode
		hasError bool
	}{
		{"cli", ProbeCLI, false},
		{"api", ProbeAPI, false},
		{"API", ProbeAPI, false},
		{"", ProbeCLI, false},
		{"socket", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseProbeMode(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

// TestCLIProbe verifies that availability follows the info command's exit status.
func TestCLIProbe(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	commands := Commands{base: "docker compose -f docker-compose.yml"}

	t.Run("daemon reachable", func(t *testing.T) {
		r := &fakeRunner{result: model.ExecutionResult{ExitCode: 0}}
		probe := NewCLIProbe(r, commands, logger)

		assert.True(t, probe.IsRuntimeAvailable())
		assert.Equal(t, []string{"docker info"}, r.commands)
	})

	t.Run("daemon unreachable", func(t *testing.T) {
		r := &fakeRunner{result: model.ExecutionResult{ExitCode: 1, Output: "Cannot connect"}}
		probe := NewCLIProbe(r, commands, logger)

		assert.False(t, probe.IsRuntimeAvailable())
	})
}

// TestAPIProbe verifies the Engine API variant with a fake client.
func TestAPIProbe(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	t.Run("ping succeeds", func(t *testing.T) {
		p := &fakePinger{}
		probe := NewAPIProbe(func() (Pinger, error) { return p, nil }, logger)

		assert.True(t, probe.IsRuntimeAvailable())
		assert.True(t, p.closed, "client should be closed after probing")
	})

	t.Run("ping fails", func(t *testing.T) {
		p := &fakePinger{pingErr: errors.New("connection refused")}
		probe := NewAPIProbe(func() (Pinger, error) { return p, nil }, logger)

		assert.False(t, probe.IsRuntimeAvailable())
		assert.True(t, p.closed)
	})

	t.Run("client cannot be created", func(t *testing.T) {
		probe := NewAPIProbe(func() (Pinger, error) { return nil, errors.New("no socket") }, logger)

		assert.False(t, probe.IsRuntimeAvailable())
	})
}

// TestNewProbe verifies mode dispatch.
func TestNewProbe(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	r := &fakeRunner{}

	probe, err := NewProbe(ProbeCLI, r, Commands{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &CLIProbe{}, probe)

	probe, err = NewProbe(ProbeAPI, r, Commands{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &APIProbe{}, probe)

	_, err = NewProbe(ProbeMode("bogus"), r, Commands{}, logger)
	assert.Error(t, err)
}

// TestDetectUnixSocket verifies socket path probing order.
func TestDetectUnixSocket(t *testing.T) {
	dir := t.TempDir()

	_, err := detectUnixSocket([]string{dir + "/missing.sock"})
	assert.Error(t, err)

	host, err := detectUnixSocket([]string{dir + "/missing.sock", dir})
	require.NoError(t, err)
	assert.Equal(t, "unix://"+dir, host)
}
