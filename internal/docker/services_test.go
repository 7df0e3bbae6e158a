package docker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComposeServices verifies that service names are read and sorted.
func TestComposeServices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	content := `services:
  web:
    build: ./app
    ports:
      - "8000:8000"
  db:
    image: postgres:16
    env_file: .env
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	services, err := ComposeServices(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"db", "web"}, services)
}

// TestComposeServices_Errors covers missing and malformed descriptors.
func TestComposeServices_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ComposeServices(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("services: [unterminated"), 0o644))
	_, err = ComposeServices(bad)
	assert.Error(t, err)
}

// TestComposeServices_NoServices verifies an empty, non-nil result.
func TestComposeServices_NoServices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: empty\n"), 0o644))

	services, err := ComposeServices(path)

	require.NoError(t, err)
	assert.NotNil(t, services)
	assert.Empty(t, services)
}
