package docker

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// composeFile is the subset of a compose descriptor that docker-manager
// reads. Only the service names are needed; the rest of each service
// definition is left to the compose tool.
type composeFile struct {
	Name     string               `yaml:"name"`
	Services map[string]yaml.Node `yaml:"services"`
}

// ComposeServices parses the compose descriptor at path and returns its
// service names in sorted order.
func ComposeServices(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file %s: %w", path, err)
	}

	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse compose file %s: %w", path, err)
	}

	services := make([]string, 0, len(cf.Services))
	for name := range cf.Services {
		services = append(services, name)
	}
	sort.Strings(services)
	return services, nil
}
