// Package docker contains everything docker-manager knows about the
// container runtime:
//   - compose command strings for the lifecycle operations
//   - runtime probes that gate a session on daemon availability, either
//     through "docker info" or through an Engine API ping
//   - a Docker SDK client wrapper with automatic socket detection
//   - compose descriptor parsing for service names
//
// Each lifecycle operation maps to one compose invocation against the
// project's descriptor:
//
//	info    docker info
//	up      <compose> -f <file> [--env-file <env>] up -d --build
//	down    <compose> -f <file> [--env-file <env>] down
//	ps      <compose> -f <file> [--env-file <env>] ps
//	logs    <compose> -f <file> [--env-file <env>] logs [--tail=N]
//
// The strings are an external contract with the compose tool; this package
// only assembles them and leaves execution to the Command Runner.
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
