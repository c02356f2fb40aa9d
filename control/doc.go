// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, hot reload, metrics and debug introspection for the
// hioload-conc containers.
//
// Provides:
//   - YAML configuration with validated snapshots and reload listeners
//   - Prometheus-backed lock and pool telemetry
//   - Size probes over registered containers
//   - zap logger construction
package control
