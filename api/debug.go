// Package api
// Author: momentics
//
// Live introspection support for shared containers.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState emits a snapshot of registered container sizes and probes.
	DumpState() map[string]any

	// RegisterProbe dynamically registers new debug probes.
	RegisterProbe(name string, fn func() any)
}
