// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Debug probe registry for live containers.

package control

import (
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/internal/syncutil"
)

var _ api.Debug = (*Inspector)(nil)

// Inspector holds named probe functions.
type Inspector struct {
	mu     syncutil.RWMutex
	probes map[string]func() any
}

// NewInspector creates an empty probe registry.
func NewInspector() *Inspector {
	return &Inspector{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts or replaces a named probe.
func (in *Inspector) RegisterProbe(name string, fn func() any) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.probes[name] = fn
}

// RegisterSizer exposes a container's element count under name.
func (in *Inspector) RegisterSizer(name string, s api.Sizer) {
	in.RegisterProbe(name, func() any { return s.Count() })
}

// Unregister drops a probe, typically before the container is disposed.
func (in *Inspector) Unregister(name string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.probes, name)
}

// DumpState runs every probe. Probes run outside the registry lock since a
// container probe may itself wait on the container's lock.
func (in *Inspector) DumpState() map[string]any {
	in.mu.RLock()
	probes := make(map[string]func() any, len(in.probes))
	for k, fn := range in.probes {
		probes[k] = fn
	}
	in.mu.RUnlock()

	out := make(map[string]any, len(probes))
	for k, fn := range probes {
		out[k] = fn()
	}
	return out
}
