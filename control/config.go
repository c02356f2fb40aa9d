// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe store of the current container configuration with reload
// propagation.

package control

import (
	"slices"

	"github.com/momentics/hioload-conc/control/config"
	"github.com/momentics/hioload-conc/internal/syncutil"
)

// ConfigStore holds the current configuration and notifies listeners on
// change.
type ConfigStore struct {
	mu        syncutil.RWMutex
	current   config.Config
	listeners []func(config.Config)
}

// NewConfigStore initializes a store with the given snapshot.
func NewConfigStore(initial config.Config) *ConfigStore {
	return &ConfigStore{current: initial}
}

// Snapshot returns the current configuration by value.
func (cs *ConfigStore) Snapshot() config.Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.current
}

// SetConfig validates and installs cfg, then calls every listener with it
// on the caller's goroutine. An invalid cfg leaves the store unchanged.
func (cs *ConfigStore) SetConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cs.mu.Lock()
	cs.current = cfg
	listeners := slices.Clone(cs.listeners)
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
	return nil
}

// OnReload registers a listener called after each successful SetConfig.
func (cs *ConfigStore) OnReload(fn func(config.Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
