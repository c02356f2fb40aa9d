// File: collections/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package collections

import (
	"time"

	"github.com/momentics/hioload-conc/internal/lockguard"
)

// guard keeps the shared lock guard behind unexported methods so that
// embedding it does not add Lock and Unlock to the containers' API.
type guard struct {
	g *lockguard.Guard
}

func (g guard) acquire(timeout time.Duration) bool { return g.g.Acquire(timeout) }
func (g guard) lock() bool                         { return g.g.Lock() }
func (g guard) tryLock() bool                      { return g.g.TryLock() }
func (g guard) unlock()                            { g.g.Unlock() }
func (g guard) enter(op string) error              { return g.g.Enter(op) }
func (g guard) dispose(release func())             { g.g.Dispose(release) }

func (g guard) errorf(sentinel error, format string, args ...any) error {
	return g.g.Errorf(sentinel, format, args...)
}
