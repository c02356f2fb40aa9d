// File: internal/syncutil/mutex_sync.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build !deadlock

// Package syncutil provides the reader/writer mutex used by the control layer.
// Building with the deadlock tag swaps it for a deadlock-detecting one.
package syncutil

import "sync"

// DeadlockEnabled is true if the deadlock detector is enabled.
const DeadlockEnabled = false

// An RWMutex is a reader/writer mutual exclusion lock.
type RWMutex struct {
	sync.RWMutex
}
