// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for the lock strategies.

package concurrency

import (
	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
)

var (
	// ErrUnknownStrategy indicates a strategy name that is neither blocking nor spin.
	ErrUnknownStrategy = errors.Mark(errors.New("unknown lock strategy"), api.ErrInvalidArgument)
)

// timeoutError marks a context failure as a lock timeout so callers only
// need to check api.ErrLockTimeout.
func timeoutError(err error) error {
	return errors.Mark(errors.Wrap(err, "acquire"), api.ErrLockTimeout)
}
