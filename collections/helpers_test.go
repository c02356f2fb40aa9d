package collections

import (
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/core/concurrency"
)

// strategyOptions runs container tests under both lock strategies.
var strategyOptions = map[string]Option{
	"blocking": WithStrategy(concurrency.Blocking),
	"spin":     WithStrategy(concurrency.Spin),
}

// heldLock returns a lock that another goroutine holds until release is
// called. Handing it to a container with WithLocker forces every acquire to
// time out.
func heldLock() (l api.Locker, release func()) {
	l = concurrency.NewBlockingLock()
	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		l.Acquire(concurrency.Infinite)
		close(held)
		<-done
		l.Release()
	}()
	<-held
	return l, func() { close(done) }
}

func intEq(a, b int) bool { return a == b }
