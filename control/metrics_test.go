package control

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistryObserve(t *testing.T) {
	mr := NewMetricsRegistry()
	mr.ObserveAcquire("jobs", "spin", time.Microsecond, true)
	mr.ObserveAcquire("jobs", "spin", time.Millisecond, false)
	mr.ObserveFill("buffers", 8)
	mr.ObserveGet("buffers")
	mr.ObserveGet("buffers")

	require.Equal(t, 1.0, testutil.ToFloat64(mr.lockTimeouts.WithLabelValues("jobs", "spin")))
	require.Equal(t, 8.0, testutil.ToFloat64(mr.poolCreated.WithLabelValues("buffers")))

	snap := mr.Snapshot()
	require.Equal(t, 2.0, snap[`hioload_conc_lock_wait_seconds_count{container="jobs",strategy="spin"}`])
	require.Equal(t, 1.0, snap[`hioload_conc_pool_fills_total{pool="buffers"}`])
	require.Equal(t, 2.0, snap[`hioload_conc_pool_gets_total{pool="buffers"}`])
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = NewLogger("chatty")
	require.Error(t, err)
}
