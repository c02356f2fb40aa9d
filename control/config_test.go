package control

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-conc/control/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfigStoreReload(t *testing.T) {
	cs := NewConfigStore(config.Default())
	var calls atomic.Int32
	var seen atomic.Value
	cs.OnReload(func(c config.Config) {
		calls.Add(1)
		seen.Store(c)
	})

	next := config.Default()
	next.Strategy = "spin"
	require.NoError(t, cs.SetConfig(next))
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "spin", seen.Load().(config.Config).Strategy)
	require.Equal(t, "spin", cs.Snapshot().Strategy)

	bad := next
	bad.PoolFillSize = 0
	require.Error(t, cs.SetConfig(bad))
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, next, cs.Snapshot())
}

func TestConfigStoreListenersRegisteredDuringReload(t *testing.T) {
	cs := NewConfigStore(config.Default())
	var late atomic.Int32
	registered := false
	cs.OnReload(func(config.Config) {
		if !registered {
			registered = true
			cs.OnReload(func(config.Config) { late.Add(1) })
		}
	})

	require.NoError(t, cs.SetConfig(config.Default()))
	require.Zero(t, late.Load(), "listener added during a reload runs from the next one")
	require.NoError(t, cs.SetConfig(config.Default()))
	require.EqualValues(t, 1, late.Load())
}

func TestReloadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: spin\nacquire_timeout: 2s\n"), 0o600))

	cs := NewConfigStore(config.Default())
	require.NoError(t, ReloadFromFile(cs, path, zap.NewNop()))
	require.Equal(t, 2*time.Second, cs.Snapshot().AcquireTimeout)

	require.Error(t, ReloadFromFile(cs, filepath.Join(dir, "missing.yaml"), zap.NewNop()))
	require.Equal(t, "spin", cs.Snapshot().Strategy)
}
