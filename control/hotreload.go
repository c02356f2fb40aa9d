// control/hotreload.go
// Re-reads a configuration file into a ConfigStore on demand.

package control

import (
	"github.com/momentics/hioload-conc/control/config"
	"go.uber.org/zap"
)

// ReloadFromFile loads path and installs it into cs. On failure the store
// keeps its previous snapshot and the error is logged and returned.
func ReloadFromFile(cs *ConfigStore, path string, logger *zap.Logger) error {
	cfg, err := config.Load(path)
	if err == nil {
		err = cs.SetConfig(cfg)
	}
	if err != nil {
		logger.Warn("config reload rejected", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Info("config reloaded",
		zap.String("path", path),
		zap.String("strategy", cfg.Strategy),
		zap.Duration("try_timeout", cfg.TryTimeout))
	return nil
}
