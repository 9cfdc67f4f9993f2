// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the reaper and closes every open screen, cancelling any
// platform requests still in flight.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps BackendDeps, logger *zap.Logger) error {
	if deps.Reaper != nil {
		deps.Reaper.Stop()
	}
	if deps.Screens != nil {
		logger.Info("closing dashboard screens", zap.Int("open", deps.Screens.Len()))
		deps.Screens.CloseAll()
	}
	return nil
}
