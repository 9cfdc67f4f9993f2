// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/arenadash/internal/app/resources"
	"github.com/dalemusser/arenadash/internal/app/system/timeouts"
	"github.com/dalemusser/arenadash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backends are
// built but before the HTTP handler is. It loads shared templates, applies
// timeout overrides and starts the idle screen reaper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps BackendDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts configured from environment", zap.Int("count", n))
	}

	viewdata.Init(appCfg.SiteName, appCfg.PlatformBaseURL)

	if deps.Reaper != nil {
		deps.Reaper.Start()
	}
	return nil
}
