// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/app/system/screens"
	"github.com/dalemusser/arenadash/internal/app/system/timeouts"
	"github.com/dalemusser/arenadash/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the platform API client and the screen registry. WAFFLE
// calls it where a database app would open its connections.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (BackendDeps, error) {
	pc, err := platformstore.New(platformstore.Config{
		BaseURL:       appCfg.PlatformBaseURL,
		SessionCookie: appCfg.PlatformSessionCookie,
		Timeout:       appCfg.PlatformTimeout,
	}, logger)
	if err != nil {
		return BackendDeps{}, fmt.Errorf("platform client: %w", err)
	}

	reg := screens.NewRegistry(logger)
	reaper := workers.NewScreenReaper(reg, logger, appCfg.ScreenReapInterval, appCfg.ScreenIdleTTL)

	logger.Info("platform client ready",
		zap.String("base_url", pc.BaseURL()),
		zap.String("session_cookie", pc.CookieName()))

	return BackendDeps{Platform: pc, Screens: reg, Reaper: reaper}, nil
}

// EnsureSchema has no schema to manage. It probes the platform once so a
// misconfigured base URL shows up in the startup log; an unreachable
// platform does not stop the server.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps BackendDeps, logger *zap.Logger) error {
	if deps.Platform == nil {
		return nil
	}
	pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := deps.Platform.Ping(pctx); err != nil {
		logger.Warn("platform not reachable at startup", zap.Error(err))
	}
	return nil
}
