// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// appConfigKeys defines the configuration keys for arenadash.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: platform_base_url, session_name, etc.
//   - Environment variables: ARENADASH_PLATFORM_BASE_URL, ARENADASH_SESSION_NAME, etc.
//   - Command-line flags: --platform_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "site_name", Default: "Arena Admin", Desc: "Name shown in page titles"},

	// Arena platform
	{Name: "platform_base_url", Default: "http://localhost:5000", Desc: "Base URL of the arena platform API"},
	{Name: "platform_session_cookie", Default: "connect.sid", Desc: "Name of the platform's session cookie forwarded on API calls"},
	{Name: "platform_timeout", Default: "30s", Desc: "Transport timeout for platform API calls"},

	// Session
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "arenadash-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	// Screens
	{Name: "screen_idle_ttl", Default: "10m", Desc: "Close dashboard screens unused for this long"},
	{Name: "screen_reap_interval", Default: "1m", Desc: "How often idle screens are swept"},
	{Name: "detail_rate_limit", Default: 60, Desc: "User detail requests allowed per client IP per minute (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ARENADASH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ARENADASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SiteName: appValues.String("site_name"),

		PlatformBaseURL:       strings.TrimRight(appValues.String("platform_base_url"), "/"),
		PlatformSessionCookie: appValues.String("platform_session_cookie"),
		PlatformTimeout:       appValues.Duration("platform_timeout", 30*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		ScreenIdleTTL:      appValues.Duration("screen_idle_ttl", 10*time.Minute),
		ScreenReapInterval: appValues.Duration("screen_reap_interval", time.Minute),
		DetailRateLimit:    appValues.Int("detail_rate_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Production refuses the development session key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validate.Struct(appCfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			logger.Error("invalid app config", zap.Strings("errors", msgs))
			return fmt.Errorf("invalid app config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid app config: %w", err)
	}

	if !strings.HasPrefix(appCfg.PlatformBaseURL, "http://") && !strings.HasPrefix(appCfg.PlatformBaseURL, "https://") {
		return fmt.Errorf("platform_base_url must be an http(s) URL, got %q", appCfg.PlatformBaseURL)
	}

	if coreCfg != nil && coreCfg.Env == "prod" && strings.HasPrefix(appCfg.SessionKey, "dev-only") {
		return fmt.Errorf("session_key must be set in production")
	}

	return nil
}
