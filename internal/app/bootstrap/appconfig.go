// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig covers the arena platform this dashboard talks to, the
// dashboard's own session cookie, and screen lifetime.
type AppConfig struct {
	SiteName string `validate:"required"`

	// Arena platform API
	PlatformBaseURL       string        `validate:"required,url"` // e.g. https://arena.example.com
	PlatformSessionCookie string        `validate:"required"`     // cookie the platform uses for its session
	PlatformTimeout       time.Duration `validate:"gte=0"`        // per-request transport timeout

	// Session management configuration
	SessionKey    string        `validate:"required,min=16"` // Secret key for signing session cookies (must be strong in production)
	SessionName   string        `validate:"required"`        // Cookie name for sessions (default: arenadash-session)
	SessionDomain string                                     // Cookie domain (blank means current host)
	SessionMaxAge time.Duration `validate:"gt=0"`

	// Screens
	ScreenIdleTTL      time.Duration `validate:"gt=0"`  // close screens unused this long
	ScreenReapInterval time.Duration `validate:"gt=0"`  // how often the reaper sweeps
	DetailRateLimit    int           `validate:"gte=0"` // detail fetches per IP per minute (0 disables)
}
