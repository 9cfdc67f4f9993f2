// internal/app/bootstrap/deps.go
package bootstrap

import (
	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/app/system/screens"
	"github.com/dalemusser/arenadash/internal/app/system/workers"
)

// BackendDeps holds the back-end dependencies for the app. There is no
// database; the arena platform API is the only backend.
type BackendDeps struct {
	Platform *platformstore.Client
	Screens  *screens.Registry
	Reaper   *workers.ScreenReaper
}
