// internal/app/features/admindash/routes.go
package admindash

import (
	"github.com/dalemusser/arenadash/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard under whatever mount point the top-level
// router chooses (normally "/admin"). detailPerMinute bounds detail fetches
// per client IP.
func Routes(h *Handler, detailPerMinute int) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeDashboard)

	r.Route("/s/{screen}", func(sr chi.Router) {
		sr.Get("/panel", h.ServePanel)
		sr.Get("/users", h.ServeUsers)
		sr.Post("/refresh", h.HandleRefresh)
		sr.Get("/state", h.ServeState)

		sr.Get("/detail", h.ServeDetail)
		sr.Delete("/detail", h.HandleCloseDetail)
		sr.With(ratelimit.ByIP(detailPerMinute, h.Log)).Get("/detail/{id}", h.HandleOpenDetail)

		sr.Delete("/", h.HandleClose)
		// sendBeacon can only POST.
		sr.Post("/close", h.HandleClose)
	})

	return r
}
