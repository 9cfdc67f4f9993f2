// internal/app/features/admindash/dashboard.go
package admindash

import (
	"net/http"

	errpage "github.com/dalemusser/arenadash/internal/app/features/errors"
	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/app/system/search"
	"github.com/dalemusser/arenadash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin – open a screen and render the page shell                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDashboard opens a new screen for this tab and starts its load. The
// page renders skeleton cards and list; the panel partial fills them in.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	if h.Platform == nil {
		errpage.RenderUnavailable(w, r)
		return
	}

	s := h.Screens.Open(viewer(r), h.gateway(r))

	st, ok := h.dispatch(w, r, s, dashstate.Mounted{})
	if !ok {
		return
	}

	data := pageVM{
		BaseVM:   viewdata.NewBaseVM(r, "Admin Dashboard", "/"),
		ScreenID: s.ID(),
		Panel:    newPanelVM(s.ID(), st),
	}
	templates.Render(w, r, "admindash_page", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/s/{screen}/panel – cards + list                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePanel waits briefly for an in-flight load, then renders the cards and
// list. While still loading the partial re-polls itself.
func (h *Handler) ServePanel(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}

	st := h.await(r, s, settled)
	if h.redirected(w, r, s, st) {
		return
	}

	templates.RenderSnippet(w, "admindash_panel", newPanelVM(s.ID(), st))
	h.ack(r, s, st)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/s/{screen}/users?q= – filter the list                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeUsers applies the search box value. Filtering is local; no platform
// request is made.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}

	q := search.Criterion(r.URL.Query().Get("q"))
	st, ok := h.dispatch(w, r, s, dashstate.CriterionChanged{Criterion: q})
	if !ok {
		return
	}
	if h.redirected(w, r, s, st) {
		return
	}

	templates.RenderSnippet(w, "admindash_users", newListVM(s.ID(), st))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/s/{screen}/refresh – reload metrics and users                    |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRefresh starts a new load. The returned panel shows skeletons and
// polls until the load settles.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}

	st, ok := h.dispatch(w, r, s, dashstate.RefreshRequested{})
	if !ok {
		return
	}
	h.Log.Debug("dashboard refresh", zap.String("screen", s.ID()), zap.Bool("busy", st.Busy))

	templates.RenderSnippet(w, "admindash_panel", newPanelVM(s.ID(), st))
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /admin/s/{screen} – tab closed                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleClose tears the screen down, cancelling anything in flight.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}
	if err := h.Screens.Close(s.ID(), viewer(r)); err != nil {
		http.Error(w, "screen not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
