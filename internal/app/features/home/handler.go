package home

import (
	"net/http"

	"github.com/dalemusser/arenadash/internal/app/system/auth"
	"github.com/dalemusser/arenadash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		SessionMgr: sm,
		Log:        logger,
	}
}

type homeData struct {
	viewdata.BaseVM
	DashboardURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot renders the landing page along with any notice carried over
// from a redirect (for example a refused dashboard visit).
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		BaseVM:       viewdata.NewBaseVM(r, "Welcome", "/"),
		DashboardURL: "/admin",
	}
	if h.SessionMgr != nil {
		data.Notices = viewdata.FlashNotices(h.SessionMgr.Flashes(w, r))
	}

	templates.Render(w, r, "home", data)
}
