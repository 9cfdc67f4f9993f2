// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/arenadash/internal/app/system/auth"
	"github.com/dalemusser/arenadash/internal/app/system/screens"
	"go.uber.org/zap"
)

// Screens looks up an open screen for its owner. Get marks the screen as
// recently used, which keeps it from being reaped.
type Screens interface {
	Get(id, owner string) (*screens.Screen, error)
}

// Handler keeps open dashboard screens alive while their page is showing.
type Handler struct {
	Screens Screens
	Log     *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(reg Screens, logger *zap.Logger) *Handler {
	return &Handler{Screens: reg, Log: logger}
}

// heartbeatRequest is the JSON form of the heartbeat body.
type heartbeatRequest struct {
	Screen string `json:"screen"`
}

// ServeHeartbeat handles POST /api/heartbeat.
// The screen id comes from a JSON body or the "screen" form field. Unknown
// or foreign screens are ignored; the response is always 204.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	id := screenID(r)
	if id == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	owner, _ := auth.ViewerID(r)
	if _, err := h.Screens.Get(id, owner); err != nil {
		h.Log.Debug("heartbeat for unknown screen", zap.String("screen", id))
	}
	w.WriteHeader(http.StatusNoContent)
}

func screenID(r *http.Request) string {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req heartbeatRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req) // an unreadable body is an empty heartbeat
		}
		return strings.TrimSpace(req.Screen)
	}
	return strings.TrimSpace(r.FormValue("screen"))
}
