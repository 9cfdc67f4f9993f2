package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/arenadash/internal/app/system/timeouts"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"go.uber.org/zap"
)

// Pinger reports whether the platform API is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpenScreens reports how many dashboard screens are live.
type OpenScreens interface {
	Len() int
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Platform Pinger
	Screens  OpenScreens
	Log      *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(platform Pinger, screens OpenScreens, logger *zap.Logger) *Handler {
	return &Handler{
		Platform: platform,
		Screens:  screens,
		Log:      logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Platform string `json:"platform"`
	Screens  int    `json:"screens"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "platform":"reachable", "screens":3 }
//
// On platform failure: 503 and
//
//	{ "status":"error", "platform":"unreachable", "message":"Platform unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Platform: "reachable",
	}
	if h.Screens != nil {
		resp.Screens = h.Screens.Len()
	}

	var err error
	if h.Platform == nil {
		err = models.ErrUnavailable
	} else {
		err = h.Platform.Ping(ctx)
	}

	if errors.Is(err, models.ErrUnavailable) {
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Platform = "unconfigured"
		resp.Message = "Platform unavailable"
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if err != nil {
		h.Log.Error("health-check: platform ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Platform = "unreachable"
		resp.Message = "Platform unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
