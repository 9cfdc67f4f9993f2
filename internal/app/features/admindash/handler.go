// internal/app/features/admindash/handler.go
package admindash

import (
	"context"
	"errors"
	"net/http"
	"strings"

	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/app/system/auth"
	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/app/system/screens"
	"github.com/dalemusser/arenadash/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the admin dashboard. Each browser tab gets its own screen;
// handlers translate requests into screen events and render the result.
type Handler struct {
	Platform   *platformstore.Client
	Screens    *screens.Registry
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler constructs an admin dashboard Handler.
func NewHandler(pc *platformstore.Client, reg *screens.Registry, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Platform:   pc,
		Screens:    reg,
		SessionMgr: sm,
		Log:        logger,
	}
}

func viewer(r *http.Request) string {
	id, _ := auth.ViewerID(r)
	return id
}

// gateway binds the platform client to the session cookie the browser sent.
func (h *Handler) gateway(r *http.Request) platformstore.Gateway {
	if h.Platform == nil {
		return platformstore.UnavailableGateway{}
	}
	return h.Platform.Session(auth.PlatformSession(r, h.Platform.CookieName()))
}

// screen resolves the {screen} URL parameter. Unknown or foreign screens
// send HTMX callers back to /admin for a fresh one.
func (h *Handler) screen(w http.ResponseWriter, r *http.Request) (*screens.Screen, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "screen"))
	s, err := h.Screens.Get(id, viewer(r))
	if err != nil {
		if auth.IsHTMX(r) {
			auth.Redirect(w, r, "/admin")
			return nil, false
		}
		http.Error(w, "screen not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// dispatch sends ev to s, answering the request itself on failure.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, s *screens.Screen, ev dashstate.Event) (dashstate.State, bool) {
	st, err := s.Dispatch(r.Context(), ev)
	if err != nil {
		if errors.Is(err, screens.ErrClosed) {
			auth.Redirect(w, r, "/admin")
			return st, false
		}
		h.Log.Warn("screen dispatch failed", zap.String("screen", s.ID()), zap.Error(err))
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
		return st, false
	}
	return st, true
}

// await waits a bounded time for cond. When the wait runs out the latest
// state is returned and the rendered partial polls again.
func (h *Handler) await(r *http.Request, s *screens.Screen, cond func(dashstate.State) bool) dashstate.State {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	st, _ := s.Await(ctx, cond)
	return st
}

// redirected finishes the request when the screen has decided to send the
// viewer away. The notice travels as a session flash and the screen is closed.
func (h *Handler) redirected(w http.ResponseWriter, r *http.Request, s *screens.Screen, st dashstate.State) bool {
	if st.Phase != dashstate.PhaseRedirecting {
		return false
	}
	for _, n := range st.Notices {
		if err := h.SessionMgr.AddFlash(w, r, auth.Flash{Level: n.Level.String(), Text: n.Text}); err != nil {
			h.Log.Warn("could not store redirect notice", zap.Error(err))
		}
	}
	if err := h.Screens.Close(s.ID(), viewer(r)); err != nil && !errors.Is(err, screens.ErrNotFound) {
		h.Log.Warn("close redirected screen", zap.Error(err))
	}
	h.Log.Info("non-admin redirected from dashboard", zap.String("to", st.RedirectTo))
	auth.Redirect(w, r, st.RedirectTo)
	return true
}

// ack marks the notices rendered in this response as delivered.
func (h *Handler) ack(r *http.Request, s *screens.Screen, st dashstate.State) {
	if len(st.Notices) == 0 {
		return
	}
	last := st.Notices[len(st.Notices)-1].Seq
	if _, err := s.Dispatch(r.Context(), dashstate.NoticesAcknowledged{Through: last}); err != nil && !errors.Is(err, screens.ErrClosed) {
		h.Log.Debug("acknowledge notices", zap.Error(err))
	}
}

func settled(st dashstate.State) bool {
	return !st.Busy || st.Phase == dashstate.PhaseRedirecting
}

func detailSettled(token uint64) func(dashstate.State) bool {
	return func(st dashstate.State) bool {
		return st.Detail.Token != token || st.Detail.Status != dashstate.DetailPending
	}
}
