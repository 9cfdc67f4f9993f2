// internal/app/features/admindash/detail.go
package admindash

import (
	"net/http"
	"strings"

	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/app/system/screens"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// HandleOpenDetail requests one user's record and renders the modal once the
// answer is in, or a pending modal that polls for it.
// GET /admin/s/{screen}/detail/{id}
func (h *Handler) HandleOpenDetail(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "missing user id", http.StatusBadRequest)
		return
	}

	st, ok := h.dispatch(w, r, s, dashstate.DetailRequested{ID: id})
	if !ok {
		return
	}
	h.renderDetail(w, r, s, st.Detail.Token)
}

// ServeDetail renders the modal for the current request.
// GET /admin/s/{screen}/detail
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}
	h.renderDetail(w, r, s, s.State().Detail.Token)
}

// HandleCloseDetail closes the modal; a response still in flight is ignored.
// DELETE /admin/s/{screen}/detail
func (h *Handler) HandleCloseDetail(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}
	if _, ok := h.dispatch(w, r, s, dashstate.DetailClosed{}); !ok {
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, s *screens.Screen, token uint64) {
	st := h.await(r, s, detailSettled(token))
	if h.redirected(w, r, s, st) {
		return
	}

	vm := newDetailVM(s.ID(), st)
	templates.RenderSnippet(w, "admindash_detail", vm)
	h.ack(r, s, st)
}
