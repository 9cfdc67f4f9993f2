// internal/app/features/admindash/state.go
package admindash

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/domain/models"
)

type detailResponse struct {
	Status     string              `json:"status"`
	Token      uint64              `json:"token"`
	SelectedID string              `json:"selectedId,omitempty"`
	User       *models.UserSummary `json:"user,omitempty"`
}

type noticeResponse struct {
	Seq   uint64 `json:"seq"`
	Level string `json:"level"`
	Text  string `json:"text"`
}

type stateResponse struct {
	Screen     string                 `json:"screen"`
	Phase      string                 `json:"phase"`
	Busy       bool                   `json:"busy"`
	Metrics    models.MetricsSnapshot `json:"metrics"`
	Criterion  string                 `json:"criterion"`
	TotalUsers int                    `json:"totalListed"`
	Filtered   []models.UserSummary   `json:"filtered"`
	Detail     detailResponse         `json:"detail"`
	Notices    []noticeResponse       `json:"notices"`
	RedirectTo string                 `json:"redirectTo,omitempty"`
}

func newStateResponse(id string, st dashstate.State) stateResponse {
	resp := stateResponse{
		Screen:     id,
		Phase:      st.Phase.String(),
		Busy:       st.Busy,
		Metrics:    st.Metrics,
		Criterion:  string(st.Criterion),
		TotalUsers: len(st.Users),
		Filtered:   st.Filtered,
		Detail: detailResponse{
			Status:     st.Detail.Status.String(),
			Token:      st.Detail.Token,
			SelectedID: st.Detail.SelectedID,
		},
		Notices:    make([]noticeResponse, 0, len(st.Notices)),
		RedirectTo: st.RedirectTo,
	}
	if u, ok := st.Detail.Visible(); ok {
		resp.Detail.User = &u
	}
	for _, n := range st.Notices {
		resp.Notices = append(resp.Notices, noticeResponse{Seq: n.Seq, Level: n.Level.String(), Text: n.Text})
	}
	return resp
}

// ServeState returns the screen's current snapshot as JSON. Notices are not
// acknowledged.
// GET /admin/s/{screen}/state
func (h *Handler) ServeState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newStateResponse(s.ID(), s.State()))
}
