// internal/app/features/errors/render.go
package errors

import (
	"net/http"
	"strings"

	"github.com/dalemusser/arenadash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderNotFound shows a friendly 404 page to browsers and a plain 404 to
// everything else.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	if !wantsHTML(r) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Page not found", "/"),
		Message: "The page you were looking for does not exist.",
	})
}

// RenderUnavailable shows a friendly page when the platform cannot be reached.
func RenderUnavailable(w http.ResponseWriter, r *http.Request) {
	if !wantsHTML(r) {
		http.Error(w, "platform unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Temporarily unavailable", "/"),
		Message: "The arena platform is not reachable right now. Please try again shortly.",
	})
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
