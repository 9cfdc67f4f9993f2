package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRenderNotFound_PlainForAPI(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/nope", nil)
	req.Header.Set("Accept", "application/json")

	RenderNotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRenderUnavailable_PlainForHTMX(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/s/x/panel", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Accept", "text/html")

	RenderUnavailable(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().MethodNotAllowed(rec, httptest.NewRequest("PUT", "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d", rec.Code)
	}
}
