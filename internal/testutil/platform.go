package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/arenadash/internal/domain/models"
)

// SessionCookie is the platform session cookie name used by FakePlatform.
const SessionCookie = "arena-session"

// FakePlatform is an httptest server implementing the three platform
// endpoints. Fields may be changed between requests; access is guarded.
type FakePlatform struct {
	Server *httptest.Server

	mu          sync.Mutex
	isAdmin     bool
	metrics     models.MetricsSnapshot
	users       []models.UserSummary
	details     map[string]models.UserSummary
	failNumbers bool
	failDetail  bool
	rawNumbers  string
	calls       map[string]int
	cookies     []string
	holds       map[string]chan struct{}
}

// NewFakePlatform starts a fake platform that reports an admin session,
// SampleMetrics and SampleUsers. The server is closed when the test ends.
func NewFakePlatform(t *testing.T) *FakePlatform {
	t.Helper()
	f := &FakePlatform{
		isAdmin: true,
		metrics: SampleMetrics(),
		users:   SampleUsers(),
		details: map[string]models.UserSummary{},
		calls:   map[string]int{},
		holds:   map[string]chan struct{}{},
	}
	for _, u := range f.users {
		f.details[u.ID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/checkIfAdmin", f.checkAdmin)
	mux.HandleFunc("POST /api/getNumbers", f.numbers)
	mux.HandleFunc("POST /api/getUserDetails", f.userDetails)
	mux.HandleFunc("HEAD /", func(w http.ResponseWriter, r *http.Request) {})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// URL is the base URL of the fake platform.
func (f *FakePlatform) URL() string { return f.Server.URL }

// Close releases any held requests and shuts the server down.
func (f *FakePlatform) Close() {
	f.mu.Lock()
	for id, ch := range f.holds {
		close(ch)
		delete(f.holds, id)
	}
	f.mu.Unlock()
	f.Server.Close()
}

// SetAdmin controls the checkIfAdmin answer.
func (f *FakePlatform) SetAdmin(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isAdmin = v
}

// SetNumbers replaces the batched payload.
func (f *FakePlatform) SetNumbers(m models.MetricsSnapshot, users []models.UserSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metrics = m
	f.users = users
}

// SetRawNumbers makes getNumbers answer with body verbatim.
func (f *FakePlatform) SetRawNumbers(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawNumbers = body
}

// FailNumbers makes getNumbers answer 500.
func (f *FakePlatform) FailNumbers(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNumbers = v
}

// FailDetail makes getUserDetails answer 500.
func (f *FakePlatform) FailDetail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failDetail = v
}

// RemoveDetail makes getUserDetails report no record for id.
func (f *FakePlatform) RemoveDetail(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.details, id)
}

// HoldDetail blocks getUserDetails for id until the returned func is called.
func (f *FakePlatform) HoldDetail(id string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.holds[id] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			if cur, ok := f.holds[id]; ok && cur == ch {
				delete(f.holds, id)
				close(ch)
			}
			f.mu.Unlock()
		})
	}
}

// Calls returns how many times path was requested.
func (f *FakePlatform) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

// Cookies returns the session cookie values seen, in arrival order.
func (f *FakePlatform) Cookies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cookies...)
}

func (f *FakePlatform) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[r.URL.Path]++
	if c, err := r.Cookie(SessionCookie); err == nil {
		f.cookies = append(f.cookies, c.Value)
	}
}

func (f *FakePlatform) checkAdmin(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	f.mu.Lock()
	admin := f.isAdmin
	f.mu.Unlock()
	writeJSON(w, map[string]bool{"isAdmin": admin})
}

func (f *FakePlatform) numbers(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	f.mu.Lock()
	fail, raw := f.failNumbers, f.rawNumbers
	body := map[string]any{
		"totalUsers":    f.metrics.TotalUsers,
		"totalGroups":   f.metrics.TotalGroups,
		"totalContests": f.metrics.TotalContests,
		"usersArray":    f.users,
	}
	f.mu.Unlock()

	if fail {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}
	writeJSON(w, body)
}

func (f *FakePlatform) userDetails(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	hold := f.holds[req.ID]
	f.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	f.mu.Lock()
	fail := f.failDetail
	u, ok := f.details[req.ID]
	f.mu.Unlock()

	if fail {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, map[string]any{"userDetail": u})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
