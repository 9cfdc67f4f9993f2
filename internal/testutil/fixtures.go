package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/arenadash/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestContext returns a context with a deadline suitable for a single test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// User builds a UserSummary with predictable field values derived from id.
func User(id, username, section, group string, points int) models.UserSummary {
	created := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	return models.UserSummary{
		ID:               id,
		Username:         username,
		Email:            username + "@arena.test",
		Section:          section,
		Group:            models.Group{Name: group},
		IndividualPoints: points,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}

// SampleUsers returns three users in a fixed order.
func SampleUsers() []models.UserSummary {
	u1 := User("u1", "alice", "A", "Red Team", 120)
	u1.LeetcodeUsername = "alice_lc"
	u2 := User("u2", "bob", "B", "Blue Team", 80)
	u2.CodeforcesUsername = "bobcf"
	u3 := User("u3", "Zoë", "A", "Blue Team", 95)
	return []models.UserSummary{u1, u2, u3}
}

// SampleMetrics matches the counts used in dashboard scenarios.
func SampleMetrics() models.MetricsSnapshot {
	return models.MetricsSnapshot{TotalUsers: 42, TotalGroups: 5, TotalContests: 3}
}
