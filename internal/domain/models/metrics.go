// internal/domain/models/metrics.go
package models

// MetricsSnapshot holds the platform totals shown on the summary cards.
// A snapshot is replaced wholesale on every successful fetch; counts carry
// no consistency guarantee with the length of the fetched user list.
type MetricsSnapshot struct {
	TotalUsers    int `json:"totalUsers" validate:"gte=0"`
	TotalGroups   int `json:"totalGroups" validate:"gte=0"`
	TotalContests int `json:"totalContests" validate:"gte=0"`
}
