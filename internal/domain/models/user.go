// internal/domain/models/user.go
package models

import (
	"strings"
	"time"
)

// UserSummary is a registered arena participant as reported by the platform API.
//
// NOTE:
//   - The platform owns the authoritative record; values held here are a
//     read-only snapshot and are never written back.
//   - External handles are optional and arrive as empty strings when unset.
type UserSummary struct {
	ID                 string `json:"id" validate:"required"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Section            string `json:"section"`
	Group              Group  `json:"group"`
	IndividualPoints   int    `json:"individualPoints"`
	LeetcodeUsername   string `json:"leetcodeUsername,omitempty"`
	CodeforcesUsername string `json:"codeforcesUsername,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initial returns the upper-cased first rune of the username, used for avatars.
func (u UserSummary) Initial() string {
	for _, r := range strings.TrimSpace(u.Username) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
