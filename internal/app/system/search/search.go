// internal/app/system/search/search.go
package search

import (
	"strings"

	"github.com/dalemusser/arenadash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Criterion is the raw query typed into the user search box.
type Criterion string

// IsEmpty reports whether c selects every user.
func (c Criterion) IsEmpty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Terms returns the folded, whitespace-separated terms of c.
func (c Criterion) Terms() []string {
	fields := strings.Fields(string(c))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := text.Fold(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Filter returns the users matching c, in their original order.
//
// Matching is case- and diacritic-insensitive: every term of c must be a
// substring of at least one of the user's username, email, section, group
// name, or external handles. An empty criterion returns users unchanged.
// Filter never modifies users and the result of re-filtering its own output
// with the same criterion is identical.
func Filter(users []models.UserSummary, c Criterion) []models.UserSummary {
	if len(users) == 0 {
		return []models.UserSummary{}
	}
	terms := c.Terms()
	if len(terms) == 0 {
		return users
	}

	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		if Matches(u, terms) {
			out = append(out, u)
		}
	}
	return out
}

// Matches reports whether u satisfies every folded term.
func Matches(u models.UserSummary, terms []string) bool {
	fields := searchable(u)
	for _, t := range terms {
		hit := false
		for _, f := range fields {
			if strings.Contains(f, t) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func searchable(u models.UserSummary) []string {
	raw := []string{
		u.Username,
		u.Email,
		u.Section,
		u.Group.Name,
		u.LeetcodeUsername,
		u.CodeforcesUsername,
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, text.Fold(s))
		}
	}
	return out
}
