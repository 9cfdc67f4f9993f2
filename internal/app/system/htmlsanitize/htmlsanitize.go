// Package htmlsanitize cleans strings received from the platform before they
// are shown. Platform fields are plain text; any markup in them is dropped.
package htmlsanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/dalemusser/arenadash/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()

	// tagLike matches an opening, closing or comment tag. A bare "<" in a
	// name such as "a<b" is text, not markup.
	tagLike = regexp.MustCompile(`<[a-zA-Z/!][^<>]*>`)
)

// Text strips all HTML from s and returns plain text. Entities are decoded
// so the result can go through html/template or a terminal unchanged.
func Text(s string) string {
	switch {
	case s == "":
		return ""
	case tagLike.MatchString(s):
		return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
	case strings.Contains(s, "&"):
		return strings.TrimSpace(html.UnescapeString(s))
	}
	return strings.TrimSpace(s)
}

// User returns a copy of u with every display field passed through Text.
// The ID is left untouched since it is only used for lookups.
func User(u models.UserSummary) models.UserSummary {
	u.Username = Text(u.Username)
	u.Email = Text(u.Email)
	u.Section = Text(u.Section)
	u.Group.Name = Text(u.Group.Name)
	u.LeetcodeUsername = Text(u.LeetcodeUsername)
	u.CodeforcesUsername = Text(u.CodeforcesUsername)
	return u
}
