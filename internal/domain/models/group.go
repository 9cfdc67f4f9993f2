// internal/domain/models/group.go
package models

// Group is the team a user competes in. The platform only embeds its name
// in user payloads.
type Group struct {
	Name string `json:"name"`
}
