// internal/domain/models/errors.go
package models

import "errors"

// Sentinel errors for the dashboard's failure taxonomy.
var (
	// ErrUserNotFound means a detail fetch succeeded but found no record.
	ErrUserNotFound = errors.New("user not found")
	// ErrFetchFailed covers transport, status and decode failures.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrUnavailable means no platform API is configured.
	ErrUnavailable = errors.New("platform unavailable")
)
