// Package dashstate models one admin dashboard screen as an explicit state
// machine. All changes go through Reduce, which takes the current State and
// one Event and returns the next State plus the Commands the caller must run
// (network fetches, redirects). Reduce performs no I/O.
package dashstate

import (
	"github.com/dalemusser/arenadash/internal/app/system/search"
	"github.com/dalemusser/arenadash/internal/domain/models"
)

// Phase is the outer lifecycle of a screen.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseLoadingMetrics
	PhaseReady
	PhaseRedirecting
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseLoadingMetrics:
		return "loading_metrics"
	case PhaseReady:
		return "ready"
	case PhaseRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// DetailStatus is the detail modal's sub-state. It is orthogonal to Phase.
type DetailStatus int

const (
	DetailIdle DetailStatus = iota
	DetailPending
	DetailShown
	DetailFailed
	DetailMissing
)

func (s DetailStatus) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailPending:
		return "pending"
	case DetailShown:
		return "shown"
	case DetailFailed:
		return "failed"
	case DetailMissing:
		return "not_found"
	default:
		return "unknown"
	}
}

// Detail is the single detail slot. Token identifies the most recent
// request; results carrying any other token are stale.
type Detail struct {
	Status     DetailStatus
	Token      uint64
	SelectedID string
	User       *models.UserSummary // last fetched record, replaced wholesale
}

// Open reports whether the detail modal should be displayed.
func (d Detail) Open() bool { return d.Status != DetailIdle }

// Visible returns the record the modal should show, if any.
//
// A shown record is visible only while it belongs to the current selection,
// so a pending request for another user never displays the previous one.
// After a failed fetch the previous record stays visible; after a not-found
// answer nothing is.
func (d Detail) Visible() (models.UserSummary, bool) {
	if d.User == nil {
		return models.UserSummary{}, false
	}
	switch d.Status {
	case DetailShown:
		return *d.User, d.User.ID == d.SelectedID
	case DetailFailed:
		return *d.User, true
	}
	return models.UserSummary{}, false
}

// NoticeLevel classifies a user-visible notification.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

func (l NoticeLevel) String() string {
	if l == NoticeError {
		return "error"
	}
	return "success"
}

// Notice is a transient notification. Seq increases monotonically per screen.
type Notice struct {
	Seq   uint64
	Level NoticeLevel
	Text  string
}

// Notification texts.
const (
	TextNotAuthorized = "You are not authorized to access this page"
	TextFailure       = "Some error occurred"
	TextNotFound      = "User not found"
	TextViewing       = "Viewing user details"
)

// RedirectHome is where unauthorized visitors are sent.
const RedirectHome = "/"

// State is an immutable snapshot of one screen. Slices are never modified
// in place once published, so copies may be shared freely.
type State struct {
	Phase      Phase
	Busy       bool
	Closed     bool
	Metrics    models.MetricsSnapshot
	Users      []models.UserSummary
	Criterion  search.Criterion
	Filtered   []models.UserSummary
	Detail     Detail
	Notices    []Notice
	RedirectTo string

	lastSeq uint64
}

// New returns the state of a screen that has not been mounted yet.
func New() State {
	return State{
		Phase:    PhaseInitializing,
		Users:    []models.UserSummary{},
		Filtered: []models.UserSummary{},
	}
}

// LastNoticeSeq returns the sequence number of the newest notice issued,
// including notices already acknowledged.
func (s State) LastNoticeSeq() uint64 { return s.lastSeq }
