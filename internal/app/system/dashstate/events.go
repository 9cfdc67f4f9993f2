package dashstate

import (
	"github.com/dalemusser/arenadash/internal/app/system/search"
	"github.com/dalemusser/arenadash/internal/domain/models"
)

// Event is an input to Reduce.
type Event interface{ isEvent() }

// Mounted starts the screen's first load.
type Mounted struct{}

// RefreshRequested asks for the metrics and user list to be loaded again.
type RefreshRequested struct{}

// MetricsLoaded carries a completed authorization check and, when
// Authorized, the batched fetch result.
type MetricsLoaded struct {
	Authorized bool
	Metrics    models.MetricsSnapshot
	Users      []models.UserSummary
}

// MetricsFailed reports a failed authorization check or batched fetch.
type MetricsFailed struct{ Err error }

// CriterionChanged carries a new search box value.
type CriterionChanged struct{ Criterion search.Criterion }

// DetailRequested opens the detail modal for one user.
type DetailRequested struct{ ID string }

// DetailLoaded is a successful detail response for the request tagged Token.
type DetailLoaded struct {
	Token uint64
	User  models.UserSummary
}

// DetailNotFound reports that the platform has no record for the request tagged Token.
type DetailNotFound struct{ Token uint64 }

// DetailFetchFailed reports a failed detail request tagged Token.
type DetailFetchFailed struct {
	Token uint64
	Err   error
}

// DetailClosed closes the modal. Any in-flight detail result becomes stale.
type DetailClosed struct{}

// NoticesAcknowledged drops notices up to and including Through.
type NoticesAcknowledged struct{ Through uint64 }

// Teardown ends the screen. Later events are ignored.
type Teardown struct{}

func (Mounted) isEvent()             {}
func (RefreshRequested) isEvent()    {}
func (MetricsLoaded) isEvent()       {}
func (MetricsFailed) isEvent()       {}
func (CriterionChanged) isEvent()    {}
func (DetailRequested) isEvent()     {}
func (DetailLoaded) isEvent()        {}
func (DetailNotFound) isEvent()      {}
func (DetailFetchFailed) isEvent()   {}
func (DetailClosed) isEvent()        {}
func (NoticesAcknowledged) isEvent() {}
func (Teardown) isEvent()            {}

// Command is work Reduce asks its caller to perform. Results come back as events.
type Command interface{ isCommand() }

// LoadMetrics runs the authorization check followed by the batched fetch.
// It must answer with MetricsLoaded or MetricsFailed.
type LoadMetrics struct{}

// FetchDetail loads one user. It must answer with DetailLoaded,
// DetailNotFound or DetailFetchFailed carrying the same Token.
type FetchDetail struct {
	Token uint64
	ID    string
}

// Redirect sends the viewer away from the dashboard.
type Redirect struct {
	To     string
	Reason string
}

func (LoadMetrics) isCommand() {}
func (FetchDetail) isCommand() {}
func (Redirect) isCommand()    {}
