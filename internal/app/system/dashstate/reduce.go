package dashstate

import (
	"slices"
	"strings"

	"github.com/dalemusser/arenadash/internal/app/system/search"
	"github.com/dalemusser/arenadash/internal/domain/models"
)

// Reduce applies ev to s. Events that do not apply to the current phase, and
// detail results whose token is not current, leave s unchanged and produce
// no commands.
func Reduce(s State, ev Event) (State, []Command) {
	if s.Closed {
		return s, nil
	}
	if _, ok := ev.(Teardown); ok {
		s.Closed = true
		s.Busy = false
		return s, nil
	}
	if ack, ok := ev.(NoticesAcknowledged); ok {
		return s.acknowledge(ack.Through), nil
	}
	if s.Phase == PhaseRedirecting {
		return s, nil
	}

	switch ev := ev.(type) {
	case Mounted:
		if s.Phase != PhaseInitializing {
			return s, nil
		}
		return s.startLoad()

	case RefreshRequested:
		if s.Phase != PhaseReady {
			return s, nil
		}
		return s.startLoad()

	case MetricsLoaded:
		if s.Phase != PhaseLoadingMetrics {
			return s, nil
		}
		s.Busy = false
		if !ev.Authorized {
			s.Phase = PhaseRedirecting
			s.RedirectTo = RedirectHome
			s = s.notify(NoticeError, TextNotAuthorized)
			return s, []Command{Redirect{To: RedirectHome, Reason: TextNotAuthorized}}
		}
		users := ev.Users
		if users == nil {
			users = []models.UserSummary{}
		}
		s.Phase = PhaseReady
		s.Metrics = ev.Metrics
		s.Users = users
		s.Filtered = search.Filter(users, s.Criterion)
		return s, nil

	case MetricsFailed:
		if s.Phase != PhaseLoadingMetrics {
			return s, nil
		}
		s.Phase = PhaseReady
		s.Busy = false
		return s.notify(NoticeError, TextFailure), nil

	case CriterionChanged:
		s.Criterion = ev.Criterion
		s.Filtered = search.Filter(s.Users, ev.Criterion)
		return s, nil

	case DetailRequested:
		id := strings.TrimSpace(ev.ID)
		if id == "" || s.Phase == PhaseInitializing {
			return s, nil
		}
		s.Detail = Detail{
			Status:     DetailPending,
			Token:      s.Detail.Token + 1,
			SelectedID: id,
			User:       s.Detail.User,
		}
		return s, []Command{FetchDetail{Token: s.Detail.Token, ID: id}}

	case DetailLoaded:
		if !s.current(ev.Token) {
			return s, nil
		}
		u := ev.User
		s.Detail.User = &u
		s.Detail.Status = DetailShown
		return s.notify(NoticeSuccess, TextViewing), nil

	case DetailNotFound:
		if !s.current(ev.Token) {
			return s, nil
		}
		s.Detail.Status = DetailMissing
		return s.notify(NoticeError, TextNotFound), nil

	case DetailFetchFailed:
		if !s.current(ev.Token) {
			return s, nil
		}
		s.Detail.Status = DetailFailed
		return s.notify(NoticeError, TextFailure), nil

	case DetailClosed:
		s.Detail = Detail{
			Status: DetailIdle,
			Token:  s.Detail.Token + 1,
			User:   s.Detail.User,
		}
		return s, nil
	}

	return s, nil
}

// Apply folds events into s and returns the final state along with every
// command produced, in order.
func Apply(s State, events ...Event) (State, []Command) {
	var cmds []Command
	for _, ev := range events {
		var c []Command
		s, c = Reduce(s, ev)
		cmds = append(cmds, c...)
	}
	return s, cmds
}

func (s State) startLoad() (State, []Command) {
	s.Phase = PhaseLoadingMetrics
	s.Busy = true
	return s, []Command{LoadMetrics{}}
}

// current reports whether token belongs to the outstanding detail request.
func (s State) current(token uint64) bool {
	return s.Detail.Status == DetailPending && token == s.Detail.Token
}

func (s State) notify(level NoticeLevel, text string) State {
	s.lastSeq++
	s.Notices = append(slices.Clip(s.Notices), Notice{Seq: s.lastSeq, Level: level, Text: text})
	return s
}

func (s State) acknowledge(through uint64) State {
	kept := make([]Notice, 0, len(s.Notices))
	for _, n := range s.Notices {
		if n.Seq > through {
			kept = append(kept, n)
		}
	}
	s.Notices = kept
	return s
}
