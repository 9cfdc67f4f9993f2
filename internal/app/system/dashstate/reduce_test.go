package dashstate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dalemusser/arenadash/internal/app/system/search"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"github.com/dalemusser/arenadash/internal/testutil"
)

func ids(users []models.UserSummary) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func loaded() MetricsLoaded {
	return MetricsLoaded{
		Authorized: true,
		Metrics:    testutil.SampleMetrics(),
		Users:      testutil.SampleUsers(),
	}
}

// ready returns a screen that has completed its first load.
func ready(t *testing.T) State {
	t.Helper()
	s, _ := Apply(New(), Mounted{}, loaded())
	if s.Phase != PhaseReady {
		t.Fatalf("setup: phase %v", s.Phase)
	}
	return s
}

func TestMounted_StartsLoad(t *testing.T) {
	s, cmds := Reduce(New(), Mounted{})

	if s.Phase != PhaseLoadingMetrics {
		t.Errorf("phase: got %v, want %v", s.Phase, PhaseLoadingMetrics)
	}
	if !s.Busy {
		t.Error("expected busy while loading")
	}
	if !reflect.DeepEqual(cmds, []Command{LoadMetrics{}}) {
		t.Errorf("commands: got %#v", cmds)
	}

	// A second mount is ignored.
	s2, cmds := Reduce(s, Mounted{})
	if len(cmds) != 0 || s2.Phase != PhaseLoadingMetrics {
		t.Errorf("second mount: phase=%v cmds=%#v", s2.Phase, cmds)
	}
}

func TestMetricsLoaded_ScenarioCountsAndOrder(t *testing.T) {
	s := ready(t)

	if s.Busy {
		t.Error("busy after load")
	}
	if s.Metrics.TotalUsers != 42 || s.Metrics.TotalGroups != 5 || s.Metrics.TotalContests != 3 {
		t.Errorf("metrics: got %+v", s.Metrics)
	}
	if got := ids(s.Filtered); !reflect.DeepEqual(got, []string{"u1", "u2", "u3"}) {
		t.Errorf("filtered: got %v", got)
	}
	if got := ids(s.Users); !reflect.DeepEqual(got, []string{"u1", "u2", "u3"}) {
		t.Errorf("users: got %v", got)
	}
	if len(s.Notices) != 0 {
		t.Errorf("unexpected notices: %+v", s.Notices)
	}
}

func TestMetricsLoaded_NotAuthorizedRedirects(t *testing.T) {
	s, cmds := Apply(New(), Mounted{}, MetricsLoaded{Authorized: false})

	if s.Phase != PhaseRedirecting {
		t.Fatalf("phase: got %v", s.Phase)
	}
	if s.RedirectTo != RedirectHome {
		t.Errorf("redirect: got %q", s.RedirectTo)
	}
	var redirects, loads int
	for _, c := range cmds {
		switch c.(type) {
		case Redirect:
			redirects++
		case LoadMetrics:
			loads++
		}
	}
	if redirects != 1 || loads != 1 {
		t.Errorf("commands: redirects=%d loads=%d (%#v)", redirects, loads, cmds)
	}

	// Redirecting is terminal.
	after, more := Apply(s, RefreshRequested{}, CriterionChanged{Criterion: "a"}, DetailRequested{ID: "u1"}, Mounted{})
	if len(more) != 0 {
		t.Errorf("commands after redirect: %#v", more)
	}
	if after.Phase != PhaseRedirecting || after.Criterion != "" {
		t.Errorf("state changed after redirect: %+v", after)
	}
}

func TestMetricsFailed_FirstLoadIsEmptyWithOneNotice(t *testing.T) {
	s, cmds := Apply(New(), Mounted{}, MetricsFailed{Err: errors.New("boom")})

	if s.Phase != PhaseReady || s.Busy {
		t.Errorf("phase=%v busy=%v", s.Phase, s.Busy)
	}
	if len(s.Users) != 0 || len(s.Filtered) != 0 {
		t.Errorf("expected empty lists, got users=%v filtered=%v", ids(s.Users), ids(s.Filtered))
	}
	if s.Metrics != (models.MetricsSnapshot{}) {
		t.Errorf("expected zero metrics, got %+v", s.Metrics)
	}
	if len(s.Notices) != 1 || s.Notices[0].Text != TextFailure || s.Notices[0].Level != NoticeError {
		t.Errorf("notices: got %+v", s.Notices)
	}
	if len(cmds) != 1 {
		t.Errorf("expected only the initial load command, got %#v", cmds)
	}
}

func TestMetricsFailed_RefreshKeepsPreviousSnapshot(t *testing.T) {
	s := ready(t)
	s, _ = Reduce(s, CriterionChanged{Criterion: "blue"})
	before := s

	s, cmds := Reduce(s, RefreshRequested{})
	if !s.Busy || s.Phase != PhaseLoadingMetrics {
		t.Fatalf("refresh: phase=%v busy=%v", s.Phase, s.Busy)
	}
	if !reflect.DeepEqual(cmds, []Command{LoadMetrics{}}) {
		t.Errorf("refresh commands: %#v", cmds)
	}

	s, _ = Reduce(s, MetricsFailed{Err: errors.New("boom")})
	if !reflect.DeepEqual(ids(s.Users), ids(before.Users)) || !reflect.DeepEqual(ids(s.Filtered), ids(before.Filtered)) {
		t.Errorf("lists changed on failure: users=%v filtered=%v", ids(s.Users), ids(s.Filtered))
	}
	if s.Metrics != before.Metrics {
		t.Errorf("metrics changed on failure: %+v", s.Metrics)
	}
	if len(s.Notices) != 1 {
		t.Errorf("expected exactly one notice, got %+v", s.Notices)
	}
}

func TestRefreshRequested_IgnoredWhileLoading(t *testing.T) {
	s, _ := Reduce(New(), Mounted{})
	_, cmds := Reduce(s, RefreshRequested{})
	if len(cmds) != 0 {
		t.Errorf("refresh during load issued %#v", cmds)
	}
}

func TestCriterionChanged_FiltersWithoutCommands(t *testing.T) {
	s := ready(t)

	s, cmds := Reduce(s, CriterionChanged{Criterion: "blue"})
	if len(cmds) != 0 {
		t.Errorf("filtering issued commands: %#v", cmds)
	}
	if got := ids(s.Filtered); !reflect.DeepEqual(got, []string{"u2", "u3"}) {
		t.Errorf("filtered: got %v", got)
	}
	if len(s.Users) != 3 {
		t.Errorf("full list changed: %v", ids(s.Users))
	}

	s, _ = Reduce(s, CriterionChanged{Criterion: ""})
	if got := ids(s.Filtered); !reflect.DeepEqual(got, []string{"u1", "u2", "u3"}) {
		t.Errorf("cleared filter: got %v", got)
	}
}

func TestCriterionChanged_DuringLoadAppliesOnArrival(t *testing.T) {
	s, _ := Apply(New(), Mounted{}, CriterionChanged{Criterion: "bob"}, loaded())

	if got := ids(s.Filtered); !reflect.DeepEqual(got, []string{"u2"}) {
		t.Errorf("filtered: got %v", got)
	}
}

func TestFilteredIsSubsetOfUsers(t *testing.T) {
	s := ready(t)
	for _, c := range []string{"", "a", "team", "zz", "@"} {
		s, _ = Reduce(s, CriterionChanged{Criterion: search.Criterion(c)})
		full := map[string]bool{}
		for _, u := range s.Users {
			full[u.ID] = true
		}
		for _, u := range s.Filtered {
			if !full[u.ID] {
				t.Errorf("criterion %q: %s not in full list", c, u.ID)
			}
		}
	}
}

func TestDetail_Shown(t *testing.T) {
	s := ready(t)

	s, cmds := Reduce(s, DetailRequested{ID: "u2"})
	want := []Command{FetchDetail{Token: 1, ID: "u2"}}
	if !reflect.DeepEqual(cmds, want) {
		t.Fatalf("commands: got %#v, want %#v", cmds, want)
	}
	if s.Detail.Status != DetailPending || !s.Detail.Open() {
		t.Errorf("detail: got %+v", s.Detail)
	}
	if _, ok := s.Detail.Visible(); ok {
		t.Error("nothing should be visible while pending")
	}

	u := testutil.SampleUsers()[1]
	s, _ = Reduce(s, DetailLoaded{Token: 1, User: u})
	got, ok := s.Detail.Visible()
	if !ok || got.ID != "u2" {
		t.Errorf("visible: got %+v ok=%v", got, ok)
	}
	if n := s.Notices[len(s.Notices)-1]; n.Text != TextViewing || n.Level != NoticeSuccess {
		t.Errorf("notice: got %+v", n)
	}
}

func TestDetail_LastRequestedWins(t *testing.T) {
	users := testutil.SampleUsers()
	s := ready(t)

	s, cmdsA := Reduce(s, DetailRequested{ID: "u1"})
	s, cmdsB := Reduce(s, DetailRequested{ID: "u2"})
	tokA := cmdsA[0].(FetchDetail).Token
	tokB := cmdsB[0].(FetchDetail).Token
	if tokA == tokB {
		t.Fatal("tokens must differ")
	}

	// B arrives first, then the stale A.
	s, _ = Reduce(s, DetailLoaded{Token: tokB, User: users[1]})
	s, _ = Reduce(s, DetailLoaded{Token: tokA, User: users[0]})

	got, ok := s.Detail.Visible()
	if !ok || got.ID != "u2" {
		t.Errorf("visible: got %q ok=%v, want u2", got.ID, ok)
	}
	if s.Detail.User.ID != "u2" {
		t.Errorf("detail slot overwritten by stale response: %q", s.Detail.User.ID)
	}
}

func TestDetail_NewRequestReplacesNotMerges(t *testing.T) {
	users := testutil.SampleUsers()
	s := ready(t)

	s, _ = Apply(s, DetailRequested{ID: "u1"}, DetailLoaded{Token: 1, User: users[0]})
	s, _ = Reduce(s, DetailRequested{ID: "u2"})
	if _, ok := s.Detail.Visible(); ok {
		t.Error("previous user visible while the next one is pending")
	}

	partial := models.UserSummary{ID: "u2", Username: "bob"}
	s, _ = Reduce(s, DetailLoaded{Token: 2, User: partial})
	got, _ := s.Detail.Visible()
	if got.LeetcodeUsername != "" || got.Email != "" {
		t.Errorf("fields leaked from previous detail: %+v", got)
	}
}

func TestDetail_NotFoundScenario(t *testing.T) {
	s := ready(t)

	s, _ = Reduce(s, DetailRequested{ID: "u9"})
	before := len(s.Notices)
	s, _ = Reduce(s, DetailNotFound{Token: s.Detail.Token})

	if s.Detail.Status != DetailMissing {
		t.Errorf("status: got %v", s.Detail.Status)
	}
	if _, ok := s.Detail.Visible(); ok {
		t.Error("modal must show no user data")
	}
	if len(s.Notices) != before+1 || s.Notices[len(s.Notices)-1].Text != TextNotFound {
		t.Errorf("notices: got %+v", s.Notices)
	}
}

func TestDetail_NotFoundDoesNotTouchHeldRecord(t *testing.T) {
	users := testutil.SampleUsers()
	s := ready(t)

	s, _ = Apply(s, DetailRequested{ID: "u1"}, DetailLoaded{Token: 1, User: users[0]})
	s, _ = Apply(s, DetailRequested{ID: "u9"}, DetailNotFound{Token: 2})

	if s.Detail.User == nil || s.Detail.User.ID != "u1" {
		t.Errorf("held record changed: %+v", s.Detail.User)
	}
}

func TestDetail_FailureKeepsPreviousDetail(t *testing.T) {
	users := testutil.SampleUsers()
	s := ready(t)

	s, _ = Apply(s, DetailRequested{ID: "u1"}, DetailLoaded{Token: 1, User: users[0]})
	s, _ = Apply(s, DetailRequested{ID: "u2"}, DetailFetchFailed{Token: 2, Err: errors.New("boom")})

	got, ok := s.Detail.Visible()
	if !ok || got.ID != "u1" {
		t.Errorf("previous detail should remain visible, got %q ok=%v", got.ID, ok)
	}
	if s.Notices[len(s.Notices)-1].Text != TextFailure {
		t.Errorf("notice: got %+v", s.Notices[len(s.Notices)-1])
	}
}

func TestDetail_FailureWithNothingShown(t *testing.T) {
	s := ready(t)
	s, _ = Apply(s, DetailRequested{ID: "u1"}, DetailFetchFailed{Token: 1})

	if _, ok := s.Detail.Visible(); ok {
		t.Error("nothing should be visible")
	}
}

func TestDetail_StaleFailureIgnored(t *testing.T) {
	users := testutil.SampleUsers()
	s := ready(t)

	s, _ = Apply(s, DetailRequested{ID: "u1"}, DetailRequested{ID: "u2"})
	s, _ = Reduce(s, DetailLoaded{Token: 2, User: users[1]})
	n := len(s.Notices)
	s, _ = Reduce(s, DetailFetchFailed{Token: 1})

	if len(s.Notices) != n {
		t.Error("stale failure produced a notice")
	}
	if s.Detail.Status != DetailShown {
		t.Errorf("status: got %v", s.Detail.Status)
	}
}

func TestDetail_ClosedDiscardsInFlight(t *testing.T) {
	users := testutil.SampleUsers()
	s := ready(t)

	s, _ = Apply(s, DetailRequested{ID: "u1"}, DetailClosed{})
	s, _ = Reduce(s, DetailLoaded{Token: 1, User: users[0]})

	if s.Detail.Open() {
		t.Error("modal reopened by a late response")
	}
	if len(s.Notices) != 0 {
		t.Errorf("late response produced notices: %+v", s.Notices)
	}
}

func TestDetail_DoesNotRetriggerMetrics(t *testing.T) {
	users := testutil.SampleUsers()
	s := ready(t)

	_, cmds := Apply(s,
		DetailRequested{ID: "u1"},
		DetailLoaded{Token: 1, User: users[0]},
		DetailClosed{},
		DetailRequested{ID: "u2"},
	)
	for _, c := range cmds {
		if _, ok := c.(LoadMetrics); ok {
			t.Error("detail flow issued LoadMetrics")
		}
	}
}

func TestDetail_IgnoredBeforeMount(t *testing.T) {
	_, cmds := Reduce(New(), DetailRequested{ID: "u1"})
	if len(cmds) != 0 {
		t.Errorf("commands: %#v", cmds)
	}
}

func TestNoticesAcknowledged(t *testing.T) {
	s, _ := Apply(New(), Mounted{}, MetricsFailed{})
	s, _ = Apply(s, RefreshRequested{}, MetricsFailed{})
	if len(s.Notices) != 2 {
		t.Fatalf("notices: got %d", len(s.Notices))
	}

	first := s.Notices[0].Seq
	s, _ = Reduce(s, NoticesAcknowledged{Through: first})
	if len(s.Notices) != 1 || s.Notices[0].Seq <= first {
		t.Errorf("after ack: %+v", s.Notices)
	}
	if s.LastNoticeSeq() != 2 {
		t.Errorf("last seq: got %d", s.LastNoticeSeq())
	}
}

func TestNotices_SnapshotsDoNotAlias(t *testing.T) {
	s, _ := Apply(New(), Mounted{}, MetricsFailed{})
	snapshot := s
	s, _ = Apply(s, RefreshRequested{}, MetricsFailed{})

	if len(snapshot.Notices) != 1 {
		t.Errorf("earlier snapshot changed: %+v", snapshot.Notices)
	}
}

func TestTeardown_IgnoresLaterEvents(t *testing.T) {
	s, _ := Reduce(New(), Mounted{})
	s, _ = Reduce(s, Teardown{})

	after, cmds := Apply(s, loaded(), RefreshRequested{}, DetailRequested{ID: "u1"})
	if len(cmds) != 0 {
		t.Errorf("commands after teardown: %#v", cmds)
	}
	if !after.Closed || after.Busy || after.Phase != PhaseLoadingMetrics {
		t.Errorf("state after teardown: %+v", after)
	}
}

func TestPhaseAndStatusStrings(t *testing.T) {
	if PhaseReady.String() != "ready" || PhaseRedirecting.String() != "redirecting" {
		t.Error("phase strings")
	}
	if DetailMissing.String() != "not_found" || DetailPending.String() != "pending" {
		t.Error("detail strings")
	}
	if NoticeError.String() != "error" || NoticeSuccess.String() != "success" {
		t.Error("notice strings")
	}
}
