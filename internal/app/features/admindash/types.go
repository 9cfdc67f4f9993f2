// internal/app/features/admindash/types.go
package admindash

import (
	"net/url"

	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/arenadash/internal/app/system/viewdata"
	"github.com/dalemusser/arenadash/internal/domain/models"
)

const (
	notSet     = "Not set"
	dateLayout = "Jan 2, 2006"

	profilePath     = "/user/updateProfile/"
	leaderboardPath = "/leaderboard/admin"
)

type cardVM struct {
	Label string
	Value int
}

type userRow struct {
	ID         string
	Username   string
	Initial    string
	Email      string
	Section    string
	GroupName  string
	Points     int
	ProfileURL string
}

// listVM is the searchable user table plus its footer.
type listVM struct {
	ScreenID string
	Loading  bool
	Query    string
	Rows     []userRow
	Shown    int
	Total    int
}

// panelVM is everything below the page header.
type panelVM struct {
	ScreenID       string
	Loading        bool
	Cards          []cardVM
	List           listVM
	LeaderboardURL string
	Notices        []viewdata.NoticeVM
}

type pageVM struct {
	viewdata.BaseVM
	ScreenID string
	Panel    panelVM
}

type userDetailVM struct {
	Username   string
	Initial    string
	Email      string
	Section    string
	GroupName  string
	Points     int
	Leetcode   string
	Codeforces string
	Joined     string
}

// detailVM drives the modal. Closed renders nothing.
type detailVM struct {
	ScreenID   string
	Open       bool
	Pending    bool
	Missing    bool
	Failed     bool
	HasUser    bool
	SelectedID string
	User       userDetailVM
	Notices    []viewdata.NoticeVM
}

func platformLink(path string) string {
	return viewdata.PlatformURL() + path
}

func noticesVM(ns []dashstate.Notice) []viewdata.NoticeVM {
	if len(ns) == 0 {
		return nil
	}
	out := make([]viewdata.NoticeVM, 0, len(ns))
	for _, n := range ns {
		out = append(out, viewdata.NoticeVM{Level: n.Level.String(), Text: n.Text})
	}
	return out
}

func rowsVM(users []models.UserSummary) []userRow {
	rows := make([]userRow, 0, len(users))
	// Profile links use the username exactly as the platform sent it.
	for _, raw := range users {
		u := htmlsanitize.User(raw)
		rows = append(rows, userRow{
			ID:         u.ID,
			Username:   u.Username,
			Initial:    u.Initial(),
			Email:      u.Email,
			Section:    u.Section,
			GroupName:  u.Group.Name,
			Points:     u.IndividualPoints,
			ProfileURL: platformLink(profilePath + url.PathEscape(raw.Username)),
		})
	}
	return rows
}

func newListVM(id string, st dashstate.State) listVM {
	return listVM{
		ScreenID: id,
		Loading:  st.Busy,
		Query:    string(st.Criterion),
		Rows:     rowsVM(st.Filtered),
		Shown:    len(st.Filtered),
		Total:    len(st.Users),
	}
}

func newPanelVM(id string, st dashstate.State) panelVM {
	return panelVM{
		ScreenID: id,
		Loading:  st.Busy,
		Cards: []cardVM{
			{Label: "Total Users", Value: st.Metrics.TotalUsers},
			{Label: "Total Teams", Value: st.Metrics.TotalGroups},
			{Label: "Total Contests", Value: st.Metrics.TotalContests},
		},
		List:           newListVM(id, st),
		LeaderboardURL: platformLink(leaderboardPath),
		Notices:        noticesVM(st.Notices),
	}
}

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}

func newUserDetailVM(u models.UserSummary) userDetailVM {
	u = htmlsanitize.User(u)
	joined := notSet
	if !u.CreatedAt.IsZero() {
		joined = u.CreatedAt.Format(dateLayout)
	}
	return userDetailVM{
		Username:   u.Username,
		Initial:    u.Initial(),
		Email:      u.Email,
		Section:    orNotSet(u.Section),
		GroupName:  orNotSet(u.Group.Name),
		Points:     u.IndividualPoints,
		Leetcode:   orNotSet(u.LeetcodeUsername),
		Codeforces: orNotSet(u.CodeforcesUsername),
		Joined:     joined,
	}
}

func newDetailVM(id string, st dashstate.State) detailVM {
	d := st.Detail
	vm := detailVM{
		ScreenID:   id,
		Open:       d.Open(),
		Pending:    d.Status == dashstate.DetailPending,
		Missing:    d.Status == dashstate.DetailMissing,
		Failed:     d.Status == dashstate.DetailFailed,
		SelectedID: d.SelectedID,
		Notices:    noticesVM(st.Notices),
	}
	if u, ok := d.Visible(); ok {
		vm.HasUser = true
		vm.User = newUserDetailVM(u)
	}
	return vm
}
