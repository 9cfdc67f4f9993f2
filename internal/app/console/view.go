package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/arenadash/internal/domain/models"
)

const (
	notSet     = "Not set"
	dateLayout = "Jan 2, 2006"

	// rows reserved for header, cards, search, footer and help
	chromeRows  = 14
	minListRows = 5
)

// View renders the dashboard.
func (m Model) View() string {
	if m.state.Closed {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin Dashboard"))
	if m.state.Busy {
		b.WriteString("  " + m.spinner.View() + dimStyle.Render(" loading"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewCards())
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	list := m.viewList()
	if u, ok := m.state.Detail.Visible(); ok || m.state.Detail.Open() {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.viewDetail(u, ok))
	}
	b.WriteString(list)
	b.WriteString("\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("Showing %d of %d users", len(m.state.Filtered), len(m.state.Users))))
	b.WriteString("\n")

	if line := m.viewNotice(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewCards() string {
	card := func(label string, v int) string {
		return cardStyle.Render(dimStyle.Render(label) + "\n" + cardValueStyle.Render(strconv.Itoa(v)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Users", m.state.Metrics.TotalUsers), " ",
		card("Total Teams", m.state.Metrics.TotalGroups), " ",
		card("Total Contests", m.state.Metrics.TotalContests),
	)
}

func (m Model) listRows() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-chromeRows, minListRows)
}

func (m Model) viewList() string {
	users := m.state.Filtered
	if len(users) == 0 {
		if m.state.Busy {
			return dimStyle.Render("Loading users...")
		}
		return dimStyle.Render("No users found")
	}

	rows := m.listRows()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(users))

	var b strings.Builder
	for i := start; i < end; i++ {
		u := htmlsanitize.User(users[i])
		line := fmt.Sprintf("%-20s %-10s %6d  %s", truncate(u.Username, 20), truncate(u.Section, 10), u.IndividualPoints, u.Email)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewDetail(u models.UserSummary, visible bool) string {
	d := m.state.Detail
	var body string
	switch {
	case d.Status == dashstate.DetailPending:
		body = m.spinner.View() + " Loading user..."
	case d.Status == dashstate.DetailMissing:
		body = errorStyle.Render(dashstate.TextNotFound)
	case visible:
		u = htmlsanitize.User(u)
		joined := notSet
		if !u.CreatedAt.IsZero() {
			joined = u.CreatedAt.Format(dateLayout)
		}
		body = strings.Join([]string{
			titleStyle.Render(u.Username),
			u.Email,
			"",
			"Section     " + orNotSet(u.Section),
			"Team        " + orNotSet(u.Group.Name),
			"Points      " + strconv.Itoa(u.IndividualPoints),
			"LeetCode    " + orNotSet(u.LeetcodeUsername),
			"Codeforces  " + orNotSet(u.CodeforcesUsername),
			"Joined      " + joined,
		}, "\n")
	default:
		body = errorStyle.Render(dashstate.TextFailure)
	}
	return detailStyle.Render(body)
}

func (m Model) viewNotice() string {
	if !m.haveNotice {
		return ""
	}
	if m.notice.Level == dashstate.NoticeError {
		return errorStyle.Render(m.notice.Text)
	}
	return successStyle.Render(m.notice.Text)
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSet
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
