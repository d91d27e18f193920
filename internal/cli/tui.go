package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/trusspole/trusspole/pkg/optimize"
	"github.com/trusspole/trusspole/pkg/report"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CandidateListModel - Interactive candidate browsing
// =============================================================================

// CandidateListModel is the bubbletea model for browsing search candidates.
type CandidateListModel struct {
	Candidates []*optimize.Configuration
	Best       *optimize.Configuration
	Cursor     int
	Height     int
	Offset     int
	Detail     *optimize.Configuration
}

// NewCandidateListModel creates a candidate list model from a search result.
func NewCandidateListModel(res *optimize.Result) CandidateListModel {
	return CandidateListModel{
		Candidates: res.Candidates,
		Best:       res.Best,
		Cursor:     0,
		Height:     15,
		Offset:     0,
	}
}

func (m CandidateListModel) Init() tea.Cmd {
	return nil
}

func (m CandidateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail != nil {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter":
				m.Detail = nil
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			c := m.Candidates[m.Cursor]
			if c.Report == nil {
				return m, nil
			}
			m.Detail = c
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CandidateListModel) View() string {
	if m.Detail != nil {
		return m.detailView()
	}
	return m.listView()
}

func (m CandidateListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Candidates"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ members  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Candidates) {
		end = len(m.Candidates)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Candidates[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		best := ""
		if m.Best != nil && c.Index == m.Best.Index {
			best = "★"
		}

		weight := "—"
		if c.Status == optimize.StatusConverged || c.Status == optimize.StatusNonConvergent {
			weight = fmt.Sprintf("%.1f", c.Weight)
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", c.Index),
			fmt.Sprint(c.Diagonals),
			c.Status.String(),
			weight,
			fmt.Sprintf("%d", c.Iterations),
			best,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Diagonals", "Status", "Weight", "Iter", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Candidates) {
				return lipgloss.NewStyle()
			}
			c := m.Candidates[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := statusStyle(c.Status)
			if isCurrent {
				return base.Bold(true)
			}
			if c.Status != optimize.StatusConverged {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Candidates))))

	return b.String()
}

func (m CandidateListModel) detailView() string {
	c := m.Detail
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Candidate #%d %v", c.Index, c.Diagonals)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")
	b.WriteString(report.AssignmentTable(c))
	b.WriteString("\n")
	b.WriteString(report.MemberTable(c))

	return b.String()
}

// browseCandidates runs the interactive candidate browser.
func browseCandidates(res *optimize.Result) error {
	if len(res.Candidates) == 0 {
		return nil
	}
	m := NewCandidateListModel(res)
	_, err := tea.NewProgram(m).Run()
	return err
}
