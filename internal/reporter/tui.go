package reporter

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ppiankov/sortforge/internal/classify"
)

// TUI styles
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	extStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	keepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// PlanModel is the Bubbletea model for the interactive plan preview.
type PlanModel struct {
	root   string
	rows   []PlanRow
	groups []classify.Group

	expanded     bool
	scrollOffset int
	width        int
	height       int
}

// NewPlanModel creates a plan preview for the given groups.
func NewPlanModel(root string, groups []classify.Group) PlanModel {
	return PlanModel{
		root:   root,
		rows:   BuildPlan(root, groups),
		groups: groups,
	}
}

// Init implements tea.Model.
func (m PlanModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "e", " ":
			m.expanded = !m.expanded
			m.scrollOffset = 0

		case "j", "down":
			m.scrollDown(1)

		case "k", "up":
			m.scrollUp(1)

		case "g", "home":
			m.scrollOffset = 0

		case "G", "end":
			m.scrollOffset = m.maxScroll()

		case "pgdown":
			m.scrollDown(m.visibleLines())

		case "pgup":
			m.scrollUp(m.visibleLines())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m *PlanModel) scrollDown(n int) {
	m.scrollOffset += n
	if max := m.maxScroll(); m.scrollOffset > max {
		m.scrollOffset = max
	}
}

func (m *PlanModel) scrollUp(n int) {
	m.scrollOffset -= n
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m PlanModel) visibleLines() int {
	// header(2) + blank(1) + help(1) = 4 reserved lines
	avail := m.height - 4
	if avail < 3 {
		return 3
	}
	return avail
}

func (m PlanModel) maxScroll() int {
	total := len(m.lines())
	vis := m.visibleLines()
	if total <= vis {
		return 0
	}
	return total - vis
}

// View implements tea.Model.
func (m PlanModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	var files, folders int
	for _, r := range m.rows {
		files += r.Files
		if r.Extension != "" {
			folders++
		}
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("sortforge plan — %s", m.root)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d files, %d destination folders", files, folders)))
	b.WriteString("\n\n")

	lines := m.lines()
	vis := m.visibleLines()
	start := m.scrollOffset
	if start > len(lines) {
		start = len(lines)
	}
	end := start + vis
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		b.WriteString(lines[i])
		b.WriteString("\n")
	}

	// pad to fill screen
	for i := 3 + (end - start); i < m.height-1; i++ {
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("  ↑↓/jk: scroll  g/G: top/bottom  e: files  q: quit"))

	return b.String()
}

func (m PlanModel) lines() []string {
	var lines []string
	for i, r := range m.rows {
		if r.Extension == "" {
			lines = append(lines, keepStyle.Render(fmt.Sprintf("  %-12s %4d files  %8s  left in place", "(none)", r.Files, humanize.Bytes(r.Bytes))))
		} else {
			lines = append(lines, extStyle.Render(fmt.Sprintf("  %-12s %4d files  %8s  → %s", r.Extension, r.Files, humanize.Bytes(r.Bytes), r.Destination)))
		}
		if m.expanded {
			for _, f := range m.groups[i].Members {
				lines = append(lines, dimStyle.Render("      "+f.Name()))
			}
		}
	}
	return lines
}
