package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sand/internal/scenario"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show scenario sidebar
	sidebarWidth       = 20  // Width of scenario sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryModel is the Bubble Tea model for browsing run history.
type HistoryModel struct {
	scenarios   []scenario.Info
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       *storage.ScenarioStats
	table       table.Model
	help        help.Model
	keys        ListKeyMap
	styles      Styles
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history browser starting at the scenario
// named start, or the first scenario when start is empty or unknown.
func NewHistoryModel(store *storage.Store, scenarios []scenario.Info, start string, width, height int) HistoryModel {
	keys := DefaultListKeyMap()
	keys.Select.SetEnabled(false)
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		scenarios:   scenarios,
		store:       store,
		keys:        keys,
		help:        h,
		styles:      DefaultStyles(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, s := range scenarios {
		if s.ID == start {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	if len(m.scenarios) > 0 {
		m.loadRuns(m.scenarios[m.cursor].ID)
	}

	return m
}

// createTable creates a new table sized for the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Seed", Width: 20},
		{Title: "Size", Width: 9},
		{Title: "Ticks", Width: 8},
		{Title: "Moves", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the history of one scenario.
func (m *HistoryModel) loadRuns(id string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.RunsForScenario(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.ScenarioStats(id); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Moves),
			r.Duration().Round(100 * time.Millisecond).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY"
	if len(m.scenarios) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.scenarios[m.cursor].Name)
	}
	b.WriteString(m.styles.MenuTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := m.styles.Panel.Render(m.renderTableContent())
	if m.showSidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content)
	}
	b.WriteString(content)
	b.WriteString("\n")

	if m.stats != nil && m.stats.Runs > 0 {
		b.WriteString(m.styles.HUDValue.Render(fmt.Sprintf(
			"%d runs  %d ticks total  %.0f avg  %d longest",
			m.stats.Runs, m.stats.TotalTicks, m.stats.AvgTicks, m.stats.MaxTicks,
		)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar renders the scenario list.
func (m HistoryModel) renderSidebar() string {
	style := m.styles.Panel.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Scenarios\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenarios {
		cursor := "  "
		item := m.styles.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			item = m.styles.HUDTitle
		}

		name := s.Name
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(item.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return style.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return m.styles.Empty.Render("No runs recorded yet.\nRun this scenario to start its history!")
	}
	return m.table.View()
}

// Runs returns the loaded runs for the selected scenario.
func (m HistoryModel) Runs() []storage.RunRecord {
	return m.runs
}

// Current returns the selected scenario ID.
func (m HistoryModel) Current() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.cursor].ID
}

// RunHistory runs the history screen.
func RunHistory(store *storage.Store, scenarios []scenario.Info, start string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, scenarios, start, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
