package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/scenario"
)

// MenuModel is the Bubble Tea model for the scenario picker.
type MenuModel struct {
	scenarios []scenario.Scenario
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keys      ListKeyMap
	help      help.Model
	styles    Styles
	quitting  bool
	selected  int // index of the chosen scenario, -1 while browsing
}

// NewMenuModel creates a new menu model.
func NewMenuModel(scenarios []scenario.Scenario, cfg core.RuntimeConfig) MenuModel {
	keys := DefaultListKeyMap()
	keys.Next.SetEnabled(false)
	keys.Prev.SetEnabled(false)
	keys.Back.SetEnabled(false)

	return MenuModel{
		scenarios: scenarios,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keys:      keys,
		help:      help.New(),
		styles:    DefaultStyles(),
		selected:  -1,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.scenarios) > 0 {
			m.selected = m.cursor
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.styles.MenuTitle.Render(centerText("  F A L L I N G   S A N D  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scenario", m.width))
	b.WriteString("\n\n")

	for i, s := range m.scenarios {
		cursor := "  "
		style := m.styles.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.styles.MenuItemActive
		}
		b.WriteString(centerText(style.Render(fmt.Sprintf("%s%s", cursor, s.Name)), m.width))
		b.WriteString("\n")
	}

	if len(m.scenarios) > 0 && m.scenarios[m.cursor].Description != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.styles.MenuDescription.Render(m.scenarios[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.Help.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen scenario index, or -1 if none was chosen.
func (m MenuModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
