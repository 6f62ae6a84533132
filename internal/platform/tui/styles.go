package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the visual styles for HUD, menu and history screens.
type Styles struct {
	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDPaused    lipgloss.Style
	HUDError     lipgloss.Style
	Help         lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// History styles
	Panel lipgloss.Style
	Empty lipgloss.Style
}

// DefaultStyles returns the default visual styles.
func DefaultStyles() Styles {
	return Styles{
		HUDTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDPaused:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		HUDError:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		MenuTitle:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
	}
}
