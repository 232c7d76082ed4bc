package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the editor.
type Theme struct {
	// UseBlockColors paints blocks with their type color. When false only
	// glyphs are drawn.
	UseBlockColors bool

	Air     lipgloss.Style
	Cursor  lipgloss.Style
	Flash   lipgloss.Style // Blocks destroyed by the last blast
	Preview lipgloss.Style // Blocks the next blast would destroy

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDStatus    lipgloss.Style
	HUDError     lipgloss.Style
	Help         lipgloss.Style

	// History table styles
	TableTitle  lipgloss.Style
	TableBorder lipgloss.Style
	TableEmpty  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		UseBlockColors: true,

		Air:     lipgloss.NewStyle(),
		Cursor:  lipgloss.NewStyle().Reverse(true),
		Flash:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("202")), // Yellow on orange
		Preview: lipgloss.NewStyle().Background(lipgloss.Color("52")),                                    // Dark red

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDStatus:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDError:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		TableBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		TableEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme that ignores block colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.UseBlockColors = false
	theme.Flash = lipgloss.NewStyle().Reverse(true).Bold(true)
	theme.Preview = lipgloss.NewStyle().Underline(true)
	theme.HUDTitle = lipgloss.NewStyle().Bold(true)
	theme.HUDError = lipgloss.NewStyle().Bold(true)
	return theme
}

// ThemeByName returns the theme for a display.theme config value.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return strings.Repeat(" ", (width-textWidth)/2) + text
}
