package topfiles

import "github.com/charmbracelet/lipgloss"

// Colors used in the report browser.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
	ColorError   = lipgloss.Color("#EF4444") // Red
)

// Styles holds the styles for the report browser.
type Styles struct {
	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	ColumnHead  lipgloss.Style
	Count       lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),
		ColumnHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted),
		Count: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
	}
}
