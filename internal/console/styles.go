package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains styling for console output
type Styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Card    lipgloss.Style
	Player  lipgloss.Style
	Dealer  lipgloss.Style
}

// NewStyles creates the table styles for output written to w. With noColor
// set every style renders plain text.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1B5E20")).
			Bold(true),
		Prompt:  r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Card:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Player:  r.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
		Dealer:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}
