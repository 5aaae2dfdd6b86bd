package text

import "github.com/charmbracelet/lipgloss"

// Palette mirrors the web page colours.
var (
	Brand   = lipgloss.Color("#ff4081")
	Accent  = lipgloss.Color("#ff9800")
	Heading = lipgloss.Color("#1e3a8a")
	Muted   = lipgloss.Color("#6b7280")
	Danger  = lipgloss.Color("#e53935")
)

// Styles groups the lipgloss styles used for each kind of output line.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Bullet  lipgloss.Style
	Empty   lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the coloured terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Brand).
			Bold(true).
			Underline(true),
		Heading: lipgloss.NewStyle().
			Foreground(Heading).
			Bold(true),
		Bullet: lipgloss.NewStyle().
			PaddingLeft(2),
		Empty: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true),
	}
}

// PlainStyles returns styles that add no escape sequences, for pipes and
// files.
func PlainStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle(),
		Heading: lipgloss.NewStyle(),
		Bullet:  lipgloss.NewStyle().PaddingLeft(2),
		Empty:   lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
	}
}
