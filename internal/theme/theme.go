// Package theme holds the lipgloss styles used for prompts, errors and help.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Catppuccin Mocha accents
const (
	green   = lipgloss.Color("#a6e3a1")
	red     = lipgloss.Color("#f38ba8")
	yellow  = lipgloss.Color("#f9e2af")
	blue    = lipgloss.Color("#89b4fa")
	mauve   = lipgloss.Color("#cba6f7")
	overlay = lipgloss.Color("#7f849c")
)

// DefaultWidth is used when the terminal size cannot be determined.
const DefaultWidth = 80

// Theme groups the styles a session renders with.
type Theme struct {
	Prompt  lipgloss.Style
	Error   lipgloss.Style
	Notice  lipgloss.Style
	Title   lipgloss.Style
	Heading lipgloss.Style
	Command lipgloss.Style
	Param   lipgloss.Style
	Muted   lipgloss.Style
}

// Default returns the colored theme.
func Default() Theme {
	return Theme{
		Prompt:  lipgloss.NewStyle().Foreground(green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(red),
		Notice:  lipgloss.NewStyle().Foreground(yellow),
		Title:   lipgloss.NewStyle().Foreground(mauve).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(blue).Bold(true),
		Command: lipgloss.NewStyle().Foreground(green),
		Param:   lipgloss.NewStyle().Foreground(yellow),
		Muted:   lipgloss.NewStyle().Foreground(overlay).Italic(true),
	}
}

// Plain returns a theme with no styling at all.
func Plain() Theme {
	s := lipgloss.NewStyle()
	return Theme{Prompt: s, Error: s, Notice: s, Title: s, Heading: s, Command: s, Param: s, Muted: s}
}

// Current returns Plain when color is disabled, Default otherwise.
func Current() Theme {
	if NoColorEnabled() {
		return Plain()
	}
	return Default()
}

// NoColorEnabled reports whether colored output is disabled, either through
// the NO_COLOR convention, REPLKIT_NO_COLOR, or a colorless terminal profile.
func NoColorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	if v := os.Getenv("REPLKIT_NO_COLOR"); v != "" && v != "0" {
		return true
	}
	return lipgloss.ColorProfile() == termenv.Ascii
}

// Apply disables colors process-wide when noColor is set.
func Apply(noColor bool) {
	if !noColor {
		return
	}
	os.Setenv("REPLKIT_NO_COLOR", "1")
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Width returns the column count of the terminal attached to f, or
// DefaultWidth when f is not a terminal.
func Width(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
