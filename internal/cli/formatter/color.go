package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ClassificationStyle returns the style associated with a folder
// classification.
func ClassificationStyle(c domain.Classification) lipgloss.Style {
	switch c {
	case domain.ClassPro:
		return StyleGreen
	case domain.ClassPerso:
		return StyleBlue
	case domain.ClassPending:
		return StyleYellow
	case domain.ClassOff:
		return StyleDim
	default:
		return StyleFg
	}
}

// Classification renders a colored classification label.
func Classification(c domain.Classification) string {
	return ClassificationStyle(c).Render(string(c))
}

// PushedMark renders the pushed flag as a colored glyph.
func PushedMark(pushed bool) string {
	if pushed {
		return StyleGreen.Render("✓")
	}
	return StyleYellow.Render("·")
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
