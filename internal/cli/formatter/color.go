package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
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
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BMIColor returns the style for a BMI category.
func BMIColor(cat domain.BMICategory) lipgloss.Style {
	switch cat {
	case domain.BMINormal:
		return StyleGreen
	case domain.BMIUnderweight, domain.BMIOverweight:
		return StyleYellow
	case domain.BMIObese:
		return StyleRed
	default:
		return StyleDim
	}
}

// PhasePill returns a colored indicator for a session phase.
func PhasePill(p tracker.Phase) string {
	switch p {
	case tracker.PhaseRunning:
		return StyleGreen.Render("● RUNNING")
	case tracker.PhaseCompleted:
		return StyleBlue.Render("✔ COMPLETED")
	case tracker.PhaseStopped:
		return StyleYellow.Render("■ STOPPED")
	default:
		return StyleDim.Render("○ IDLE")
	}
}

// DifficultyBadge colors an exercise difficulty.
func DifficultyBadge(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyBeginner:
		return StyleGreen.Render(string(d))
	case domain.DifficultyIntermediate:
		return StyleYellow.Render(string(d))
	case domain.DifficultyAdvanced:
		return StyleRed.Render(string(d))
	default:
		return StyleDim.Render("--")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
