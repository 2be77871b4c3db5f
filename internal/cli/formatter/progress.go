package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar turns green once the target is reached.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	style := StyleYellow
	if pct >= 1 {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar(pct, width)), pct*100)
}

// RenderRepBar renders "[████░░] 4/10 reps".
func RenderRepBar(reps, assigned, width int) string {
	frac := 0.0
	if assigned > 0 {
		frac = float64(reps) / float64(assigned)
	}
	style := StyleYellow
	if reps >= assigned {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %d/%d reps", style.Render(bar(clamp01(frac), width)), reps, assigned)
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
