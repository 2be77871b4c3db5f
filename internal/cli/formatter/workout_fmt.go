package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/service"
)

// FormatCatalog renders the workout catalog as a table.
func FormatCatalog(exercises []domain.Exercise) string {
	if len(exercises) == 0 {
		return Dim("No workouts available.") + "\n"
	}
	rows := make([][]string, 0, len(exercises))
	for _, e := range exercises {
		rows = append(rows, []string{
			StyleDim.Render(e.ID),
			Bold(e.Name),
			StylePurple.Render(string(e.Type)),
			DifficultyBadge(e.Difficulty),
			fmt.Sprintf("%d min", e.DurationMin),
			fmt.Sprintf("%.0f cal/min", e.CaloriesPerMinute),
			strconv.Itoa(e.DefaultReps),
		})
	}
	var b strings.Builder
	b.WriteString(Header("Suggested Workouts"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"ID", "NAME", "TYPE", "LEVEL", "TIME", "BURN", "REPS"}, rows))
	b.WriteString(Dim("Start one with: repcoach perform <id|name>"))
	b.WriteString("\n")
	return b.String()
}

const reasonWidth = 72

// FormatSuggestions renders the coach's workout picks.
func FormatSuggestions(items []service.Suggestion) string {
	if len(items) == 0 {
		return Dim("The coach had no suggestions.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Coach Suggestions"))
	b.WriteString("\n")
	for i, s := range items {
		fmt.Fprintf(&b, "%s %s %s\n",
			StyleHeader.Render(fmt.Sprintf("%d.", i+1)),
			Bold(s.Exercise.Name),
			StyleGreen.Render(fmt.Sprintf("× %d reps", s.Reps)))
		if s.Reason != "" {
			fmt.Fprintf(&b, "   %s\n", Dim(Truncate(s.Reason, reasonWidth)))
		}
	}
	return b.String()
}
