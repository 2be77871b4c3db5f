package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
)

// FormatHistory renders exercise records newest first.
func FormatHistory(records []*domain.ExerciseRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No workouts recorded yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Exercise History"))
	b.WriteString("\n")
	b.WriteString(historyTable(records, now))

	reps, cal, sec := 0, 0, 0
	for _, r := range records {
		reps += r.Reps
		cal += r.Calories
		sec += r.DurationSec
	}
	fmt.Fprintf(&b, "%s %d sessions · %d reps · %d cal · %s\n",
		Dim("Total:"), len(records), reps, cal, FormatDuration(sec))
	return b.String()
}

func historyTable(records []*domain.ExerciseRecord, now time.Time) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			HumanDate(r.CompletedAt, now),
			Bold(r.ExerciseType),
			strconv.Itoa(r.Reps),
			FormatDuration(r.DurationSec),
			strconv.Itoa(r.Calories),
		})
	}
	return RenderTable([]string{"DATE", "EXERCISE", "REPS", "DURATION", "CAL"}, rows)
}
