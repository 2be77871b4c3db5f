package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/service"
)

// weeklyGoal is the number of sessions per week the dashboard bar fills to.
const weeklyGoal = 5

// FormatDashboard renders totals, this week's activity, BMI and recent sessions.
func FormatDashboard(d *service.Dashboard, now time.Time) string {
	var b strings.Builder

	name := "there"
	if d.Profile != nil && d.Profile.FullName != "" {
		name = d.Profile.FullName
	}
	fmt.Fprintf(&b, "%s\n\n", StyleHeader.Render("Welcome back, "+name+"!"))

	var stats strings.Builder
	fmt.Fprintf(&stats, "%s %d\n", Dim("Workouts:   "), d.Stats.TotalWorkouts)
	fmt.Fprintf(&stats, "%s %d\n", Dim("This week:  "), d.Stats.WeeklyWorkouts)
	fmt.Fprintf(&stats, "%s %d\n", Dim("Calories:   "), d.Stats.TotalCalories)
	fmt.Fprintf(&stats, "%s %s\n", Dim("Time spent: "), FormatDuration(d.Stats.TotalDurationSec))
	fmt.Fprintf(&stats, "%s %s", Dim("Weekly goal:"),
		RenderProgress(float64(d.Stats.WeeklyWorkouts)/weeklyGoal, 20))
	b.WriteString(RenderBox("Overview", stats.String()))
	b.WriteString("\n\n")

	if d.BMI != nil {
		fmt.Fprintf(&b, "%s %s %s\n\n", Dim("BMI:"),
			Bold(fmt.Sprintf("%.2f", d.BMI.BMI)),
			BMIColor(d.BMI.Category).Render(string(d.BMI.Category)))
	} else {
		fmt.Fprintf(&b, "%s\n\n", Dim("Set your height and weight with `repcoach profile set` to see your BMI."))
	}

	b.WriteString(Header("Recent Sessions"))
	b.WriteString("\n")
	if len(d.Recent) == 0 {
		b.WriteString(Dim("No workouts recorded yet."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(historyTable(d.Recent, now))
	return b.String()
}
