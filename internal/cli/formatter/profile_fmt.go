package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/service"
)

// FormatProfile renders the stored profile.
func FormatProfile(p *domain.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("User:  "), Bold(p.UserID))
	fmt.Fprintf(&b, "%s %s\n", Dim("Name:  "), orDash(p.FullName))
	fmt.Fprintf(&b, "%s %s\n", Dim("Email: "), orDash(p.Email))
	age := ""
	if p.Age > 0 {
		age = fmt.Sprintf("%d", p.Age)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Age:   "), orDash(age))
	height, weight := "", ""
	if p.HeightCm > 0 {
		height = fmt.Sprintf("%.1f cm", p.HeightCm)
	}
	if p.WeightKg > 0 {
		weight = fmt.Sprintf("%.1f kg", p.WeightKg)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Height:"), orDash(height))
	fmt.Fprintf(&b, "%s %s", Dim("Weight:"), orDash(weight))
	if bmi, err := p.BMI(); err == nil {
		cat := domain.CategorizeBMI(bmi)
		fmt.Fprintf(&b, "\n%s %.2f %s", Dim("BMI:   "), bmi, BMIColor(cat).Render(string(cat)))
	}
	return RenderBox("Profile", b.String()) + "\n"
}

// FormatBMI renders a BMI report.
func FormatBMI(r *service.BMIReport) string {
	return fmt.Sprintf("%s %s %s\n%s\n",
		Dim("Your BMI is"),
		Bold(fmt.Sprintf("%.2f", r.BMI)),
		BMIColor(r.Category).Render("("+string(r.Category)+")"),
		Dim(fmt.Sprintf("height %.1f cm · weight %.1f kg", r.HeightCm, r.WeightKg)))
}
