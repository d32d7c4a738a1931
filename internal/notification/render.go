package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/smallbiznis/dentalpay/internal/observability/metrics"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/smallbiznis/dentalpay/pkg/stats"
)

const (
	Subject     = "New Dentist Survey Submission"
	placeholder = "-"
)

//go:embed templates/submission.html
var templateFS embed.FS

var submissionTemplate = template.Must(template.ParseFS(templateFS, "templates/submission.html"))

type row struct {
	Label string
	Value string
}

type submissionView struct {
	Title string
	Rows  []row
}

// Render produces the HTML notification body for a stored submission.
func Render(record salarydomain.SalaryRecord) (string, error) {
	view := submissionView{
		Title: Subject,
		Rows: []row{
			{"Specialty", orDash(record.Specialty)},
			{"Sub-specialty", orDash(record.SubSpecialty)},
			{"Years of Experience", strconv.Itoa(record.YearsOfExperience)},
			{"State", orDash(record.State)},
			{"City", orDash(record.City)},
			{"Practice Setting", orDash(record.PracticeSetting)},
			{"Compensation Type", orDash(record.CompensationType)},
			{"Annual Base Salary", "$" + FormatThousands(record.BaseSalary)},
			{"Bonus", optionalAmount(record.Bonus)},
			{"Average Hours/Week", formatNumber(record.HoursWorked)},
			{"PTO Weeks", optionalNumber(record.PTOWeeks)},
			{"Satisfaction Level", orDash(string(record.SatisfactionLevel))},
			{"Choose Specialty Again", orDash(record.WouldChooseSpecialtyAgain)},
			{"Improvement Insight", orDash(record.InsightsImprovement)},
			{"Work-Life Balance", orDash(record.InsightsWorkLifeBalance)},
			{"Production %", orDash(record.ProductionPercentage)},
		},
	}

	var body bytes.Buffer
	if err := submissionTemplate.Execute(&body, view); err != nil {
		return "", fmt.Errorf("%w: %v", metrics.ErrRender, err)
	}
	return body.String(), nil
}

// FormatThousands renders v with comma digit grouping and at most two decimals, e.g. 185000 -> "185,000".
func FormatThousands(v float64) string {
	s := strconv.FormatFloat(stats.Round(v, 2), 'f', -1, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalNumber(v *float64) string {
	if v == nil {
		return placeholder
	}
	return formatNumber(*v)
}

func optionalAmount(v *float64) string {
	if v == nil {
		return placeholder
	}
	return "$" + FormatThousands(*v)
}
