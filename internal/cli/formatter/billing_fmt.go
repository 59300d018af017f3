package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/intelligence"
)

// FormatBurnRate renders a burn-rate forecast. Spend figures come from the
// records; churn fields come from the advisor.
func FormatBurnRate(r intelligence.Result[intelligence.BurnRateForecast]) string {
	f := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))

	writeField(&b, "Billed total", Money(f.BilledTotal, ""))
	writeField(&b, "Monthly burn", Money(f.MonthlyBurn, ""))
	writeField(&b, "Budget consumed", RenderProgress(f.BudgetConsumed, 20))
	writeField(&b, "Hours used", RenderProgress(f.HoursUtilization, 20)+" "+StatusPill(f.UtilizationStatus))
	remaining := Dim("n/a")
	if f.MonthsRemaining != nil {
		remaining = f.MonthsRemaining.StringFixed(1) + " months"
	}
	writeField(&b, "Runway", remaining)
	writeField(&b, "Churn risk", fmt.Sprintf("%s (%d%%)", RiskIndicator(f.ChurnRisk), f.ChurnProbability))
	b.WriteString("\n")
	if f.Summary != "" {
		fmt.Fprintf(&b, "  %s\n\n", f.Summary)
	}
	writeList(&b, "Drivers", f.Drivers)
	writeList(&b, "Recommendations", f.Recommendations)

	return RenderBox("Burn rate", b.String())
}

// FormatValidationReport renders a contract or invoice review.
func FormatValidationReport(r intelligence.Result[intelligence.ValidationReport]) string {
	v := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))

	verdict := StyleGreen.Render("✔ valid")
	if !v.IsValid {
		verdict = StyleRed.Render("✖ invalid")
	}
	fmt.Fprintf(&b, "  %s %s %s\n\n", Bold(v.EntityType), TruncID(v.EntityID), verdict)
	if v.Summary != "" {
		fmt.Fprintf(&b, "  %s\n\n", v.Summary)
	}

	if len(v.Issues) > 0 {
		rows := make([][]string, 0, len(v.Issues))
		for _, is := range v.Issues {
			rows = append(rows, []string{SeverityBadge(is.Severity), is.Field, is.Message, Dim(string(is.Source))})
		}
		b.WriteString(RenderTable([]string{"Severity", "Field", "Issue", "Source"}, rows))
		b.WriteString("\n")
	}
	writeList(&b, "Suggestions", v.Suggestions)

	return RenderBox("Validation", b.String())
}

// FormatCapacityConflicts renders conflicts as a table.
func FormatCapacityConflicts(r intelligence.Result[[]intelligence.CapacityConflict]) string {
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))
	if len(r.Value) == 0 {
		b.WriteString(StyleGreen.Render("No capacity conflicts.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(r.Value))
	for _, c := range r.Value {
		rows = append(rows, []string{
			c.ResourceName,
			c.PeriodStart + " → " + c.PeriodEnd,
			strings.Join(c.Projects, ", "),
			fmt.Sprintf("%s / %s", Hours(c.AllocatedHours), Hours(c.CapacityHours)),
			SeverityBadge(c.Severity),
		})
	}
	b.WriteString(RenderTable([]string{"Resource", "Period", "Projects", "Booked", "Severity"}, rows))
	for _, c := range r.Value {
		if c.Resolution != "" {
			fmt.Fprintf(&b, "%s %s: %s\n", StyleBlue.Render("→"), c.ResourceName, c.Resolution)
		}
	}
	return b.String()
}
