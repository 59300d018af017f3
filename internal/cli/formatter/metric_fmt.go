package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/alexanderramin/compass/internal/service"
)

// FormatDerivedMetric renders the figures for a single current/target pair.
func FormatDerivedMetric(m kpi.DerivedMetric) string {
	var b strings.Builder
	writeField(&b, "Current", number(m.CurrentValue))
	writeField(&b, "Target", number(m.TargetValue))
	writeField(&b, "Progress", RenderProgress(m.ProgressPercentage, 20))
	writeField(&b, "Variance", fmt.Sprintf("%s (%+d%%)", signed(m.Variance), m.VariancePercentage))
	writeField(&b, "Status", StatusPill(m.Status))
	writeField(&b, "Trend", TrendIcon(m.Trend)+" "+string(m.Trend))
	return b.String()
}

// FormatScorecardMetrics renders each perspective that has metrics.
func FormatScorecardMetrics(sm *service.ScorecardMetrics) string {
	var b strings.Builder
	if sm.Period != "" {
		writeField(&b, "Period", sm.Period)
		b.WriteString("\n")
	}
	if len(sm.Perspectives) == 0 {
		b.WriteString(Dim("  No metrics.\n"))
	}
	for _, p := range sm.Perspectives {
		b.WriteString(Header(domain.PerspectiveLabels[p.Perspective]))
		b.WriteString("\n")
		writeField(&b, "Overall", StatusPill(p.OverallStatus))
		b.WriteString(metricTable(p.Metrics))
		b.WriteString("\n")
	}
	return RenderBox(sm.Name, b.String())
}

func metricTable(metrics []intelligence.MetricAssessment) string {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			m.Name,
			number(m.CurrentValue) + unit(m.Unit),
			number(m.TargetValue) + unit(m.Unit),
			RenderProgress(m.ProgressPercentage, 10),
			StatusPill(m.Status),
			TrendIcon(m.Trend),
		})
	}
	return RenderTable([]string{"Metric", "Current", "Target", "Progress", "Status", "Trend"}, rows)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func signed(v float64) string {
	if v > 0 {
		return "+" + number(v)
	}
	return number(v)
}

func unit(u string) string {
	if u == "" || u == "%" {
		return u
	}
	return " " + u
}
