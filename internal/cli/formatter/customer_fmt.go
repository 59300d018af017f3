package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/service"
)

// FormatHealth renders a customer health analysis.
func FormatHealth(r intelligence.Result[intelligence.HealthAnalysis]) string {
	h := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))

	writeField(&b, "Health score", RenderProgress(h.HealthScore, 20))
	writeField(&b, "Risk", RiskIndicator(h.RiskLevel))
	b.WriteString("\n")
	if h.Summary != "" {
		fmt.Fprintf(&b, "  %s\n\n", h.Summary)
	}
	writeList(&b, "Risk factors", h.RiskFactors)
	writeList(&b, "Positive signals", h.PositiveSignals)
	writeList(&b, "Recommendations", h.Recommendations)

	return RenderBox("Customer health", b.String())
}

// FormatCustomerInsights renders insights ordered as returned.
func FormatCustomerInsights(r intelligence.Result[[]intelligence.CustomerInsight]) string {
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))
	if len(r.Value) == 0 {
		b.WriteString(Dim("  No insights.\n"))
	}
	for _, in := range r.Value {
		fmt.Fprintf(&b, "%s %s %s\n", PriorityBadge(in.Priority), Bold(in.Title), Dim("("+in.Type+")"))
		if in.Description != "" {
			fmt.Fprintf(&b, "  %s\n", in.Description)
		}
		if in.Action != "" {
			fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("→"), in.Action)
		}
		b.WriteString("\n")
	}
	return RenderBox("Customer insights", b.String())
}

// FormatPortfolio renders one row per customer in portfolio order.
func FormatPortfolio(entries []service.PortfolioEntry) string {
	if len(entries) == 0 {
		return Dim("No customers.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		h := e.Analysis.Value
		source := "advisor"
		if e.Analysis.Degraded {
			source = StyleYellow.Render("default")
		}
		rows = append(rows, []string{
			TruncID(e.CustomerID),
			e.CustomerName,
			RenderProgress(h.HealthScore, 10),
			RiskIndicator(h.RiskLevel),
			source,
		})
	}
	return RenderTable([]string{"ID", "Customer", "Health", "Risk", "Source"}, rows)
}
