package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/intelligence"
)

// FormatCanvasInsights groups canvas insights under their block.
func FormatCanvasInsights(r intelligence.Result[[]intelligence.CanvasInsight]) string {
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))
	if len(r.Value) == 0 {
		b.WriteString(Dim("  No insights.\n"))
	}
	for _, block := range domain.CanvasBlocks {
		var inBlock []intelligence.CanvasInsight
		for _, in := range r.Value {
			if in.Block == block {
				inBlock = append(inBlock, in)
			}
		}
		if len(inBlock) == 0 {
			continue
		}
		b.WriteString(Header(domain.BlockLabels[block]))
		b.WriteString("\n")
		for _, in := range inBlock {
			fmt.Fprintf(&b, "  %s %s %s\n", PriorityBadge(in.Priority), Bold(in.Title), Dim("("+in.Type+")"))
			if in.Description != "" {
				fmt.Fprintf(&b, "    %s\n", in.Description)
			}
			if in.Recommendation != "" {
				fmt.Fprintf(&b, "    %s %s\n", StyleGreen.Render("→"), in.Recommendation)
			}
		}
		b.WriteString("\n")
	}
	return RenderBox("Business model canvas", b.String())
}

func FormatBlockSuggestion(r intelligence.Result[intelligence.BlockSuggestion]) string {
	s := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))
	if s.Rationale != "" {
		fmt.Fprintf(&b, "  %s\n\n", s.Rationale)
	}
	writeList(&b, "Suggestions", s.Suggestions)
	writeList(&b, "Questions to ask", s.Questions)
	return RenderBox(domain.BlockLabels[s.Block], b.String())
}

// FormatPerformanceAnalysis renders one scorecard perspective with its metrics.
func FormatPerformanceAnalysis(r intelligence.Result[intelligence.PerformanceAnalysis]) string {
	p := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))

	writeField(&b, "Overall", StatusPill(p.OverallStatus))
	b.WriteString("\n")
	if len(p.Metrics) > 0 {
		b.WriteString(metricTable(p.Metrics))
		b.WriteString("\n")
	}
	if p.Summary != "" {
		fmt.Fprintf(&b, "  %s\n\n", p.Summary)
	}
	writeList(&b, "Strengths", p.Strengths)
	writeList(&b, "Weaknesses", p.Weaknesses)
	writeList(&b, "Recommendations", p.Recommendations)

	return RenderBox(domain.PerspectiveLabels[p.PerspectiveType]+" perspective", b.String())
}

func FormatStrategicInsights(r intelligence.Result[[]intelligence.StrategicInsight]) string {
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))
	title := "Strategic insights"
	if len(r.Value) > 0 {
		title = domain.PerspectiveLabels[r.Value[0].PerspectiveType] + " insights"
	} else {
		b.WriteString(Dim("  No insights.\n"))
	}
	for _, in := range r.Value {
		fmt.Fprintf(&b, "%s %s\n", PriorityBadge(in.Priority), Bold(in.Title))
		if in.Description != "" {
			fmt.Fprintf(&b, "  %s\n", in.Description)
		}
		for _, init := range in.Initiatives {
			fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("→"), init)
		}
		b.WriteString("\n")
	}
	return RenderBox(title, b.String())
}

// FormatForceAnalysis renders one of the five forces.
func FormatForceAnalysis(r intelligence.Result[intelligence.ForceAnalysis]) string {
	f := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))

	writeField(&b, "Intensity", intensity(f.Intensity))
	writeField(&b, "Score", scoreDots(f.Score))
	b.WriteString("\n")
	if f.Summary != "" {
		fmt.Fprintf(&b, "  %s\n\n", f.Summary)
	}
	writeList(&b, "Key factors", f.KeyFactors)
	writeList(&b, "Threats", f.Threats)
	writeList(&b, "Opportunities", f.Opportunities)
	writeList(&b, "Recommendations", f.Recommendations)

	return RenderBox(domain.ForceLabels[f.ForceType], b.String())
}

func FormatBenchmark(r intelligence.Result[intelligence.BenchmarkComparison]) string {
	c := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))

	writeField(&b, "Industry", c.Industry)
	writeField(&b, "Attractiveness", intensity(c.OverallAttractiveness))
	if c.Position != "" {
		writeField(&b, "Position", c.Position)
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(c.ForceScores))
	for _, fs := range c.ForceScores {
		rows = append(rows, []string{domain.ForceLabels[fs.ForceType], scoreDots(fs.Score)})
	}
	b.WriteString(RenderTable([]string{"Force", "Score"}, rows))
	b.WriteString("\n")
	writeList(&b, "Strengths", c.Strengths)
	writeList(&b, "Gaps", c.Gaps)
	writeList(&b, "Recommendations", c.Recommendations)

	return RenderBox("Industry benchmark", b.String())
}

// FormatReadiness renders an ADKAR readiness assessment with stage scores.
func FormatReadiness(r intelligence.Result[intelligence.ReadinessAnalysis]) string {
	a := r.Value
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))

	writeField(&b, "Stage", domain.StageLabels[a.Stage])
	writeField(&b, "Readiness", RenderProgress(a.ReadinessScore, 20)+" "+Dim(a.ReadinessLevel))
	if a.BarrierPoint != "" {
		writeField(&b, "Barrier point", StyleRed.Render(domain.StageLabels[a.BarrierPoint]))
	}
	b.WriteString("\n")

	if len(a.StageScores) > 0 {
		rows := make([][]string, 0, len(a.StageScores))
		for _, s := range a.StageScores {
			rows = append(rows, []string{
				domain.StageLabels[s.Stage],
				fmt.Sprintf("%.1f / 5", s.CurrentValue),
				RenderProgress(s.ProgressPercentage, 10),
				StatusPill(s.Status),
			})
		}
		b.WriteString(RenderTable([]string{"Stage", "Score", "Progress", "Status"}, rows))
		b.WriteString("\n")
	}
	if a.Summary != "" {
		fmt.Fprintf(&b, "  %s\n\n", a.Summary)
	}
	writeList(&b, "Barriers", a.Barriers)
	writeList(&b, "Enablers", a.Enablers)
	writeList(&b, "Recommendations", a.Recommendations)

	return RenderBox("Change readiness", b.String())
}

func FormatStageRecommendations(r intelligence.Result[[]intelligence.StageRecommendation]) string {
	var b strings.Builder
	b.WriteString(DegradedNotice(r.Degraded))
	if len(r.Value) == 0 {
		b.WriteString(Dim("  No recommendations.\n"))
	}
	for _, rec := range r.Value {
		fmt.Fprintf(&b, "%s %s %s\n", PriorityBadge(rec.Priority), Bold(rec.Title), Dim("("+domain.StageLabels[rec.Stage]+")"))
		if rec.Description != "" {
			fmt.Fprintf(&b, "  %s\n", rec.Description)
		}
		for _, act := range rec.Actions {
			fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("→"), act)
		}
		b.WriteString("\n")
	}
	return RenderBox("Stage recommendations", b.String())
}

func intensity(level string) string {
	switch level {
	case "high":
		return StyleRed.Render(level)
	case "medium":
		return StyleYellow.Render(level)
	case "low":
		return StyleGreen.Render(level)
	default:
		return Dim(level)
	}
}

// scoreDots renders a 1-5 score as filled and empty dots.
func scoreDots(score int) string {
	score = min(max(score, 0), 5)
	return StylePurple.Render(strings.Repeat("●", score)) + Dim(strings.Repeat("○", 5-score)) +
		fmt.Sprintf(" %d/5", score)
}
