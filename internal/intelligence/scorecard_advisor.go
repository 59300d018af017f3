package intelligence

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

// ScorecardAdvisor reviews Balanced Scorecard perspectives.
type ScorecardAdvisor interface {
	// AnalyzePerspective reviews the metrics of one perspective.
	AnalyzePerspective(ctx context.Context, scorecard *domain.Scorecard, perspective domain.Perspective) Result[PerformanceAnalysis]

	// StrategicInsights proposes strategic moves for one perspective in the
	// context of the whole scorecard.
	StrategicInsights(ctx context.Context, scorecard *domain.Scorecard, perspective domain.Perspective) Result[[]StrategicInsight]
}

type scorecardAdvisor struct {
	engine
}

// NewScorecardAdvisor creates a ScorecardAdvisor backed by an LLM client.
func NewScorecardAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) ScorecardAdvisor {
	return &scorecardAdvisor{engine: newEngine(client, observer, log)}
}

func (a *scorecardAdvisor) AnalyzePerspective(ctx context.Context, sc *domain.Scorecard, perspective domain.Perspective) Result[PerformanceAnalysis] {
	metrics := sc.MetricsFor(perspective)
	assessments := AssessMetrics(metrics)
	overall := OverallStatus(metrics)

	var p promptBuilder
	p.line("%s", BuildScorecardPrompt(sc))
	p.section("Perspective to analyze")
	p.field("Perspective", domain.PerspectiveLabels[perspective])
	p.field("Overall status", string(overall))

	return run(ctx, a.engine, advisory[PerformanceAnalysis]{
		task:     llm.TaskScorecard,
		system:   perspectiveSystemPrompt,
		prompt:   p.String(),
		shape:    llm.ShapeObject,
		fallback: func() PerformanceAnalysis { return FallbackPerformanceAnalysis(sc.ID, perspective) },
		finalize: func(r *PerformanceAnalysis) {
			r.ScorecardID = sc.ID
			r.PerspectiveType = perspective
			r.OverallStatus = overall
			r.Metrics = assessments
			r.Strengths = emptyIfNil(r.Strengths)
			r.Weaknesses = emptyIfNil(r.Weaknesses)
			r.Recommendations = emptyIfNil(r.Recommendations)
		},
	})
}

func (a *scorecardAdvisor) StrategicInsights(ctx context.Context, sc *domain.Scorecard, perspective domain.Perspective) Result[[]StrategicInsight] {
	var p promptBuilder
	p.line("%s", BuildScorecardPrompt(sc))
	p.section("Perspective to focus on")
	p.field("Perspective", domain.PerspectiveLabels[perspective])

	return run(ctx, a.engine, advisory[[]StrategicInsight]{
		task:     llm.TaskScorecard,
		system:   strategicSystemPrompt,
		prompt:   p.String(),
		shape:    llm.ShapeArray,
		fallback: func() []StrategicInsight { return FallbackStrategicInsights(sc.ID, perspective) },
		finalize: func(items *[]StrategicInsight) {
			*items = emptyIfNil(*items)
			for i := range *items {
				it := &(*items)[i]
				it.ScorecardID = sc.ID
				it.PerspectiveType = perspective
				it.Initiatives = emptyIfNil(it.Initiatives)
			}
		},
	})
}

// AssessMetrics pairs each metric with its derived figures, in input order.
func AssessMetrics(metrics []domain.ScorecardMetric) []MetricAssessment {
	out := make([]MetricAssessment, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, MetricAssessment{Name: m.Name, Unit: m.Unit, DerivedMetric: m.Derived()})
	}
	return out
}

// OverallStatus buckets the mean unrounded progress of the metrics that have
// a positive target. With no such metric the status is not_started.
func OverallStatus(metrics []domain.ScorecardMetric) kpi.Status {
	var sum float64
	n := 0
	for _, m := range metrics {
		if m.TargetValue > 0 {
			sum += m.CurrentValue / m.TargetValue * 100
			n++
		}
	}
	if n == 0 {
		return kpi.StatusNotStarted
	}
	return kpi.StatusFor(sum / float64(n))
}

// BuildScorecardPrompt renders every perspective with its metrics and derived figures.
func BuildScorecardPrompt(sc *domain.Scorecard) string {
	var p promptBuilder
	p.section("Balanced Scorecard")
	p.field("Name", sc.Name)
	p.field("Organization", sc.Organization)
	p.field("Period", sc.Period)
	for _, persp := range domain.Perspectives {
		p.section(domain.PerspectiveLabels[persp] + " perspective")
		metrics := sc.MetricsFor(persp)
		if len(metrics) == 0 {
			p.line("  - %s", domain.NotSpecified)
		}
		for _, m := range metrics {
			d := m.Derived()
			p.line("  - %s: %s of %s%s (%d%%, %s, %s)",
				domain.OrNotSpecified(m.Name),
				formatValue(m.CurrentValue), formatValue(m.TargetValue), unitSuffix(m.Unit),
				d.ProgressPercentage, d.Status, d.Trend,
			)
		}
	}
	return p.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return fmt.Sprintf(" %s", unit)
}

const perspectiveSystemPrompt = `You are a strategy consultant specializing in the Balanced Scorecard.
You will receive a scorecard with progress, status and trend already computed for every metric,
and the perspective to analyze.

You must output ONLY a JSON object with these fields:
- summary: 1-2 sentence assessment of the perspective
- strengths: array of short strings
- weaknesses: array of short strings
- recommendations: array of concrete next steps

CRITICAL RULES:
1. Do NOT recompute progress or status; they are authoritative
2. Output ONLY the JSON object, no markdown, no explanation`

const strategicSystemPrompt = `You are a strategy consultant specializing in the Balanced Scorecard.
You will receive a scorecard and a perspective to focus on. Propose strategic insights that
connect this perspective to the others through cause and effect.

You must output ONLY a JSON array of 2 to 5 objects, each with:
- title: short headline
- description: 1-2 sentences
- priority: one of "high", "medium", "low"
- initiatives: array of concrete initiatives

Output ONLY the JSON array, no markdown, no explanation.`
