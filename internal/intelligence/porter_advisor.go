package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

// PorterAdvisor analyzes a company's competitive environment with Porter's Five Forces.
type PorterAdvisor interface {
	// AnalyzeForce assesses a single force.
	AnalyzeForce(ctx context.Context, analysis *domain.CompetitiveAnalysis, force domain.Force) Result[ForceAnalysis]

	// CompareBenchmark compares the company's position against its industry.
	CompareBenchmark(ctx context.Context, analysis *domain.CompetitiveAnalysis) Result[BenchmarkComparison]
}

type porterAdvisor struct {
	engine
}

// NewPorterAdvisor creates a PorterAdvisor backed by an LLM client.
func NewPorterAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) PorterAdvisor {
	return &porterAdvisor{engine: newEngine(client, observer, log)}
}

func (a *porterAdvisor) AnalyzeForce(ctx context.Context, ca *domain.CompetitiveAnalysis, force domain.Force) Result[ForceAnalysis] {
	var p promptBuilder
	p.line("%s", BuildCompetitivePrompt(ca))
	p.section("Force to analyze")
	p.field("Force", domain.ForceLabels[force])

	return run(ctx, a.engine, advisory[ForceAnalysis]{
		task:     llm.TaskPorter,
		system:   forceSystemPrompt,
		prompt:   p.String(),
		shape:    llm.ShapeObject,
		validate: validateForceAnalysis,
		fallback: func() ForceAnalysis { return FallbackForceAnalysis(ca.ID, force) },
		finalize: func(f *ForceAnalysis) {
			f.AnalysisID = ca.ID
			f.ForceType = force
			f.KeyFactors = emptyIfNil(f.KeyFactors)
			f.Threats = emptyIfNil(f.Threats)
			f.Opportunities = emptyIfNil(f.Opportunities)
			f.Recommendations = emptyIfNil(f.Recommendations)
		},
	})
}

func (a *porterAdvisor) CompareBenchmark(ctx context.Context, ca *domain.CompetitiveAnalysis) Result[BenchmarkComparison] {
	return run(ctx, a.engine, advisory[BenchmarkComparison]{
		task:     llm.TaskPorter,
		system:   benchmarkSystemPrompt,
		prompt:   BuildCompetitivePrompt(ca),
		shape:    llm.ShapeObject,
		fallback: func() BenchmarkComparison { return FallbackBenchmarkComparison(ca.ID) },
		finalize: func(b *BenchmarkComparison) {
			b.AnalysisID = ca.ID
			if b.Industry == "" {
				b.Industry = ca.Industry
			}
			b.ForceScores = completeForceScores(b.ForceScores)
			b.Strengths = emptyIfNil(b.Strengths)
			b.Gaps = emptyIfNil(b.Gaps)
			b.Recommendations = emptyIfNil(b.Recommendations)
		},
	})
}

// completeForceScores returns one clamped score per force in display order.
// Unknown forces are dropped and missing ones default to 3.
func completeForceScores(scores []ForceScore) []ForceScore {
	byForce := make(map[domain.Force]int, len(scores))
	for _, s := range scores {
		byForce[s.ForceType] = s.Score
	}
	out := make([]ForceScore, 0, len(domain.Forces))
	for _, f := range domain.Forces {
		score, ok := byForce[f]
		if !ok {
			score = 3
		}
		out = append(out, ForceScore{ForceType: f, Score: min(max(score, 1), 5)})
	}
	return out
}

func validateForceAnalysis(f ForceAnalysis) error {
	if f.Score < 1 || f.Score > 5 {
		return fmt.Errorf("score %d out of range [1,5]", f.Score)
	}
	switch f.Intensity {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("unknown intensity %q", f.Intensity)
	}
	return nil
}

// BuildCompetitivePrompt renders the company, its competitors and recorded force inputs.
func BuildCompetitivePrompt(ca *domain.CompetitiveAnalysis) string {
	var p promptBuilder
	p.section("Company")
	p.field("Name", ca.Company)
	p.field("Industry", ca.Industry)
	p.field("Competitors", domain.ListOrNotSpecified(ca.Competitors))
	p.field("Notes", ca.Notes)
	for _, f := range domain.Forces {
		in := ca.Forces[f]
		p.section(domain.ForceLabels[f])
		p.field("Recorded intensity", in.Intensity)
		p.line("- Factors:")
		p.list(in.Factors)
	}
	return p.String()
}

const forceSystemPrompt = `You are a competitive strategy analyst using Porter's Five Forces.
You will receive a company profile with recorded inputs for each force, and the force to analyze.

You must output ONLY a JSON object with these fields:
- intensity: one of "low", "medium", "high"
- score: integer 1 to 5 (5 = strongest pressure on profitability)
- summary: 1-2 sentence assessment
- key_factors: array of short strings
- threats: array of short strings
- opportunities: array of short strings
- recommendations: array of concrete next steps

Output ONLY the JSON object, no markdown, no explanation.`

const benchmarkSystemPrompt = `You are a competitive strategy analyst using Porter's Five Forces.
You will receive a company profile with recorded inputs for each force. Compare the company's
position against a typical company in its industry.

You must output ONLY a JSON object with these fields:
- industry: the industry benchmarked against
- overall_attractiveness: one of "low", "medium", "high"
- position: 1-2 sentences on the company's relative position
- force_scores: array of {force_type, score} for competitive_rivalry, threat_of_new_entrants,
  threat_of_substitutes, buyer_power, supplier_power; score is an integer 1 to 5
- strengths: array of short strings
- gaps: array of short strings
- recommendations: array of concrete next steps

Output ONLY the JSON object, no markdown, no explanation.`
