package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

// ADKAR survey scores run from 1 to 5; a stage scoring at or below
// BarrierThreshold is a barrier.
const (
	MaxStageScore    = 5.0
	BarrierThreshold = 3.0
)

// ADKARAdvisor assesses change initiatives with the ADKAR model.
type ADKARAdvisor interface {
	// AnalyzeReadiness assesses readiness at the initiative's current stage.
	AnalyzeReadiness(ctx context.Context, initiative *domain.ChangeInitiative) Result[ReadinessAnalysis]

	// StageRecommendations proposes actions to move the initiative forward.
	StageRecommendations(ctx context.Context, initiative *domain.ChangeInitiative) Result[[]StageRecommendation]
}

type adkarAdvisor struct {
	engine
}

// NewADKARAdvisor creates an ADKARAdvisor backed by an LLM client.
func NewADKARAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) ADKARAdvisor {
	return &adkarAdvisor{engine: newEngine(client, observer, log)}
}

func (a *adkarAdvisor) AnalyzeReadiness(ctx context.Context, ci *domain.ChangeInitiative) Result[ReadinessAnalysis] {
	stage := currentStage(ci)
	scores := ScoreStages(ci.StageScores)
	barrier := BarrierPoint(ci.StageScores)

	return run(ctx, a.engine, advisory[ReadinessAnalysis]{
		task:     llm.TaskADKAR,
		system:   readinessSystemPrompt,
		prompt:   BuildInitiativePrompt(ci),
		shape:    llm.ShapeObject,
		validate: validateReadiness,
		fallback: func() ReadinessAnalysis { return FallbackReadinessAnalysis(ci.ID, stage) },
		finalize: func(r *ReadinessAnalysis) {
			r.InitiativeID = ci.ID
			r.Stage = stage
			r.StageScores = scores
			r.BarrierPoint = barrier
			r.Barriers = emptyIfNil(r.Barriers)
			r.Enablers = emptyIfNil(r.Enablers)
			r.Recommendations = emptyIfNil(r.Recommendations)
		},
	})
}

func (a *adkarAdvisor) StageRecommendations(ctx context.Context, ci *domain.ChangeInitiative) Result[[]StageRecommendation] {
	stage := currentStage(ci)
	return run(ctx, a.engine, advisory[[]StageRecommendation]{
		task:     llm.TaskADKAR,
		system:   recommendationsSystemPrompt,
		prompt:   BuildInitiativePrompt(ci),
		shape:    llm.ShapeArray,
		fallback: func() []StageRecommendation { return FallbackStageRecommendations(ci.ID, stage) },
		finalize: func(items *[]StageRecommendation) {
			*items = emptyIfNil(*items)
			for i := range *items {
				it := &(*items)[i]
				it.InitiativeID = ci.ID
				if !domain.IsValidStage(it.Stage) {
					it.Stage = stage
				}
				it.Actions = emptyIfNil(it.Actions)
			}
		},
	})
}

func currentStage(ci *domain.ChangeInitiative) domain.ADKARStage {
	if domain.IsValidStage(ci.Stage) {
		return ci.Stage
	}
	return domain.StageAwareness
}

// ScoreStages derives progress against the maximum score for every stage that
// has a survey score, in model order.
func ScoreStages(scores map[domain.ADKARStage]float64) []StageScore {
	out := make([]StageScore, 0, len(scores))
	for _, s := range domain.ADKARStages {
		v, ok := scores[s]
		if !ok {
			continue
		}
		out = append(out, StageScore{Stage: s, DerivedMetric: kpi.Calculate(v, MaxStageScore, nil)})
	}
	return out
}

// BarrierPoint is the first stage in model order scoring at or below
// BarrierThreshold, or "" when there is none.
func BarrierPoint(scores map[domain.ADKARStage]float64) domain.ADKARStage {
	for _, s := range domain.ADKARStages {
		if v, ok := scores[s]; ok && v <= BarrierThreshold {
			return s
		}
	}
	return ""
}

func validateReadiness(r ReadinessAnalysis) error {
	if r.ReadinessScore < 0 || r.ReadinessScore > 100 {
		return fmt.Errorf("readiness_score %d out of range [0,100]", r.ReadinessScore)
	}
	switch r.ReadinessLevel {
	case "ready", "partially_ready", "not_ready":
	default:
		return fmt.Errorf("unknown readiness_level %q", r.ReadinessLevel)
	}
	return nil
}

// BuildInitiativePrompt renders a change initiative with its stage survey scores.
func BuildInitiativePrompt(ci *domain.ChangeInitiative) string {
	var p promptBuilder
	p.section("Change initiative")
	p.field("Name", ci.Name)
	p.field("Description", ci.Description)
	p.field("Sponsor", ci.Sponsor)
	p.field("Current stage", domain.StageLabels[ci.Stage])
	p.field("Impacted groups", domain.ListOrNotSpecified(ci.ImpactedGroups))
	p.field("Target date", domain.DateOrNotSpecified(ci.TargetDate))

	p.section("Stage survey scores (1-5)")
	for _, s := range domain.ADKARStages {
		var score *float64
		if v, ok := ci.StageScores[s]; ok {
			score = &v
		}
		p.field(domain.StageLabels[s]+" ("+domain.StageDescriptions[s]+")", domain.FloatOrNotSpecified(score))
	}
	return p.String()
}

const readinessSystemPrompt = `You are a change management consultant using the ADKAR model
(Awareness, Desire, Knowledge, Ability, Reinforcement).
You will receive a change initiative with its current stage and survey scores per stage.

You must output ONLY a JSON object with these fields:
- readiness_score: integer 0 to 100
- readiness_level: one of "ready", "partially_ready", "not_ready"
- summary: 1-2 sentence assessment of readiness at the current stage
- barriers: array of short strings
- enablers: array of short strings
- recommendations: array of concrete next steps

Output ONLY the JSON object, no markdown, no explanation.`

const recommendationsSystemPrompt = `You are a change management consultant using the ADKAR model
(Awareness, Desire, Knowledge, Ability, Reinforcement).
You will receive a change initiative with its current stage and survey scores per stage.
Recommend actions that move the initiative through its weakest stages.

You must output ONLY a JSON array of 3 to 6 objects, each with:
- stage: one of "awareness", "desire", "knowledge", "ability", "reinforcement"
- title: short headline
- description: 1-2 sentences
- priority: one of "high", "medium", "low"
- actions: array of concrete actions

Output ONLY the JSON array, no markdown, no explanation.`
