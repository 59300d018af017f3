package intelligence

import (
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/shopspring/decimal"
)

// Fallback providers return fixed defaults used when no model response can be
// parsed. Each call builds a fresh value, so callers may mutate the result.
// List fields are always non-nil.

// FallbackHealthAnalysis is a neutral score of 50 for customerID.
func FallbackHealthAnalysis(customerID string) HealthAnalysis {
	return HealthAnalysis{
		CustomerID:      customerID,
		HealthScore:     50,
		RiskLevel:       RiskMedium,
		Summary:         "Automated health analysis is unavailable. Review the account manually.",
		RiskFactors:     []string{},
		PositiveSignals: []string{},
		Recommendations: []string{
			"Schedule a check-in call with the primary contact",
			"Review open support tickets and recent billing history",
		},
	}
}

// FallbackCustomerInsights is a single review action keyed on customerID.
func FallbackCustomerInsights(customerID string) []CustomerInsight {
	return []CustomerInsight{
		{
			CustomerID:  customerID,
			Type:        "action",
			Title:       "Review account status",
			Description: "Automated insights are unavailable. Check recent activity, open tickets and renewal timing.",
			Priority:    PriorityMedium,
			Action:      "Schedule an account review",
		},
	}
}

// FallbackBurnRateForecast keys on contractID with zero spend; the advisor fills in computed spend.
func FallbackBurnRateForecast(contractID string) BurnRateForecast {
	return BurnRateForecast{
		ContractID:        contractID,
		MonthlyBurn:       decimal.Zero,
		BilledTotal:       decimal.Zero,
		UtilizationStatus: kpi.StatusNotStarted,
		ChurnRisk:         RiskMedium,
		ChurnProbability:  50,
		Summary:           "Automated churn forecast is unavailable. Spend figures are computed from billing records.",
		Drivers:           []string{},
		Recommendations:   []string{"Compare spend against the contract budget with the account owner"},
	}
}

// FallbackCapacityConflicts is empty. Detected overlaps are merged in by the advisor.
func FallbackCapacityConflicts() []CapacityConflict {
	return []CapacityConflict{}
}

// FallbackValidationReport is an issue-free report for the entity. Rule checks are merged in by the advisor.
func FallbackValidationReport(entityType, entityID string) ValidationReport {
	return ValidationReport{
		EntityType:  entityType,
		EntityID:    entityID,
		IsValid:     true,
		Summary:     "Automated review is unavailable. Only rule-based checks were applied.",
		Issues:      []ValidationIssue{},
		Suggestions: []string{},
	}
}

// FallbackCanvasInsights is one value-proposition insight keyed on canvasID.
func FallbackCanvasInsights(canvasID string) []CanvasInsight {
	return []CanvasInsight{
		{
			CanvasID:       canvasID,
			Block:          domain.BlockValuePropositions,
			Type:           "opportunity",
			Title:          "Sharpen the value proposition",
			Description:    "Automated canvas analysis is unavailable. Start by checking that each customer segment maps to a clear value proposition.",
			Priority:       PriorityMedium,
			Recommendation: "Validate the value proposition with two or three customer interviews",
		},
	}
}

// FallbackBlockSuggestion keys on canvasID and block and offers guiding questions only.
func FallbackBlockSuggestion(canvasID string, block domain.CanvasBlock) BlockSuggestion {
	return BlockSuggestion{
		CanvasID:    canvasID,
		Block:       block,
		Suggestions: []string{},
		Questions: []string{
			"Who is this block most important for?",
			"What evidence supports the current entries?",
		},
		Rationale: "Automated suggestions are unavailable.",
	}
}

// FallbackPerformanceAnalysis keys on scorecardID and perspective.
func FallbackPerformanceAnalysis(scorecardID string, perspective domain.Perspective) PerformanceAnalysis {
	return PerformanceAnalysis{
		ScorecardID:     scorecardID,
		PerspectiveType: perspective,
		OverallStatus:   kpi.StatusNotStarted,
		Summary:         "Automated performance analysis is unavailable. Derived metric figures are shown as computed.",
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{"Review metrics that are off track with their owners"},
		Metrics:         []MetricAssessment{},
	}
}

// FallbackStrategicInsights is one alignment insight keyed on scorecardID and perspective.
func FallbackStrategicInsights(scorecardID string, perspective domain.Perspective) []StrategicInsight {
	return []StrategicInsight{
		{
			ScorecardID:     scorecardID,
			PerspectiveType: perspective,
			Title:           "Align objectives across perspectives",
			Description:     "Automated strategic insights are unavailable. Check that each objective links to an outcome in another perspective.",
			Priority:        PriorityMedium,
			Initiatives:     []string{},
		},
	}
}

// FallbackForceAnalysis is a medium-intensity result keyed on analysisID and force.
func FallbackForceAnalysis(analysisID string, force domain.Force) ForceAnalysis {
	return ForceAnalysis{
		AnalysisID:      analysisID,
		ForceType:       force,
		Intensity:       "medium",
		Score:           3,
		Summary:         "Automated force analysis is unavailable.",
		KeyFactors:      []string{},
		Threats:         []string{},
		Opportunities:   []string{},
		Recommendations: []string{},
	}
}

// FallbackBenchmarkComparison scores every force 3 for analysisID.
func FallbackBenchmarkComparison(analysisID string) BenchmarkComparison {
	scores := make([]ForceScore, 0, len(domain.Forces))
	for _, f := range domain.Forces {
		scores = append(scores, ForceScore{ForceType: f, Score: 3})
	}
	return BenchmarkComparison{
		AnalysisID:            analysisID,
		OverallAttractiveness: "medium",
		Position:              "Automated benchmark comparison is unavailable.",
		ForceScores:           scores,
		Strengths:             []string{},
		Gaps:                  []string{},
		Recommendations:       []string{},
	}
}

// FallbackReadinessAnalysis keys on initiativeID and stage.
func FallbackReadinessAnalysis(initiativeID string, stage domain.ADKARStage) ReadinessAnalysis {
	return ReadinessAnalysis{
		InitiativeID:   initiativeID,
		Stage:          stage,
		ReadinessScore: 50,
		ReadinessLevel: "partially_ready",
		Summary:        "Automated readiness analysis is unavailable.",
		Barriers:       []string{},
		Enablers:       []string{},
		Recommendations: []string{
			"Survey impacted groups on the current stage",
		},
		StageScores: []StageScore{},
	}
}

// FallbackStageRecommendations keys on initiativeID and stage; an unknown stage becomes awareness.
func FallbackStageRecommendations(initiativeID string, stage domain.ADKARStage) []StageRecommendation {
	if !domain.IsValidStage(stage) {
		stage = domain.StageAwareness
	}
	return []StageRecommendation{
		{
			InitiativeID: initiativeID,
			Stage:        stage,
			Title:        "Strengthen " + domain.StageLabels[stage],
			Description:  domain.StageDescriptions[stage],
			Priority:     PriorityMedium,
			Actions:      []string{},
		},
	}
}
