package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/alexanderramin/compass/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatHealth(t *testing.T) {
	got := stripANSI(FormatHealth(intelligence.Result[intelligence.HealthAnalysis]{
		Value: intelligence.HealthAnalysis{
			HealthScore:     72,
			RiskLevel:       intelligence.RiskMedium,
			Summary:         "Stable account with open tickets.",
			RiskFactors:     []string{"4 open tickets"},
			Recommendations: []string{"Schedule a QBR"},
		},
	}))
	assert.Contains(t, got, "CUSTOMER HEALTH")
	assert.Contains(t, got, " 72%")
	assert.Contains(t, got, "● MEDIUM")
	assert.Contains(t, got, "• 4 open tickets")
	assert.Contains(t, got, "• Schedule a QBR")
	assert.NotContains(t, got, "POSITIVE SIGNALS", "empty lists are skipped")
	assert.NotContains(t, got, "default analysis")
}

func TestFormatHealth_Degraded(t *testing.T) {
	got := stripANSI(FormatHealth(intelligence.Result[intelligence.HealthAnalysis]{
		Value:    intelligence.FallbackHealthAnalysis("c1"),
		Degraded: true,
	}))
	assert.Contains(t, got, "default analysis")
}

func TestFormatBurnRate(t *testing.T) {
	months := decimal.RequireFromString("3.25")
	got := stripANSI(FormatBurnRate(intelligence.Result[intelligence.BurnRateForecast]{
		Value: intelligence.BurnRateForecast{
			BilledTotal:       decimal.RequireFromString("15000"),
			MonthlyBurn:       decimal.RequireFromString("5000"),
			BudgetConsumed:    25,
			HoursUtilization:  30,
			UtilizationStatus: kpi.StatusOffTrack,
			MonthsRemaining:   &months,
			ChurnRisk:         intelligence.RiskLow,
			ChurnProbability:  10,
		},
	}))
	assert.Contains(t, got, "15000.00")
	assert.Contains(t, got, "5000.00")
	assert.Contains(t, got, "3.3 months")
	assert.Contains(t, got, "● LOW (10%)")
	assert.Contains(t, got, "● Off Track")
}

func TestFormatValidationReport(t *testing.T) {
	got := stripANSI(FormatValidationReport(intelligence.Result[intelligence.ValidationReport]{
		Value: intelligence.ValidationReport{
			EntityType: "invoice",
			EntityID:   "inv-1",
			IsValid:    false,
			Issues: []intelligence.ValidationIssue{
				{Field: "line_items", Severity: intelligence.SeverityError, Message: "line items do not sum to amount", Source: intelligence.SourceRule},
			},
		},
	}))
	assert.Contains(t, got, "✖ invalid")
	assert.Contains(t, got, "[error]")
	assert.Contains(t, got, "line items do not sum to amount")
	assert.Contains(t, got, "rule")
}

func TestFormatCapacityConflicts(t *testing.T) {
	empty := stripANSI(FormatCapacityConflicts(intelligence.Result[[]intelligence.CapacityConflict]{Value: []intelligence.CapacityConflict{}}))
	assert.Contains(t, empty, "No capacity conflicts.")

	got := stripANSI(FormatCapacityConflicts(intelligence.Result[[]intelligence.CapacityConflict]{
		Value: []intelligence.CapacityConflict{{
			ResourceName: "ana", Projects: []string{"alpha", "beta"},
			PeriodStart: "2024-03-10", PeriodEnd: "2024-03-20",
			AllocatedHours: 60, CapacityHours: 40, Severity: intelligence.SeverityError,
			Resolution: "Move beta by two weeks",
		}},
	}))
	assert.Contains(t, got, "alpha, beta")
	assert.Contains(t, got, "60h / 40h")
	assert.Contains(t, got, "ana: Move beta by two weeks")
}

func TestFormatPortfolio(t *testing.T) {
	assert.Contains(t, stripANSI(FormatPortfolio(nil)), "No customers.")

	got := stripANSI(FormatPortfolio([]service.PortfolioEntry{
		{CustomerID: "c1", CustomerName: "Acme", Analysis: intelligence.Result[intelligence.HealthAnalysis]{
			Value: intelligence.HealthAnalysis{HealthScore: 80, RiskLevel: intelligence.RiskLow},
		}},
		{CustomerID: "c2", CustomerName: "Globex", Analysis: intelligence.Result[intelligence.HealthAnalysis]{
			Value: intelligence.FallbackHealthAnalysis("c2"), Degraded: true,
		}},
	}))
	assert.Contains(t, got, "Acme")
	assert.Contains(t, got, "advisor")
	assert.Contains(t, got, "default")
	assert.Less(t, strings.Index(got, "Acme"), strings.Index(got, "Globex"))
}

func TestFormatDerivedMetric(t *testing.T) {
	prev := 70.0
	got := stripANSI(FormatDerivedMetric(kpi.Calculate(80, 100, &prev)))
	assert.Contains(t, got, " 80%")
	assert.Contains(t, got, "-20 (-20%)")
	assert.Contains(t, got, "● On Track")
	assert.Contains(t, got, "↑ improving")
}

func TestFormatScorecardMetrics(t *testing.T) {
	got := stripANSI(FormatScorecardMetrics(&service.ScorecardMetrics{
		Name: "FY24", Period: "2024",
		Perspectives: []service.PerspectiveMetrics{{
			Perspective:   domain.PerspectiveLearningGrowth,
			OverallStatus: kpi.StatusAchieved,
			Metrics: []intelligence.MetricAssessment{
				{Name: "Training hours", Unit: "h", DerivedMetric: kpi.Calculate(30, 25, nil)},
			},
		}},
	}))
	assert.Contains(t, got, "FY24")
	assert.Contains(t, got, "LEARNING & GROWTH")
	assert.Contains(t, got, "Training hours")
	assert.Contains(t, got, "30 h")
	assert.Contains(t, got, "120%")
}

func TestFormatReadiness_BarrierPoint(t *testing.T) {
	scores := map[domain.ADKARStage]float64{domain.StageAwareness: 4, domain.StageDesire: 2}
	got := stripANSI(FormatReadiness(intelligence.Result[intelligence.ReadinessAnalysis]{
		Value: intelligence.ReadinessAnalysis{
			Stage:          domain.StageDesire,
			ReadinessScore: 45,
			ReadinessLevel: "partially_ready",
			StageScores:    intelligence.ScoreStages(scores),
			BarrierPoint:   intelligence.BarrierPoint(scores),
		},
	}))
	assert.Contains(t, got, "Barrier point:")
	assert.Contains(t, got, "Desire")
	assert.Contains(t, got, "4.0 / 5")
	assert.Contains(t, got, "partially_ready")
}

func TestFormatBenchmark_ScoresAllForces(t *testing.T) {
	got := stripANSI(FormatBenchmark(intelligence.Result[intelligence.BenchmarkComparison]{
		Value: intelligence.FallbackBenchmarkComparison("a1"), Degraded: true,
	}))
	for _, f := range domain.Forces {
		assert.Contains(t, got, domain.ForceLabels[f])
	}
}

func TestScoreDots(t *testing.T) {
	assert.Equal(t, "●●●○○ 3/5", stripANSI(scoreDots(3)))
	assert.Equal(t, "●●●●● 5/5", stripANSI(scoreDots(9)))
}
