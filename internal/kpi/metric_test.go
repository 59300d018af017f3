package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestCalculate_ProgressAndVariance(t *testing.T) {
	m := Calculate(45, 60, nil)

	assert.Equal(t, 75, m.ProgressPercentage)
	assert.Equal(t, -15.0, m.Variance)
	assert.Equal(t, -25, m.VariancePercentage)
	assert.Equal(t, StatusAtRisk, m.Status)
	assert.Equal(t, TrendStable, m.Trend)
}

func TestCalculate_ZeroTarget(t *testing.T) {
	for _, current := range []float64{0, 5, 1000, -3} {
		m := Calculate(current, 0, nil)
		assert.Equal(t, 0, m.ProgressPercentage, "current=%v", current)
		assert.Equal(t, 0, m.VariancePercentage, "current=%v", current)
		assert.Equal(t, StatusNotStarted, m.Status, "current=%v", current)
		assert.Equal(t, current, m.Variance)
	}
}

func TestCalculate_NegativeTargetTreatedAsZero(t *testing.T) {
	m := Calculate(10, -5, nil)
	assert.Equal(t, 0, m.ProgressPercentage)
	assert.Equal(t, StatusNotStarted, m.Status)
}

func TestStatusFor_Boundaries(t *testing.T) {
	cases := []struct {
		progress float64
		want     Status
	}{
		{150, StatusAchieved},
		{100, StatusAchieved},
		{99.999, StatusOnTrack},
		{80, StatusOnTrack},
		{79.999, StatusAtRisk},
		{60, StatusAtRisk},
		{59.999, StatusOffTrack},
		{0.001, StatusOffTrack},
		{0, StatusNotStarted},
		{-10, StatusNotStarted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.progress), "progress=%v", tc.progress)
	}
}

func TestCalculate_StatusUsesUnroundedProgress(t *testing.T) {
	// 79.9995% rounds to 80 for display but stays at_risk.
	m := Calculate(79.9995, 100, nil)
	assert.Equal(t, 80, m.ProgressPercentage)
	assert.Equal(t, StatusAtRisk, m.Status)

	m = Calculate(80, 100, nil)
	assert.Equal(t, StatusOnTrack, m.Status)
}

func TestProgressPercentage_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, 13, ProgressPercentage(1, 8))   // 12.5
	assert.Equal(t, 67, ProgressPercentage(2, 3))   // 66.67
	assert.Equal(t, 33, ProgressPercentage(1, 3))   // 33.33
	assert.Equal(t, -2, roundHalfUp(-2.5))
	assert.Equal(t, 0, ProgressPercentage(0, 10))
}

func TestProgressPercentage_MatchesFormula(t *testing.T) {
	targets := []float64{1, 3, 7, 12.5, 60, 100, 999}
	currents := []float64{0, 0.5, 1, 2.25, 33, 59.4, 100, 250}
	for _, target := range targets {
		for _, current := range currents {
			want := roundHalfUp(current / target * 100)
			assert.Equal(t, want, ProgressPercentage(current, target))
		}
	}
}

func TestTrendFor(t *testing.T) {
	assert.Equal(t, TrendStable, TrendFor(10, nil))
	assert.Equal(t, TrendImproving, TrendFor(10, ptr(5)))
	assert.Equal(t, TrendDeclining, TrendFor(4, ptr(5)))
	assert.Equal(t, TrendStable, TrendFor(5, ptr(5)))
}

func TestCalculate_IsPure(t *testing.T) {
	a := Calculate(70, 90, ptr(60))
	b := Calculate(70, 90, ptr(60))
	assert.Equal(t, a, b)
	assert.Equal(t, TrendImproving, a.Trend)
}
