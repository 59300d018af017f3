// Package kpi computes the derived metrics shown next to scorecard, contract
// and change-management figures. Everything here is a pure function of its
// inputs; nothing is cached or persisted.
package kpi

import "math"

// Status buckets a progress percentage.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusOffTrack   Status = "off_track"
	StatusAtRisk     Status = "at_risk"
	StatusOnTrack    Status = "on_track"
	StatusAchieved   Status = "achieved"
)

// Trend compares a value against its previous reading.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Status thresholds, in percent of target.
const (
	AchievedThreshold = 100.0
	OnTrackThreshold  = 80.0
	AtRiskThreshold   = 60.0
)

// DerivedMetric is the computed view of a current/target pair.
type DerivedMetric struct {
	CurrentValue       float64 `json:"current_value"`
	TargetValue        float64 `json:"target_value"`
	ProgressPercentage int     `json:"progress_percentage"`
	Variance           float64 `json:"variance"`
	VariancePercentage int     `json:"variance_percentage"`
	Status             Status  `json:"status"`
	Trend              Trend   `json:"trend"`
}

// Calculate derives progress, variance, status and trend. previous may be nil,
// in which case the trend is always stable.
func Calculate(current, target float64, previous *float64) DerivedMetric {
	variance := current - target
	m := DerivedMetric{
		CurrentValue:       current,
		TargetValue:        target,
		ProgressPercentage: ProgressPercentage(current, target),
		Variance:           variance,
		Status:             StatusNotStarted,
		Trend:              TrendFor(current, previous),
	}
	if target > 0 {
		m.VariancePercentage = roundHalfUp(variance / target * 100)
		m.Status = StatusFor(current / target * 100)
	}
	return m
}

// ProgressPercentage returns round(current/target*100), or 0 when target <= 0.
func ProgressPercentage(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return roundHalfUp(current / target * 100)
}

// StatusFor buckets an unrounded progress percentage.
func StatusFor(progress float64) Status {
	switch {
	case progress >= AchievedThreshold:
		return StatusAchieved
	case progress >= OnTrackThreshold:
		return StatusOnTrack
	case progress >= AtRiskThreshold:
		return StatusAtRisk
	case progress > 0:
		return StatusOffTrack
	default:
		return StatusNotStarted
	}
}

// TrendFor compares current against previous. No previous reading means stable.
func TrendFor(current float64, previous *float64) Trend {
	if previous == nil {
		return TrendStable
	}
	switch {
	case current > *previous:
		return TrendImproving
	case current < *previous:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}
