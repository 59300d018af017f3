package domain

import (
	"time"

	"github.com/alexanderramin/compass/internal/kpi"
)

type Scorecard struct {
	ID           string
	Name         string
	Organization string
	Period       string
	Metrics      []ScorecardMetric
	CreatedAt    time.Time
}

type ScorecardMetric struct {
	ID            string
	ScorecardID   string
	Perspective   Perspective
	Name          string
	Unit          string
	CurrentValue  float64
	TargetValue   float64
	PreviousValue *float64
}

// Derived computes the metric's progress, variance, status and trend.
func (m ScorecardMetric) Derived() kpi.DerivedMetric {
	return kpi.Calculate(m.CurrentValue, m.TargetValue, m.PreviousValue)
}

// MetricsFor returns the metrics belonging to perspective p, in stored order.
func (s *Scorecard) MetricsFor(p Perspective) []ScorecardMetric {
	out := make([]ScorecardMetric, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		if m.Perspective == p {
			out = append(out, m)
		}
	}
	return out
}
