package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/repository"
)

type scorecardService struct {
	scorecards repository.ScorecardRepo
}

func NewScorecardService(scorecards repository.ScorecardRepo) ScorecardService {
	return &scorecardService{scorecards: scorecards}
}

// Metrics groups the scorecard's metrics by perspective in display order.
// Perspectives without metrics are omitted.
func (s *scorecardService) Metrics(ctx context.Context, scorecardID string) (*ScorecardMetrics, error) {
	sc, err := s.scorecards.GetByID(ctx, scorecardID)
	if err != nil {
		return nil, fmt.Errorf("loading scorecard: %w", err)
	}

	out := &ScorecardMetrics{
		ScorecardID:  sc.ID,
		Name:         sc.Name,
		Period:       sc.Period,
		Perspectives: []PerspectiveMetrics{},
	}
	for _, p := range domain.Perspectives {
		metrics := sc.MetricsFor(p)
		if len(metrics) == 0 {
			continue
		}
		out.Perspectives = append(out.Perspectives, PerspectiveMetrics{
			Perspective:   p,
			OverallStatus: intelligence.OverallStatus(metrics),
			Metrics:       intelligence.AssessMetrics(metrics),
		})
	}
	return out, nil
}
