package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/intelligence"
	"golang.org/x/sync/errgroup"
)

// DefaultPortfolioConcurrency bounds parallel health analyses when the
// caller passes a non-positive limit.
const DefaultPortfolioConcurrency = 4

type advisoryService struct {
	repos    Repositories
	advisors *intelligence.Advisors
	observer UseCaseObserver
}

func NewAdvisoryService(repos Repositories, advisors *intelligence.Advisors, observers ...UseCaseObserver) AdvisoryService {
	return &advisoryService{
		repos:    repos,
		advisors: advisors,
		observer: useCaseObserverOrNoop(observers),
	}
}

// advise wraps one use case: it reports the event, including whether the
// result degraded to the fallback.
func advise[T any](ctx context.Context, s *advisoryService, name string, fields map[string]any,
	fn func() (intelligence.Result[T], error)) (res intelligence.Result[T], err error) {
	done := observe(ctx, s.observer, name, fields)
	defer func() {
		if err == nil {
			fields["degraded"] = res.Degraded
		}
		done(&err)
	}()
	return fn()
}

func (s *advisoryService) CustomerHealth(ctx context.Context, customerID string) (intelligence.Result[intelligence.HealthAnalysis], error) {
	return advise(ctx, s, "customer-health", map[string]any{"customer_id": customerID},
		func() (intelligence.Result[intelligence.HealthAnalysis], error) {
			c, err := s.repos.Customers.GetByID(ctx, customerID)
			if err != nil {
				return intelligence.Result[intelligence.HealthAnalysis]{}, fmt.Errorf("loading customer: %w", err)
			}
			return s.advisors.Health.AnalyzeHealth(ctx, c), nil
		})
}

func (s *advisoryService) CustomerInsights(ctx context.Context, customerID string) (intelligence.Result[[]intelligence.CustomerInsight], error) {
	return advise(ctx, s, "customer-insights", map[string]any{"customer_id": customerID},
		func() (intelligence.Result[[]intelligence.CustomerInsight], error) {
			c, err := s.repos.Customers.GetByID(ctx, customerID)
			if err != nil {
				return intelligence.Result[[]intelligence.CustomerInsight]{}, fmt.Errorf("loading customer: %w", err)
			}
			return s.advisors.Health.CustomerInsights(ctx, c), nil
		})
}

// PortfolioHealth analyzes every customer with at most limit calls in flight.
// Entries keep the customer list order. Cancelling ctx stops scheduling new
// analyses and returns the context error.
func (s *advisoryService) PortfolioHealth(ctx context.Context, limit int) (entries []PortfolioEntry, err error) {
	fields := map[string]any{"limit": limit}
	done := observe(ctx, s.observer, "portfolio-health", fields)
	defer done(&err)

	customers, err := s.repos.Customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	if limit <= 0 {
		limit = DefaultPortfolioConcurrency
	}

	entries = make([]PortfolioEntry, len(customers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range customers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = PortfolioEntry{
				CustomerID:   c.ID,
				CustomerName: c.Name,
				Analysis:     s.advisors.Health.AnalyzeHealth(gctx, c),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyzing portfolio: %w", err)
	}

	degraded := 0
	for _, e := range entries {
		if e.Analysis.Degraded {
			degraded++
		}
	}
	fields["customers"] = len(entries)
	fields["degraded"] = degraded
	return entries, nil
}

func (s *advisoryService) BurnRate(ctx context.Context, contractID string) (intelligence.Result[intelligence.BurnRateForecast], error) {
	return advise(ctx, s, "burn-rate", map[string]any{"contract_id": contractID},
		func() (intelligence.Result[intelligence.BurnRateForecast], error) {
			c, err := s.repos.Contracts.GetByID(ctx, contractID)
			if err != nil {
				return intelligence.Result[intelligence.BurnRateForecast]{}, fmt.Errorf("loading contract: %w", err)
			}
			invoices, err := s.repos.Invoices.ListByContract(ctx, contractID)
			if err != nil {
				return intelligence.Result[intelligence.BurnRateForecast]{}, fmt.Errorf("loading invoices: %w", err)
			}
			return s.advisors.BurnRate.ForecastBurnRate(ctx, c, invoices), nil
		})
}

func (s *advisoryService) ValidateContract(ctx context.Context, contractID string) (intelligence.Result[intelligence.ValidationReport], error) {
	return advise(ctx, s, "validate-contract", map[string]any{"contract_id": contractID},
		func() (intelligence.Result[intelligence.ValidationReport], error) {
			c, err := s.repos.Contracts.GetByID(ctx, contractID)
			if err != nil {
				return intelligence.Result[intelligence.ValidationReport]{}, fmt.Errorf("loading contract: %w", err)
			}
			return s.advisors.Validation.ValidateContract(ctx, c), nil
		})
}

// ValidateInvoice checks the invoice against its contract when it has one.
func (s *advisoryService) ValidateInvoice(ctx context.Context, invoiceID string) (intelligence.Result[intelligence.ValidationReport], error) {
	return advise(ctx, s, "validate-invoice", map[string]any{"invoice_id": invoiceID},
		func() (intelligence.Result[intelligence.ValidationReport], error) {
			inv, err := s.repos.Invoices.GetByID(ctx, invoiceID)
			if err != nil {
				return intelligence.Result[intelligence.ValidationReport]{}, fmt.Errorf("loading invoice: %w", err)
			}
			var contract *domain.Contract
			if inv.ContractID != "" {
				if contract, err = s.repos.Contracts.GetByID(ctx, inv.ContractID); err != nil {
					return intelligence.Result[intelligence.ValidationReport]{}, fmt.Errorf("loading invoice contract: %w", err)
				}
			}
			return s.advisors.Validation.ValidateInvoice(ctx, inv, contract), nil
		})
}

// CapacityConflicts scans all allocations, or one resource's when
// resourceName is set.
func (s *advisoryService) CapacityConflicts(ctx context.Context, resourceName string) (intelligence.Result[[]intelligence.CapacityConflict], error) {
	return advise(ctx, s, "capacity-conflicts", map[string]any{"resource": resourceName},
		func() (intelligence.Result[[]intelligence.CapacityConflict], error) {
			var allocations []*domain.Allocation
			var err error
			if resourceName == "" {
				allocations, err = s.repos.Allocations.List(ctx)
			} else {
				allocations, err = s.repos.Allocations.ListByResource(ctx, resourceName)
			}
			if err != nil {
				return intelligence.Result[[]intelligence.CapacityConflict]{}, fmt.Errorf("loading allocations: %w", err)
			}
			return s.advisors.Capacity.DetectConflicts(ctx, allocations), nil
		})
}

func (s *advisoryService) AnalyzeCanvas(ctx context.Context, canvasID string) (intelligence.Result[[]intelligence.CanvasInsight], error) {
	return advise(ctx, s, "canvas-analyze", map[string]any{"canvas_id": canvasID},
		func() (intelligence.Result[[]intelligence.CanvasInsight], error) {
			c, err := s.repos.Canvases.GetByID(ctx, canvasID)
			if err != nil {
				return intelligence.Result[[]intelligence.CanvasInsight]{}, fmt.Errorf("loading canvas: %w", err)
			}
			return s.advisors.Canvas.AnalyzeCanvas(ctx, c), nil
		})
}

func (s *advisoryService) BlockSuggestions(ctx context.Context, canvasID string, block domain.CanvasBlock) (intelligence.Result[intelligence.BlockSuggestion], error) {
	return advise(ctx, s, "canvas-block", map[string]any{"canvas_id": canvasID, "block": string(block)},
		func() (intelligence.Result[intelligence.BlockSuggestion], error) {
			if !domain.IsValidBlock(block) {
				return intelligence.Result[intelligence.BlockSuggestion]{}, fmt.Errorf("canvas block %q: %w", block, ErrInvalidInput)
			}
			c, err := s.repos.Canvases.GetByID(ctx, canvasID)
			if err != nil {
				return intelligence.Result[intelligence.BlockSuggestion]{}, fmt.Errorf("loading canvas: %w", err)
			}
			return s.advisors.Canvas.BlockSuggestions(ctx, c, block), nil
		})
}

func (s *advisoryService) AnalyzePerspective(ctx context.Context, scorecardID string, perspective domain.Perspective) (intelligence.Result[intelligence.PerformanceAnalysis], error) {
	return advise(ctx, s, "scorecard-perspective", map[string]any{"scorecard_id": scorecardID, "perspective": string(perspective)},
		func() (intelligence.Result[intelligence.PerformanceAnalysis], error) {
			sc, err := s.loadScorecard(ctx, scorecardID, perspective)
			if err != nil {
				return intelligence.Result[intelligence.PerformanceAnalysis]{}, err
			}
			return s.advisors.Scorecard.AnalyzePerspective(ctx, sc, perspective), nil
		})
}

func (s *advisoryService) StrategicInsights(ctx context.Context, scorecardID string, perspective domain.Perspective) (intelligence.Result[[]intelligence.StrategicInsight], error) {
	return advise(ctx, s, "scorecard-insights", map[string]any{"scorecard_id": scorecardID, "perspective": string(perspective)},
		func() (intelligence.Result[[]intelligence.StrategicInsight], error) {
			sc, err := s.loadScorecard(ctx, scorecardID, perspective)
			if err != nil {
				return intelligence.Result[[]intelligence.StrategicInsight]{}, err
			}
			return s.advisors.Scorecard.StrategicInsights(ctx, sc, perspective), nil
		})
}

func (s *advisoryService) loadScorecard(ctx context.Context, id string, perspective domain.Perspective) (*domain.Scorecard, error) {
	if !domain.IsValidPerspective(perspective) {
		return nil, fmt.Errorf("perspective %q: %w", perspective, ErrInvalidInput)
	}
	sc, err := s.repos.Scorecards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading scorecard: %w", err)
	}
	return sc, nil
}

func (s *advisoryService) AnalyzeForce(ctx context.Context, analysisID string, force domain.Force) (intelligence.Result[intelligence.ForceAnalysis], error) {
	return advise(ctx, s, "porter-force", map[string]any{"analysis_id": analysisID, "force": string(force)},
		func() (intelligence.Result[intelligence.ForceAnalysis], error) {
			if !domain.IsValidForce(force) {
				return intelligence.Result[intelligence.ForceAnalysis]{}, fmt.Errorf("force %q: %w", force, ErrInvalidInput)
			}
			ca, err := s.repos.Analyses.GetByID(ctx, analysisID)
			if err != nil {
				return intelligence.Result[intelligence.ForceAnalysis]{}, fmt.Errorf("loading competitive analysis: %w", err)
			}
			return s.advisors.Porter.AnalyzeForce(ctx, ca, force), nil
		})
}

func (s *advisoryService) CompareBenchmark(ctx context.Context, analysisID string) (intelligence.Result[intelligence.BenchmarkComparison], error) {
	return advise(ctx, s, "porter-benchmark", map[string]any{"analysis_id": analysisID},
		func() (intelligence.Result[intelligence.BenchmarkComparison], error) {
			ca, err := s.repos.Analyses.GetByID(ctx, analysisID)
			if err != nil {
				return intelligence.Result[intelligence.BenchmarkComparison]{}, fmt.Errorf("loading competitive analysis: %w", err)
			}
			return s.advisors.Porter.CompareBenchmark(ctx, ca), nil
		})
}

func (s *advisoryService) AnalyzeReadiness(ctx context.Context, initiativeID string) (intelligence.Result[intelligence.ReadinessAnalysis], error) {
	return advise(ctx, s, "adkar-readiness", map[string]any{"initiative_id": initiativeID},
		func() (intelligence.Result[intelligence.ReadinessAnalysis], error) {
			ci, err := s.repos.Initiatives.GetByID(ctx, initiativeID)
			if err != nil {
				return intelligence.Result[intelligence.ReadinessAnalysis]{}, fmt.Errorf("loading change initiative: %w", err)
			}
			return s.advisors.ADKAR.AnalyzeReadiness(ctx, ci), nil
		})
}

func (s *advisoryService) StageRecommendations(ctx context.Context, initiativeID string) (intelligence.Result[[]intelligence.StageRecommendation], error) {
	return advise(ctx, s, "adkar-recommend", map[string]any{"initiative_id": initiativeID},
		func() (intelligence.Result[[]intelligence.StageRecommendation], error) {
			ci, err := s.repos.Initiatives.GetByID(ctx, initiativeID)
			if err != nil {
				return intelligence.Result[[]intelligence.StageRecommendation]{}, fmt.Errorf("loading change initiative: %w", err)
			}
			return s.advisors.ADKAR.StageRecommendations(ctx, ci), nil
		})
}
