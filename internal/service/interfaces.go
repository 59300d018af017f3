package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/importer"
	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/alexanderramin/compass/internal/repository"
)

// ErrInvalidInput is wrapped when a caller passes an unknown enum value such
// as a perspective, force or canvas block.
var ErrInvalidInput = errors.New("invalid input")

// AdvisoryService loads records by id and runs the matching advisor. Errors
// come only from loading records or bad arguments; a failed generation is a
// degraded result, never an error.
type AdvisoryService interface {
	CustomerHealth(ctx context.Context, customerID string) (intelligence.Result[intelligence.HealthAnalysis], error)
	CustomerInsights(ctx context.Context, customerID string) (intelligence.Result[[]intelligence.CustomerInsight], error)
	PortfolioHealth(ctx context.Context, limit int) ([]PortfolioEntry, error)

	BurnRate(ctx context.Context, contractID string) (intelligence.Result[intelligence.BurnRateForecast], error)
	ValidateContract(ctx context.Context, contractID string) (intelligence.Result[intelligence.ValidationReport], error)
	ValidateInvoice(ctx context.Context, invoiceID string) (intelligence.Result[intelligence.ValidationReport], error)

	CapacityConflicts(ctx context.Context, resourceName string) (intelligence.Result[[]intelligence.CapacityConflict], error)

	AnalyzeCanvas(ctx context.Context, canvasID string) (intelligence.Result[[]intelligence.CanvasInsight], error)
	BlockSuggestions(ctx context.Context, canvasID string, block domain.CanvasBlock) (intelligence.Result[intelligence.BlockSuggestion], error)

	AnalyzePerspective(ctx context.Context, scorecardID string, perspective domain.Perspective) (intelligence.Result[intelligence.PerformanceAnalysis], error)
	StrategicInsights(ctx context.Context, scorecardID string, perspective domain.Perspective) (intelligence.Result[[]intelligence.StrategicInsight], error)

	AnalyzeForce(ctx context.Context, analysisID string, force domain.Force) (intelligence.Result[intelligence.ForceAnalysis], error)
	CompareBenchmark(ctx context.Context, analysisID string) (intelligence.Result[intelligence.BenchmarkComparison], error)

	AnalyzeReadiness(ctx context.Context, initiativeID string) (intelligence.Result[intelligence.ReadinessAnalysis], error)
	StageRecommendations(ctx context.Context, initiativeID string) (intelligence.Result[[]intelligence.StageRecommendation], error)
}

// PortfolioEntry is one customer's health analysis within a portfolio run.
type PortfolioEntry struct {
	CustomerID   string                                          `json:"customer_id"`
	CustomerName string                                          `json:"customer_name"`
	Analysis     intelligence.Result[intelligence.HealthAnalysis] `json:"analysis"`
}

// ScorecardService exposes the deterministic scorecard figures.
type ScorecardService interface {
	Metrics(ctx context.Context, scorecardID string) (*ScorecardMetrics, error)
}

// ScorecardMetrics holds the derived figures for each metric, in stored order,
// and the overall status per perspective that has metrics.
type ScorecardMetrics struct {
	ScorecardID  string               `json:"scorecard_id"`
	Name         string               `json:"name"`
	Period       string               `json:"period"`
	Perspectives []PerspectiveMetrics `json:"perspectives"`
}

type PerspectiveMetrics struct {
	Perspective   domain.Perspective              `json:"perspective"`
	OverallStatus kpi.Status                      `json:"overall_status"`
	Metrics       []intelligence.MetricAssessment `json:"metrics"`
}

// SeedService writes seed files into the record store in one transaction.
type SeedService interface {
	ImportFile(ctx context.Context, path string) (*SeedResult, error)
	Import(ctx context.Context, schema *importer.SeedSchema) (*SeedResult, error)
}

// SeedResult counts the records written per kind.
type SeedResult struct {
	Customers           int `json:"customers"`
	Contracts           int `json:"contracts"`
	Invoices            int `json:"invoices"`
	Scorecards          int `json:"scorecards"`
	Initiatives         int `json:"initiatives"`
	Allocations         int `json:"allocations"`
	Canvases            int `json:"canvases"`
	CompetitiveAnalyses int `json:"competitive_analyses"`
}

// Total returns the number of records written.
func (r *SeedResult) Total() int {
	return r.Customers + r.Contracts + r.Invoices + r.Scorecards +
		r.Initiatives + r.Allocations + r.Canvases + r.CompetitiveAnalyses
}

// Repositories bundles the record-store reads the advisory use cases need.
type Repositories struct {
	Customers   repository.CustomerRepo
	Contracts   repository.ContractRepo
	Invoices    repository.InvoiceRepo
	Scorecards  repository.ScorecardRepo
	Initiatives repository.InitiativeRepo
	Allocations repository.AllocationRepo
	Canvases    repository.CanvasRepo
	Analyses    repository.CompetitiveAnalysisRepo
}
