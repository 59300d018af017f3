package intelligence

import (
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/shopspring/decimal"
)

// Priority ranks an insight or recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// RiskLevel grades customer health and churn risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity grades validation issues and capacity conflicts.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// --- Customer health ---

// HealthAnalysis is the health assessment of one customer.
type HealthAnalysis struct {
	CustomerID      string    `json:"customer_id"`
	HealthScore     int       `json:"health_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Summary         string    `json:"summary"`
	RiskFactors     []string  `json:"risk_factors"`
	PositiveSignals []string  `json:"positive_signals"`
	Recommendations []string  `json:"recommendations"`
}

// CustomerInsight is a single observation about a customer account.
type CustomerInsight struct {
	CustomerID  string   `json:"customer_id"`
	Type        string   `json:"type"` // risk | opportunity | action
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Action      string   `json:"action"`
}

// --- Burn rate / churn ---

// BurnRateForecast combines spend figures computed from the records with the
// model's churn assessment. MonthlyBurn, HoursUtilization, UtilizationStatus,
// BudgetConsumed and MonthsRemaining are always recomputed locally.
type BurnRateForecast struct {
	ContractID        string           `json:"contract_id"`
	MonthlyBurn       decimal.Decimal  `json:"monthly_burn"`
	BilledTotal       decimal.Decimal  `json:"billed_total"`
	BudgetConsumed    int              `json:"budget_consumed"`
	HoursUtilization  int              `json:"hours_utilization"`
	UtilizationStatus kpi.Status       `json:"utilization_status"`
	MonthsRemaining   *decimal.Decimal `json:"months_remaining"`
	ChurnRisk         RiskLevel        `json:"churn_risk"`
	ChurnProbability  int              `json:"churn_probability"`
	Summary           string           `json:"summary"`
	Drivers           []string         `json:"drivers"`
	Recommendations   []string         `json:"recommendations"`
}

// --- Capacity ---

// CapacityConflict is a period in which a resource is booked beyond capacity.
type CapacityConflict struct {
	ResourceName        string   `json:"resource_name"`
	Projects            []string `json:"projects"`
	PeriodStart         string   `json:"period_start"`
	PeriodEnd           string   `json:"period_end"`
	AllocatedHours      float64  `json:"allocated_hours"`
	CapacityHours       float64  `json:"capacity_hours"`
	OverallocationHours float64  `json:"overallocation_hours"`
	Severity            Severity `json:"severity"`
	Resolution          string   `json:"resolution"`
}

// --- Validation ---

// IssueSource tells whether a validation issue came from a local rule or the model.
type IssueSource string

const (
	SourceRule    IssueSource = "rule"
	SourceAdvisor IssueSource = "advisor"
)

type ValidationIssue struct {
	Field    string      `json:"field"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Source   IssueSource `json:"source"`
}

// ValidationReport is the review of one invoice or contract. IsValid is false
// whenever any issue has error severity.
type ValidationReport struct {
	EntityType  string            `json:"entity_type"` // invoice | contract
	EntityID    string            `json:"entity_id"`
	IsValid     bool              `json:"is_valid"`
	Summary     string            `json:"summary"`
	Issues      []ValidationIssue `json:"issues"`
	Suggestions []string          `json:"suggestions"`
}

// --- Business Model Canvas ---

type CanvasInsight struct {
	CanvasID       string             `json:"canvas_id"`
	Block          domain.CanvasBlock `json:"block"`
	Type           string             `json:"type"` // strength | weakness | opportunity | threat
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Priority       Priority           `json:"priority"`
	Recommendation string             `json:"recommendation"`
}

type BlockSuggestion struct {
	CanvasID    string             `json:"canvas_id"`
	Block       domain.CanvasBlock `json:"block"`
	Suggestions []string           `json:"suggestions"`
	Questions   []string           `json:"questions"`
	Rationale   string             `json:"rationale"`
}

// --- Balanced Scorecard ---

// MetricAssessment pairs a scorecard metric with its derived figures.
type MetricAssessment struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
	kpi.DerivedMetric
}

// PerformanceAnalysis reviews one scorecard perspective. OverallStatus and
// Metrics are computed locally.
type PerformanceAnalysis struct {
	ScorecardID     string             `json:"scorecard_id"`
	PerspectiveType domain.Perspective `json:"perspective_type"`
	OverallStatus   kpi.Status         `json:"overall_status"`
	Summary         string             `json:"summary"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
	Metrics         []MetricAssessment `json:"metrics"`
}

type StrategicInsight struct {
	ScorecardID     string             `json:"scorecard_id"`
	PerspectiveType domain.Perspective `json:"perspective_type"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Priority        Priority           `json:"priority"`
	Initiatives     []string           `json:"initiatives"`
}

// --- Porter's Five Forces ---

type ForceAnalysis struct {
	AnalysisID      string       `json:"analysis_id"`
	ForceType       domain.Force `json:"force_type"`
	Intensity       string       `json:"intensity"` // low | medium | high
	Score           int          `json:"score"`     // 1..5
	Summary         string       `json:"summary"`
	KeyFactors      []string     `json:"key_factors"`
	Threats         []string     `json:"threats"`
	Opportunities   []string     `json:"opportunities"`
	Recommendations []string     `json:"recommendations"`
}

type ForceScore struct {
	ForceType domain.Force `json:"force_type"`
	Score     int          `json:"score"`
}

// BenchmarkComparison positions a company against its industry across all five forces.
type BenchmarkComparison struct {
	AnalysisID            string       `json:"analysis_id"`
	Industry              string       `json:"industry"`
	OverallAttractiveness string       `json:"overall_attractiveness"` // low | medium | high
	Position              string       `json:"position"`
	ForceScores           []ForceScore `json:"force_scores"`
	Strengths             []string     `json:"strengths"`
	Gaps                  []string     `json:"gaps"`
	Recommendations       []string     `json:"recommendations"`
}

// --- ADKAR ---

// StageScore is a 1-5 survey score for one ADKAR stage with its derived figures.
type StageScore struct {
	Stage domain.ADKARStage `json:"stage"`
	kpi.DerivedMetric
}

// ReadinessAnalysis assesses a change initiative at its current stage.
// StageScores and BarrierPoint are computed locally from survey scores.
type ReadinessAnalysis struct {
	InitiativeID    string            `json:"initiative_id"`
	Stage           domain.ADKARStage `json:"stage"`
	ReadinessScore  int               `json:"readiness_score"`
	ReadinessLevel  string            `json:"readiness_level"` // ready | partially_ready | not_ready
	Summary         string            `json:"summary"`
	Barriers        []string          `json:"barriers"`
	Enablers        []string          `json:"enablers"`
	Recommendations []string          `json:"recommendations"`
	StageScores     []StageScore      `json:"stage_scores"`
	BarrierPoint    domain.ADKARStage `json:"barrier_point,omitempty"`
}

type StageRecommendation struct {
	InitiativeID string            `json:"initiative_id"`
	Stage        domain.ADKARStage `json:"stage"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Priority     Priority          `json:"priority"`
	Actions      []string          `json:"actions"`
}
