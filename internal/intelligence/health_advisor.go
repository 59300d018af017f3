package intelligence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

// HealthAdvisor scores customer accounts and surfaces account insights.
type HealthAdvisor interface {
	// AnalyzeHealth scores a customer's health from 0 to 100.
	AnalyzeHealth(ctx context.Context, customer *domain.Customer) Result[HealthAnalysis]

	// CustomerInsights lists risks, opportunities and actions for a customer.
	CustomerInsights(ctx context.Context, customer *domain.Customer) Result[[]CustomerInsight]
}

type healthAdvisor struct {
	engine
}

// NewHealthAdvisor creates a HealthAdvisor backed by an LLM client.
func NewHealthAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) HealthAdvisor {
	return &healthAdvisor{engine: newEngine(client, observer, log)}
}

func (a *healthAdvisor) AnalyzeHealth(ctx context.Context, customer *domain.Customer) Result[HealthAnalysis] {
	return run(ctx, a.engine, advisory[HealthAnalysis]{
		task:     llm.TaskHealth,
		system:   healthSystemPrompt,
		prompt:   BuildHealthPrompt(customer, a.now()),
		shape:    llm.ShapeObject,
		validate: validateHealthAnalysis,
		fallback: func() HealthAnalysis { return FallbackHealthAnalysis(customer.ID) },
		finalize: func(h *HealthAnalysis) {
			h.CustomerID = customer.ID
			h.RiskFactors = emptyIfNil(h.RiskFactors)
			h.PositiveSignals = emptyIfNil(h.PositiveSignals)
			h.Recommendations = emptyIfNil(h.Recommendations)
		},
	})
}

func (a *healthAdvisor) CustomerInsights(ctx context.Context, customer *domain.Customer) Result[[]CustomerInsight] {
	return run(ctx, a.engine, advisory[[]CustomerInsight]{
		task:     llm.TaskHealth,
		system:   insightsSystemPrompt,
		prompt:   BuildHealthPrompt(customer, a.now()),
		shape:    llm.ShapeArray,
		fallback: func() []CustomerInsight { return FallbackCustomerInsights(customer.ID) },
		finalize: func(items *[]CustomerInsight) {
			*items = emptyIfNil(*items)
			for i := range *items {
				(*items)[i].CustomerID = customer.ID
			}
		},
	})
}

func validateHealthAnalysis(h HealthAnalysis) error {
	if h.HealthScore < 0 || h.HealthScore > 100 {
		return fmt.Errorf("health_score %d out of range [0,100]", h.HealthScore)
	}
	switch h.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
	default:
		return fmt.Errorf("unknown risk_level %q", h.RiskLevel)
	}
	return nil
}

// BuildHealthPrompt renders the customer record for health and insight prompts.
func BuildHealthPrompt(c *domain.Customer, now time.Time) string {
	var p promptBuilder
	p.section("Customer")
	p.field("Name", c.Name)
	p.field("Industry", c.Industry)
	p.field("Segment", c.Segment)
	p.field("Status", string(c.Status))
	p.field("Monthly revenue", domain.MoneyOrNotSpecified(c.MonthlyRevenue, c.Currency))
	p.field("Recorded health score", domain.IntOrNotSpecified(c.HealthScore))
	p.field("Open support tickets", strconv.Itoa(c.OpenTickets))
	p.field("Days since last contact", domain.IntOrNotSpecified(c.DaysSinceContact(now)))
	p.field("Renewal date", domain.DateOrNotSpecified(c.RenewalDate))
	p.section("Account notes")
	p.line("%s", domain.OrNotSpecified(c.Notes))
	return p.String()
}

const healthSystemPrompt = `You are a customer success analyst for a professional services firm.
Assess the health of the customer account described by the user.

You must output ONLY a JSON object with these fields:
- health_score: integer 0 to 100 (100 = very healthy)
- risk_level: one of "low", "medium", "high", "critical"
- summary: 1-2 sentence assessment
- risk_factors: array of short strings
- positive_signals: array of short strings
- recommendations: array of concrete next steps

CRITICAL RULES:
1. Base the assessment only on the data given; "Not specified" means unknown
2. Use strict JSON numeric literals
3. Output ONLY the JSON object, no markdown, no explanation`

const insightsSystemPrompt = `You are a customer success analyst for a professional services firm.
Produce actionable insights about the customer account described by the user.

You must output ONLY a JSON array of 2 to 5 objects, each with:
- type: one of "risk", "opportunity", "action"
- title: short headline
- description: 1-2 sentences
- priority: one of "high", "medium", "low"
- action: the concrete next step

Output ONLY the JSON array, no markdown, no explanation.`
