package intelligence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/alexanderramin/compass/internal/llm"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BurnRateAdvisor forecasts contract spend and churn risk.
type BurnRateAdvisor interface {
	ForecastBurnRate(ctx context.Context, contract *domain.Contract, invoices []*domain.Invoice) Result[BurnRateForecast]
}

type burnRateAdvisor struct {
	engine
}

// NewBurnRateAdvisor creates a BurnRateAdvisor backed by an LLM client.
func NewBurnRateAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) BurnRateAdvisor {
	return &burnRateAdvisor{engine: newEngine(client, observer, log)}
}

func (a *burnRateAdvisor) ForecastBurnRate(ctx context.Context, contract *domain.Contract, invoices []*domain.Invoice) Result[BurnRateForecast] {
	spend := ComputeSpend(contract, invoices, a.now())
	return run(ctx, a.engine, advisory[BurnRateForecast]{
		task:     llm.TaskBurnRate,
		system:   burnRateSystemPrompt,
		prompt:   BuildBurnRatePrompt(contract, invoices, spend),
		shape:    llm.ShapeObject,
		validate: validateBurnRate,
		fallback: func() BurnRateForecast { return FallbackBurnRateForecast(contract.ID) },
		finalize: func(f *BurnRateForecast) {
			f.ContractID = contract.ID
			spend.apply(f)
			f.Drivers = emptyIfNil(f.Drivers)
			f.Recommendations = emptyIfNil(f.Recommendations)
		},
	})
}

// Spend holds the figures computed from billing records.
type Spend struct {
	BilledTotal     decimal.Decimal
	MonthsElapsed   int
	MonthlyBurn     decimal.Decimal
	BudgetConsumed  int
	Hours           kpi.DerivedMetric
	MonthsRemaining *decimal.Decimal
}

// ComputeSpend derives burn figures for a contract. Void invoices are ignored.
// MonthsRemaining is nil when there is no burn or no contract value to burn down.
func ComputeSpend(contract *domain.Contract, invoices []*domain.Invoice, now time.Time) Spend {
	billed := domain.BilledTotal(invoices)
	months := contract.MonthsElapsed(now)
	burn := billed.Div(decimal.NewFromInt(int64(months))).Round(2)

	s := Spend{
		BilledTotal:    billed,
		MonthsElapsed:  months,
		MonthlyBurn:    burn,
		BudgetConsumed: kpi.ProgressPercentage(billed.InexactFloat64(), contract.TotalValue.InexactFloat64()),
		Hours:          kpi.Calculate(contract.HoursUsed, contract.HoursBudget, nil),
	}
	if burn.IsPositive() && contract.TotalValue.IsPositive() {
		remaining := contract.TotalValue.Sub(billed)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		m := remaining.Div(burn).Round(1)
		s.MonthsRemaining = &m
	}
	return s
}

func (s Spend) apply(f *BurnRateForecast) {
	f.BilledTotal = s.BilledTotal
	f.MonthlyBurn = s.MonthlyBurn
	f.BudgetConsumed = s.BudgetConsumed
	f.HoursUtilization = s.Hours.ProgressPercentage
	f.UtilizationStatus = s.Hours.Status
	f.MonthsRemaining = s.MonthsRemaining
}

func validateBurnRate(f BurnRateForecast) error {
	if f.ChurnProbability < 0 || f.ChurnProbability > 100 {
		return fmt.Errorf("churn_probability %d out of range [0,100]", f.ChurnProbability)
	}
	switch f.ChurnRisk {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
	default:
		return fmt.Errorf("unknown churn_risk %q", f.ChurnRisk)
	}
	return nil
}

// BuildBurnRatePrompt renders a contract, its spend figures and its invoices.
func BuildBurnRatePrompt(c *domain.Contract, invoices []*domain.Invoice, s Spend) string {
	var p promptBuilder
	p.section("Contract")
	p.field("Title", c.Title)
	p.field("Billing type", string(c.BillingType))
	p.field("Status", string(c.Status))
	p.field("Total value", domain.MoneyOrNotSpecified(c.TotalValue, c.Currency))
	p.field("Start date", domain.DateOrNotSpecified(&c.StartDate))
	p.field("End date", domain.DateOrNotSpecified(c.EndDate))
	p.field("Hours budget", formatHours(c.HoursBudget))
	p.field("Hours used", formatHours(c.HoursUsed))

	p.section("Spend")
	p.field("Billed to date", domain.MoneyOrNotSpecified(s.BilledTotal, c.Currency))
	p.field("Months elapsed", strconv.Itoa(s.MonthsElapsed))
	p.field("Average monthly burn", domain.MoneyOrNotSpecified(s.MonthlyBurn, c.Currency))
	p.field("Budget consumed", fmt.Sprintf("%d%%", s.BudgetConsumed))
	p.field("Hours utilization", fmt.Sprintf("%d%% (%s)", s.Hours.ProgressPercentage, s.Hours.Status))
	if s.MonthsRemaining != nil {
		p.field("Months of budget remaining at current burn", s.MonthsRemaining.String())
	} else {
		p.field("Months of budget remaining at current burn", "")
	}

	p.section("Invoices")
	if len(invoices) == 0 {
		p.line("  - %s", domain.NotSpecified)
	}
	for _, inv := range invoices {
		p.line("  - %s | %s | %s | %s",
			domain.OrNotSpecified(inv.Number),
			domain.DateOrNotSpecified(&inv.IssuedOn),
			domain.MoneyOrNotSpecified(inv.Amount, domain.CoalesceStr(inv.Currency, c.Currency)),
			inv.Status,
		)
	}
	return p.String()
}

// formatHours renders an hour figure, treating zero as unknown.
func formatHours(h float64) string {
	if h == 0 {
		return ""
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}

const burnRateSystemPrompt = `You are a revenue operations analyst for a professional services firm.
You will receive a contract, spend figures computed from its invoices, and the invoice list.
Forecast whether the customer is likely to churn at or before the contract end.

You must output ONLY a JSON object with these fields:
- churn_risk: one of "low", "medium", "high", "critical"
- churn_probability: integer 0 to 100
- summary: 1-2 sentence forecast
- drivers: array of short strings naming what drives the risk
- recommendations: array of concrete next steps

CRITICAL RULES:
1. Do NOT recompute the spend figures; they are authoritative
2. Use strict JSON numeric literals
3. Output ONLY the JSON object, no markdown, no explanation`
