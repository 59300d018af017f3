package intelligence

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/alexanderramin/compass/internal/llm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBurnRateAdvisor(client llm.LLMClient) *burnRateAdvisor {
	a := NewBurnRateAdvisor(client, llm.NoopObserver{}, zap.NewNop()).(*burnRateAdvisor)
	a.now = func() time.Time { return fixedNow }
	return a
}

func testContract() *domain.Contract {
	return &domain.Contract{
		ID:          "ctr-1",
		CustomerID:  "cust-1",
		Title:       "Platform retainer",
		BillingType: domain.BillingRetainer,
		TotalValue:  decimal.RequireFromString("60000"),
		Currency:    "USD",
		HoursBudget: 400,
		HoursUsed:   320,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.ContractActive,
	}
}

func testInvoices() []*domain.Invoice {
	return []*domain.Invoice{
		{ID: "inv-1", Number: "INV-2024-001", Amount: decimal.RequireFromString("10000.00"), Status: domain.InvoicePaid, IssuedOn: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "inv-2", Number: "INV-2024-002", Amount: decimal.RequireFromString("8000.00"), Status: domain.InvoiceSent, IssuedOn: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "inv-3", Number: "INV-2024-003", Amount: decimal.RequireFromString("5000.00"), Status: domain.InvoiceVoid, IssuedOn: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestComputeSpend(t *testing.T) {
	s := ComputeSpend(testContract(), testInvoices(), fixedNow)

	// Jan 1 to Jun 15: six started months; the void invoice is ignored.
	assert.Equal(t, 6, s.MonthsElapsed)
	assert.True(t, s.BilledTotal.Equal(decimal.RequireFromString("18000")))
	assert.True(t, s.MonthlyBurn.Equal(decimal.RequireFromString("3000")))
	assert.Equal(t, 30, s.BudgetConsumed)
	assert.Equal(t, 80, s.Hours.ProgressPercentage)
	assert.Equal(t, kpi.StatusOnTrack, s.Hours.Status)
	require.NotNil(t, s.MonthsRemaining)
	assert.Equal(t, "14", s.MonthsRemaining.String())
}

func TestComputeSpend_NoInvoices(t *testing.T) {
	c := testContract()
	c.HoursBudget = 0

	s := ComputeSpend(c, nil, fixedNow)

	assert.True(t, s.MonthlyBurn.IsZero())
	assert.Nil(t, s.MonthsRemaining)
	assert.Equal(t, 0, s.Hours.ProgressPercentage)
	assert.Equal(t, kpi.StatusNotStarted, s.Hours.Status)
}

func TestForecastBurnRate_OverwritesDerivedFields(t *testing.T) {
	client := &mockLLMClient{response: `{"churn_risk":"high","churn_probability":70,"summary":"Spend slowing","monthly_burn":"999999","hours_utilization":5,"drivers":["late payments"]}`}

	res := newTestBurnRateAdvisor(client).ForecastBurnRate(context.Background(), testContract(), testInvoices())

	require.False(t, res.Degraded)
	f := res.Value
	assert.Equal(t, "ctr-1", f.ContractID)
	assert.Equal(t, RiskHigh, f.ChurnRisk)
	assert.Equal(t, 70, f.ChurnProbability)
	assert.True(t, f.MonthlyBurn.Equal(decimal.RequireFromString("3000")), "got %s", f.MonthlyBurn)
	assert.Equal(t, 80, f.HoursUtilization)
	assert.Equal(t, []string{"late payments"}, f.Drivers)
	assert.Equal(t, []string{}, f.Recommendations)
}

func TestForecastBurnRate_FallbackStillCarriesSpend(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrUnavailable}

	res := newTestBurnRateAdvisor(client).ForecastBurnRate(context.Background(), testContract(), testInvoices())

	assert.True(t, res.Degraded)
	assert.Equal(t, RiskMedium, res.Value.ChurnRisk)
	assert.Equal(t, 30, res.Value.BudgetConsumed)
	assert.True(t, res.Value.BilledTotal.Equal(decimal.RequireFromString("18000")))
}

func TestForecastBurnRate_InvalidProbabilityFallsBack(t *testing.T) {
	client := &mockLLMClient{response: `{"churn_risk":"low","churn_probability":-4}`}

	res := newTestBurnRateAdvisor(client).ForecastBurnRate(context.Background(), testContract(), testInvoices())

	assert.True(t, res.Degraded)
}

func TestBuildBurnRatePrompt(t *testing.T) {
	c := testContract()
	inv := testInvoices()
	prompt := BuildBurnRatePrompt(c, inv, ComputeSpend(c, inv, fixedNow))

	assert.Contains(t, prompt, "- Total value: 60000.00 USD")
	assert.Contains(t, prompt, "- End date: Not specified")
	assert.Contains(t, prompt, "- Average monthly burn: 3000.00 USD")
	assert.Contains(t, prompt, "- Hours utilization: 80% (on_track)")
	assert.Contains(t, prompt, "INV-2024-002 | 2024-04-01 | 8000.00 USD | sent")
}
