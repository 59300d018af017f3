package testutil

import (
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ptr[T any](v T) *T { return &v }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Customer options
type CustomerOption func(*domain.Customer)

func WithCustomerStatus(s domain.CustomerStatus) CustomerOption {
	return func(c *domain.Customer) { c.Status = s }
}

func WithHealthScore(score int) CustomerOption {
	return func(c *domain.Customer) { c.HealthScore = ptr(score) }
}

func WithLastContact(t time.Time) CustomerOption {
	return func(c *domain.Customer) { c.LastContactAt = &t }
}

func WithRenewalDate(t time.Time) CustomerOption {
	return func(c *domain.Customer) { c.RenewalDate = &t }
}

func WithOpenTickets(n int) CustomerOption {
	return func(c *domain.Customer) { c.OpenTickets = n }
}

func NewTestCustomer(name string, opts ...CustomerOption) *domain.Customer {
	c := &domain.Customer{
		ID:             uuid.New().String(),
		Name:           name,
		Industry:       "Manufacturing",
		Segment:        "mid-market",
		Status:         domain.CustomerActive,
		MonthlyRevenue: decimal.RequireFromString("4200.50"),
		Currency:       "EUR",
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Contract options
type ContractOption func(*domain.Contract)

func WithBillingType(b domain.BillingType) ContractOption {
	return func(c *domain.Contract) { c.BillingType = b }
}

func WithTotalValue(v string) ContractOption {
	return func(c *domain.Contract) { c.TotalValue = decimal.RequireFromString(v) }
}

func WithHours(budget, used float64) ContractOption {
	return func(c *domain.Contract) {
		c.HoursBudget = budget
		c.HoursUsed = used
	}
}

func WithContractDates(start time.Time, end *time.Time) ContractOption {
	return func(c *domain.Contract) {
		c.StartDate = start
		c.EndDate = end
	}
}

func NewTestContract(customerID string, opts ...ContractOption) *domain.Contract {
	c := &domain.Contract{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		Title:       "Support retainer",
		BillingType: domain.BillingRetainer,
		TotalValue:  decimal.RequireFromString("60000"),
		Currency:    "EUR",
		HoursBudget: 400,
		HoursUsed:   120,
		StartDate:   day(2024, time.January, 1),
		Status:      domain.ContractActive,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoice options
type InvoiceOption func(*domain.Invoice)

func WithInvoiceStatus(s domain.InvoiceStatus) InvoiceOption {
	return func(inv *domain.Invoice) { inv.Status = s }
}

func WithIssuedOn(t time.Time) InvoiceOption {
	return func(inv *domain.Invoice) { inv.IssuedOn = t }
}

func WithoutContract() InvoiceOption {
	return func(inv *domain.Invoice) { inv.ContractID = "" }
}

// NewTestInvoice returns an invoice whose line items sum to amount.
func NewTestInvoice(customerID, contractID, number, amount string, opts ...InvoiceOption) *domain.Invoice {
	inv := &domain.Invoice{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		ContractID: contractID,
		Number:     number,
		Amount:     decimal.RequireFromString(amount),
		Currency:   "EUR",
		IssuedOn:   day(2024, time.March, 1),
		DueOn:      ptr(day(2024, time.March, 31)),
		Status:     domain.InvoiceSent,
		LineItems: []domain.LineItem{{
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString(amount),
		}},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func NewTestScorecard(name string, metrics ...domain.ScorecardMetric) *domain.Scorecard {
	s := &domain.Scorecard{
		ID:           uuid.New().String(),
		Name:         name,
		Organization: "Acme",
		Period:       "2024-Q2",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	for _, m := range metrics {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		m.ScorecardID = s.ID
		s.Metrics = append(s.Metrics, m)
	}
	return s
}

// NewTestMetric builds a metric without a previous value.
func NewTestMetric(p domain.Perspective, name string, current, target float64) domain.ScorecardMetric {
	return domain.ScorecardMetric{
		ID:           uuid.New().String(),
		Perspective:  p,
		Name:         name,
		CurrentValue: current,
		TargetValue:  target,
	}
}

func NewTestInitiative(name string, stage domain.ADKARStage, scores map[domain.ADKARStage]float64) *domain.ChangeInitiative {
	return &domain.ChangeInitiative{
		ID:             uuid.New().String(),
		Name:           name,
		Sponsor:        "COO",
		Stage:          stage,
		ImpactedGroups: []string{"Operations"},
		StageScores:    scores,
		TargetDate:     ptr(day(2024, time.December, 31)),
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestAllocation(resource, project string, start, end time.Time, hours float64) *domain.Allocation {
	return &domain.Allocation{
		ID:                   uuid.New().String(),
		ResourceName:         resource,
		ProjectName:          project,
		StartDate:            start,
		EndDate:              end,
		HoursPerWeek:         hours,
		CapacityHoursPerWeek: 40,
	}
}

func NewTestCanvas(name string) *domain.Canvas {
	return &domain.Canvas{
		ID:   uuid.New().String(),
		Name: name,
		Blocks: map[domain.CanvasBlock][]string{
			domain.BlockValuePropositions: {"Faster onboarding"},
			domain.BlockCustomerSegments:  {"Mid-size manufacturers"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestCompetitiveAnalysis(company string) *domain.CompetitiveAnalysis {
	return &domain.CompetitiveAnalysis{
		ID:          uuid.New().String(),
		Company:     company,
		Industry:    "Industrial IoT",
		Competitors: []string{"Globex"},
		Forces: map[domain.Force]domain.ForceInput{
			domain.ForceRivalry: {Intensity: "high", Factors: []string{"Price wars"}},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
