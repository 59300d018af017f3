package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dataset holds the domain records converted from a seed, in file order.
type Dataset struct {
	Customers           []*domain.Customer
	Contracts           []*domain.Contract
	Invoices            []*domain.Invoice
	Scorecards          []*domain.Scorecard
	Initiatives         []*domain.ChangeInitiative
	Allocations         []*domain.Allocation
	Canvases            []*domain.Canvas
	CompetitiveAnalyses []*domain.CompetitiveAnalysis
}

// Count returns the total number of records.
func (d *Dataset) Count() int {
	return len(d.Customers) + len(d.Contracts) + len(d.Invoices) + len(d.Scorecards) +
		len(d.Initiatives) + len(d.Allocations) + len(d.Canvases) + len(d.CompetitiveAnalyses)
}

// refIndex maps the ref, id and name of each record to its final id. Refs and
// ids take precedence over names.
type refIndex struct {
	keys  map[string]string
	names map[string]string
}

func newRefIndex() *refIndex {
	return &refIndex{keys: map[string]string{}, names: map[string]string{}}
}

func (r *refIndex) add(id, ref, seedID, name string) {
	for _, k := range []string{ref, seedID, id} {
		if k != "" {
			r.keys[k] = id
		}
	}
	if _, taken := r.names[name]; name != "" && !taken {
		r.names[name] = id
	}
}

func (r *refIndex) resolve(key string) (string, bool) {
	if id, ok := r.keys[key]; ok {
		return id, true
	}
	id, ok := r.names[key]
	return id, ok
}

// Convert transforms a validated seed into domain records with ids assigned.
// Call ValidateSeed first; Convert assumes the seed is valid.
func Convert(schema *SeedSchema, now time.Time) (*Dataset, error) {
	now = now.UTC().Truncate(time.Second)
	ds := &Dataset{}

	customerIDs := newRefIndex()
	for _, s := range schema.Customers {
		c, err := convertCustomer(&s, now)
		if err != nil {
			return nil, fmt.Errorf("customer %q: %w", s.Name, err)
		}
		customerIDs.add(c.ID, s.Ref, s.ID, s.Name)
		ds.Customers = append(ds.Customers, c)
	}

	contractIDs := newRefIndex()
	contractCustomer := map[string]string{}
	for _, s := range schema.Contracts {
		customerID, ok := customerIDs.resolve(s.Customer)
		if !ok {
			return nil, fmt.Errorf("contract %q: unknown customer %q", s.Title, s.Customer)
		}
		c, err := convertContract(&s, customerID, now)
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", s.Title, err)
		}
		contractIDs.add(c.ID, s.Ref, s.ID, s.Title)
		contractCustomer[c.ID] = customerID
		ds.Contracts = append(ds.Contracts, c)
	}

	for _, s := range schema.Invoices {
		var contractID, customerID string
		if s.Contract != "" {
			id, ok := contractIDs.resolve(s.Contract)
			if !ok {
				return nil, fmt.Errorf("invoice %q: unknown contract %q", s.Number, s.Contract)
			}
			contractID = id
			customerID = contractCustomer[id]
		}
		if s.Customer != "" {
			id, ok := customerIDs.resolve(s.Customer)
			if !ok {
				return nil, fmt.Errorf("invoice %q: unknown customer %q", s.Number, s.Customer)
			}
			customerID = id
		}
		inv, err := convertInvoice(&s, customerID, contractID, now)
		if err != nil {
			return nil, fmt.Errorf("invoice %q: %w", s.Number, err)
		}
		ds.Invoices = append(ds.Invoices, inv)
	}

	for _, s := range schema.Scorecards {
		ds.Scorecards = append(ds.Scorecards, convertScorecard(&s, now))
	}
	for _, s := range schema.Initiatives {
		ci, err := convertInitiative(&s, now)
		if err != nil {
			return nil, fmt.Errorf("initiative %q: %w", s.Name, err)
		}
		ds.Initiatives = append(ds.Initiatives, ci)
	}
	for _, s := range schema.Allocations {
		a, err := convertAllocation(&s)
		if err != nil {
			return nil, fmt.Errorf("allocation %s/%s: %w", s.Resource, s.Project, err)
		}
		ds.Allocations = append(ds.Allocations, a)
	}
	for _, s := range schema.Canvases {
		ds.Canvases = append(ds.Canvases, convertCanvas(&s, now))
	}
	for _, s := range schema.CompetitiveAnalyses {
		ds.CompetitiveAnalyses = append(ds.CompetitiveAnalyses, convertAnalysis(&s, now))
	}

	return ds, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func convertCustomer(s *CustomerSeed, now time.Time) (*domain.Customer, error) {
	revenue, err := optionalDecimal(s.MonthlyRevenue)
	if err != nil {
		return nil, err
	}
	c := &domain.Customer{
		ID:             idOrNew(s.ID),
		Name:           s.Name,
		Industry:       s.Industry,
		Segment:        s.Segment,
		Status:         domain.CustomerStatus(s.Status),
		MonthlyRevenue: revenue,
		Currency:       strings.ToUpper(s.Currency),
		HealthScore:    s.HealthScore,
		OpenTickets:    s.OpenTickets,
		Notes:          s.Notes,
		CreatedAt:      now,
	}
	if c.Status == "" {
		c.Status = domain.CustomerActive
	}
	if s.LastContactAt != "" {
		t, err := parseTimestamp(s.LastContactAt)
		if err != nil {
			return nil, fmt.Errorf("parsing last_contact_at: %w", err)
		}
		c.LastContactAt = &t
	}
	if c.RenewalDate, err = optionalDate(s.RenewalDate); err != nil {
		return nil, fmt.Errorf("parsing renewal_date: %w", err)
	}
	return c, nil
}

func convertContract(s *ContractSeed, customerID string, now time.Time) (*domain.Contract, error) {
	total, err := decimal.NewFromString(s.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("parsing total_value: %w", err)
	}
	start, err := time.Parse(dateLayout, s.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	end, err := optionalDate(s.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	c := &domain.Contract{
		ID:          idOrNew(s.ID),
		CustomerID:  customerID,
		Title:       s.Title,
		BillingType: domain.BillingType(s.BillingType),
		TotalValue:  total,
		Currency:    strings.ToUpper(s.Currency),
		HoursBudget: s.HoursBudget,
		HoursUsed:   s.HoursUsed,
		StartDate:   start,
		EndDate:     end,
		Status:      domain.ContractStatus(s.Status),
		CreatedAt:   now,
	}
	if c.BillingType == "" {
		c.BillingType = domain.BillingFixed
	}
	if c.Status == "" {
		c.Status = domain.ContractActive
	}
	return c, nil
}

func convertInvoice(s *InvoiceSeed, customerID, contractID string, now time.Time) (*domain.Invoice, error) {
	amount, err := decimal.NewFromString(s.Amount)
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}
	issued, err := time.Parse(dateLayout, s.IssuedOn)
	if err != nil {
		return nil, fmt.Errorf("parsing issued_on: %w", err)
	}
	due, err := optionalDate(s.DueOn)
	if err != nil {
		return nil, fmt.Errorf("parsing due_on: %w", err)
	}

	items := make([]domain.LineItem, 0, len(s.LineItems))
	for _, li := range s.LineItems {
		qty, err := decimal.NewFromString(li.Quantity)
		if err != nil {
			return nil, fmt.Errorf("parsing line item quantity: %w", err)
		}
		price, err := decimal.NewFromString(li.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("parsing line item unit_price: %w", err)
		}
		items = append(items, domain.LineItem{Description: li.Description, Quantity: qty, UnitPrice: price})
	}

	inv := &domain.Invoice{
		ID:         idOrNew(s.ID),
		CustomerID: customerID,
		ContractID: contractID,
		Number:     s.Number,
		Amount:     amount,
		Currency:   strings.ToUpper(s.Currency),
		IssuedOn:   issued,
		DueOn:      due,
		Status:     domain.InvoiceStatus(s.Status),
		LineItems:  items,
		CreatedAt:  now,
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}
	return inv, nil
}

func convertScorecard(s *ScorecardSeed, now time.Time) *domain.Scorecard {
	sc := &domain.Scorecard{
		ID:           idOrNew(s.ID),
		Name:         s.Name,
		Organization: s.Organization,
		Period:       s.Period,
		Metrics:      make([]domain.ScorecardMetric, 0, len(s.Metrics)),
		CreatedAt:    now,
	}
	for _, m := range s.Metrics {
		sc.Metrics = append(sc.Metrics, domain.ScorecardMetric{
			ID:            uuid.New().String(),
			ScorecardID:   sc.ID,
			Perspective:   domain.Perspective(m.Perspective),
			Name:          m.Name,
			Unit:          m.Unit,
			CurrentValue:  m.Current,
			TargetValue:   m.Target,
			PreviousValue: m.Previous,
		})
	}
	return sc
}

func convertInitiative(s *InitiativeSeed, now time.Time) (*domain.ChangeInitiative, error) {
	target, err := optionalDate(s.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("parsing target_date: %w", err)
	}
	ci := &domain.ChangeInitiative{
		ID:             idOrNew(s.ID),
		Name:           s.Name,
		Description:    s.Description,
		Sponsor:        s.Sponsor,
		Stage:          domain.ADKARStage(s.Stage),
		ImpactedGroups: s.ImpactedGroups,
		StageScores:    make(map[domain.ADKARStage]float64, len(s.StageScores)),
		TargetDate:     target,
		CreatedAt:      now,
	}
	if ci.Stage == "" {
		ci.Stage = domain.StageAwareness
	}
	for stage, score := range s.StageScores {
		ci.StageScores[domain.ADKARStage(stage)] = score
	}
	return ci, nil
}

func convertAllocation(s *AllocationSeed) (*domain.Allocation, error) {
	start, err := time.Parse(dateLayout, s.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	end, err := time.Parse(dateLayout, s.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	capacity := s.Capacity
	if capacity == 0 {
		capacity = 40
	}
	return &domain.Allocation{
		ID:                   idOrNew(s.ID),
		ResourceName:         s.Resource,
		ProjectName:          s.Project,
		StartDate:            start,
		EndDate:              end,
		HoursPerWeek:         s.HoursPerWeek,
		CapacityHoursPerWeek: capacity,
	}, nil
}

func convertCanvas(s *CanvasSeed, now time.Time) *domain.Canvas {
	c := &domain.Canvas{
		ID:          idOrNew(s.ID),
		Name:        s.Name,
		Description: s.Description,
		Blocks:      make(map[domain.CanvasBlock][]string, len(s.Blocks)),
		CreatedAt:   now,
	}
	for block, entries := range s.Blocks {
		c.Blocks[domain.CanvasBlock(block)] = entries
	}
	return c
}

func convertAnalysis(s *AnalysisSeed, now time.Time) *domain.CompetitiveAnalysis {
	ca := &domain.CompetitiveAnalysis{
		ID:          idOrNew(s.ID),
		Company:     s.Company,
		Industry:    s.Industry,
		Competitors: s.Competitors,
		Forces:      make(map[domain.Force]domain.ForceInput, len(s.Forces)),
		Notes:       s.Notes,
		CreatedAt:   now,
	}
	for force, in := range s.Forces {
		ca.Forces[domain.Force(force)] = domain.ForceInput{Intensity: in.Intensity, Factors: in.Factors}
	}
	return ca
}

func optionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
