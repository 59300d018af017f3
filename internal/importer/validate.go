package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var (
	validCustomerStatuses = map[string]bool{"active": true, "at_risk": true, "churned": true, "prospect": true}
	validBillingTypes     = map[string]bool{"fixed": true, "time_and_materials": true, "retainer": true}
	validContractStatuses = map[string]bool{"draft": true, "active": true, "expired": true, "terminated": true}
	validInvoiceStatuses  = map[string]bool{"draft": true, "sent": true, "paid": true, "overdue": true, "void": true}
)

// ValidateSeed checks the seed for errors before conversion and returns all
// of them. Business-rule problems such as a malformed invoice number are left
// for the validation advisor to report.
func ValidateSeed(schema *SeedSchema) []error {
	var errs []error

	customers := newKeySet()
	for i, c := range schema.Customers {
		errs = append(errs, validateCustomer(fmt.Sprintf("customers[%d]", i), &c)...)
		errs = append(errs, customers.add(fmt.Sprintf("customers[%d]", i), c.Ref, c.ID, c.Name)...)
	}

	contracts := newKeySet()
	for i, c := range schema.Contracts {
		path := fmt.Sprintf("contracts[%d]", i)
		errs = append(errs, validateContract(path, &c, customers)...)
		errs = append(errs, contracts.add(path, c.Ref, c.ID, c.Title)...)
	}

	for i, inv := range schema.Invoices {
		errs = append(errs, validateInvoice(fmt.Sprintf("invoices[%d]", i), &inv, customers, contracts)...)
	}

	for i, s := range schema.Scorecards {
		errs = append(errs, validateScorecard(fmt.Sprintf("scorecards[%d]", i), &s)...)
	}
	for i, ci := range schema.Initiatives {
		errs = append(errs, validateInitiative(fmt.Sprintf("initiatives[%d]", i), &ci)...)
	}
	for i, a := range schema.Allocations {
		errs = append(errs, validateAllocation(fmt.Sprintf("allocations[%d]", i), &a)...)
	}
	for i, c := range schema.Canvases {
		errs = append(errs, validateCanvas(fmt.Sprintf("canvases[%d]", i), &c)...)
	}
	for i, a := range schema.CompetitiveAnalyses {
		errs = append(errs, validateAnalysis(fmt.Sprintf("competitive_analyses[%d]", i), &a)...)
	}

	return errs
}

// keySet tracks the refs, ids and names records can be referenced by.
type keySet map[string]bool

func newKeySet() keySet { return keySet{} }

// add registers the non-empty keys. Duplicate refs and ids are errors; a
// duplicate name only makes that name ambiguous.
func (k keySet) add(path, ref, id, name string) []error {
	var errs []error
	if ref != "" {
		if k["ref:"+ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate %q", path, ref))
		}
		k["ref:"+ref] = true
	}
	if id != "" {
		if k["id:"+id] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate %q", path, id))
		}
		k["id:"+id] = true
	}
	if name != "" {
		k["name:"+name] = true
	}
	return errs
}

func (k keySet) has(key string) bool {
	return k["ref:"+key] || k["id:"+key] || k["name:"+key]
}

func validateCustomer(path string, c *CustomerSeed) []error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	if c.Status != "" && !validCustomerStatuses[c.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", path, c.Status))
	}
	errs = appendErr(errs, checkDecimal(path+".monthly_revenue", c.MonthlyRevenue, false))
	if c.HealthScore != nil && (*c.HealthScore < 0 || *c.HealthScore > 100) {
		errs = append(errs, fmt.Errorf("%s.health_score: %d is outside 0-100", path, *c.HealthScore))
	}
	if c.OpenTickets < 0 {
		errs = append(errs, fmt.Errorf("%s.open_tickets must not be negative", path))
	}
	if c.LastContactAt != "" {
		if _, err := parseTimestamp(c.LastContactAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.last_contact_at: invalid timestamp %q (expected RFC 3339 or YYYY-MM-DD)", path, c.LastContactAt))
		}
	}
	errs = appendErr(errs, checkDate(path+".renewal_date", c.RenewalDate, false))
	return errs
}

func validateContract(path string, c *ContractSeed, customers keySet) []error {
	var errs []error
	if c.Customer == "" {
		errs = append(errs, fmt.Errorf("%s.customer is required", path))
	} else if !customers.has(c.Customer) {
		errs = append(errs, fmt.Errorf("%s.customer: unknown customer %q", path, c.Customer))
	}
	if c.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}
	if c.BillingType != "" && !validBillingTypes[c.BillingType] {
		errs = append(errs, fmt.Errorf("%s.billing_type: invalid value %q", path, c.BillingType))
	}
	if c.Status != "" && !validContractStatuses[c.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", path, c.Status))
	}
	errs = appendErr(errs, checkDecimal(path+".total_value", c.TotalValue, true))
	if c.HoursBudget < 0 || c.HoursUsed < 0 {
		errs = append(errs, fmt.Errorf("%s: hours must not be negative", path))
	}
	errs = appendErr(errs, checkDate(path+".start_date", c.StartDate, true))
	errs = appendErr(errs, checkDate(path+".end_date", c.EndDate, false))
	return errs
}

func validateInvoice(path string, inv *InvoiceSeed, customers, contracts keySet) []error {
	var errs []error
	switch {
	case inv.Customer == "" && inv.Contract == "":
		errs = append(errs, fmt.Errorf("%s: customer or contract is required", path))
	case inv.Customer != "" && !customers.has(inv.Customer):
		errs = append(errs, fmt.Errorf("%s.customer: unknown customer %q", path, inv.Customer))
	}
	if inv.Contract != "" && !contracts.has(inv.Contract) {
		errs = append(errs, fmt.Errorf("%s.contract: unknown contract %q", path, inv.Contract))
	}
	if inv.Number == "" {
		errs = append(errs, fmt.Errorf("%s.number is required", path))
	}
	if inv.Status != "" && !validInvoiceStatuses[inv.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", path, inv.Status))
	}
	errs = appendErr(errs, checkDecimal(path+".amount", inv.Amount, true))
	errs = appendErr(errs, checkDate(path+".issued_on", inv.IssuedOn, true))
	errs = appendErr(errs, checkDate(path+".due_on", inv.DueOn, false))
	for j, li := range inv.LineItems {
		itemPath := fmt.Sprintf("%s.line_items[%d]", path, j)
		errs = appendErr(errs, checkDecimal(itemPath+".quantity", li.Quantity, true))
		errs = appendErr(errs, checkDecimal(itemPath+".unit_price", li.UnitPrice, true))
	}
	return errs
}

func validateScorecard(path string, s *ScorecardSeed) []error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	for j, m := range s.Metrics {
		metricPath := fmt.Sprintf("%s.metrics[%d]", path, j)
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", metricPath))
		}
		if !domain.IsValidPerspective(domain.Perspective(m.Perspective)) {
			errs = append(errs, fmt.Errorf("%s.perspective: invalid value %q", metricPath, m.Perspective))
		}
	}
	return errs
}

func validateInitiative(path string, ci *InitiativeSeed) []error {
	var errs []error
	if ci.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	if ci.Stage != "" && !domain.IsValidStage(domain.ADKARStage(ci.Stage)) {
		errs = append(errs, fmt.Errorf("%s.stage: invalid value %q", path, ci.Stage))
	}
	for stage, score := range ci.StageScores {
		if !domain.IsValidStage(domain.ADKARStage(stage)) {
			errs = append(errs, fmt.Errorf("%s.stage_scores: unknown stage %q", path, stage))
		} else if score < 0 || score > 5 {
			errs = append(errs, fmt.Errorf("%s.stage_scores.%s: %g is outside 0-5", path, stage, score))
		}
	}
	errs = appendErr(errs, checkDate(path+".target_date", ci.TargetDate, false))
	return errs
}

func validateAllocation(path string, a *AllocationSeed) []error {
	var errs []error
	if a.Resource == "" {
		errs = append(errs, fmt.Errorf("%s.resource is required", path))
	}
	if a.Project == "" {
		errs = append(errs, fmt.Errorf("%s.project is required", path))
	}
	if a.HoursPerWeek < 0 {
		errs = append(errs, fmt.Errorf("%s.hours_per_week must not be negative", path))
	}
	if a.Capacity < 0 {
		errs = append(errs, fmt.Errorf("%s.capacity_hours_per_week must not be negative", path))
	}
	startErr := checkDate(path+".start_date", a.StartDate, true)
	endErr := checkDate(path+".end_date", a.EndDate, true)
	errs = appendErr(errs, startErr)
	errs = appendErr(errs, endErr)
	if startErr == nil && endErr == nil {
		start, _ := time.Parse(dateLayout, a.StartDate)
		end, _ := time.Parse(dateLayout, a.EndDate)
		if end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", path, a.EndDate, a.StartDate))
		}
	}
	return errs
}

func validateCanvas(path string, c *CanvasSeed) []error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	for block := range c.Blocks {
		if !domain.IsValidBlock(domain.CanvasBlock(block)) {
			errs = append(errs, fmt.Errorf("%s.blocks: unknown block %q", path, block))
		}
	}
	return errs
}

func validateAnalysis(path string, a *AnalysisSeed) []error {
	var errs []error
	if a.Company == "" {
		errs = append(errs, fmt.Errorf("%s.company is required", path))
	}
	for force := range a.Forces {
		if !domain.IsValidForce(domain.Force(force)) {
			errs = append(errs, fmt.Errorf("%s.forces: unknown force %q", path, force))
		}
	}
	return errs
}

func checkDecimal(path, value string, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", path)
		}
		return nil
	}
	if _, err := decimal.NewFromString(value); err != nil {
		return fmt.Errorf("%s: invalid amount %q", path, value)
	}
	return nil
}

func checkDate(path, value string, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", path)
		}
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", path, value)
	}
	return nil
}

// parseTimestamp accepts RFC 3339 or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}
