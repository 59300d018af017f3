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

const (
	EntityInvoice  = "invoice"
	EntityContract = "contract"
)

// ValidationAdvisor reviews invoices and contracts. Rule checks always run;
// the model adds issues and suggestions on top of them.
type ValidationAdvisor interface {
	// ValidateInvoice reviews an invoice, optionally against its contract.
	ValidateInvoice(ctx context.Context, invoice *domain.Invoice, contract *domain.Contract) Result[ValidationReport]

	ValidateContract(ctx context.Context, contract *domain.Contract) Result[ValidationReport]
}

type validationAdvisor struct {
	engine
}

// NewValidationAdvisor creates a ValidationAdvisor backed by an LLM client.
func NewValidationAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) ValidationAdvisor {
	return &validationAdvisor{engine: newEngine(client, observer, log)}
}

func (a *validationAdvisor) ValidateInvoice(ctx context.Context, invoice *domain.Invoice, contract *domain.Contract) Result[ValidationReport] {
	rules := CheckInvoice(invoice, contract)
	return run(ctx, a.engine, advisory[ValidationReport]{
		task:     llm.TaskValidation,
		system:   validationSystemPrompt,
		prompt:   BuildInvoicePrompt(invoice, contract, rules),
		shape:    llm.ShapeObject,
		fallback: func() ValidationReport { return FallbackValidationReport(EntityInvoice, invoice.ID) },
		finalize: func(r *ValidationReport) {
			r.EntityType = EntityInvoice
			r.EntityID = invoice.ID
			mergeRuleIssues(r, rules)
		},
	})
}

func (a *validationAdvisor) ValidateContract(ctx context.Context, contract *domain.Contract) Result[ValidationReport] {
	rules := CheckContract(contract, a.now())
	return run(ctx, a.engine, advisory[ValidationReport]{
		task:     llm.TaskValidation,
		system:   validationSystemPrompt,
		prompt:   BuildContractPrompt(contract, rules),
		shape:    llm.ShapeObject,
		fallback: func() ValidationReport { return FallbackValidationReport(EntityContract, contract.ID) },
		finalize: func(r *ValidationReport) {
			r.EntityType = EntityContract
			r.EntityID = contract.ID
			mergeRuleIssues(r, rules)
		},
	})
}

// mergeRuleIssues puts rule issues first, marks the rest as advisor issues
// and derives IsValid from the merged list.
func mergeRuleIssues(r *ValidationReport, rules []ValidationIssue) {
	issues := make([]ValidationIssue, 0, len(rules)+len(r.Issues))
	issues = append(issues, rules...)
	for _, is := range r.Issues {
		if is.Source == SourceRule {
			continue
		}
		is.Source = SourceAdvisor
		switch is.Severity {
		case SeverityError, SeverityWarning, SeverityInfo:
		default:
			is.Severity = SeverityWarning
		}
		issues = append(issues, is)
	}
	r.Issues = issues
	r.Suggestions = emptyIfNil(r.Suggestions)

	r.IsValid = true
	for _, is := range issues {
		if is.Severity == SeverityError {
			r.IsValid = false
			break
		}
	}
}

func ruleIssue(field string, sev Severity, format string, args ...any) ValidationIssue {
	return ValidationIssue{Field: field, Severity: sev, Message: fmt.Sprintf(format, args...), Source: SourceRule}
}

// CheckInvoice runs the local invoice rules. contract may be nil.
func CheckInvoice(inv *domain.Invoice, contract *domain.Contract) []ValidationIssue {
	issues := []ValidationIssue{}

	if err := inv.ValidateNumber(); err != nil {
		issues = append(issues, ruleIssue("number", SeverityError, "%v", err))
	}
	if !inv.Amount.IsPositive() {
		issues = append(issues, ruleIssue("amount", SeverityError, "amount must be positive, got %s", inv.Amount.StringFixed(2)))
	}
	for i, li := range inv.LineItems {
		if li.Quantity.IsNegative() || li.UnitPrice.IsNegative() {
			issues = append(issues, ruleIssue("line_items", SeverityError, "line item %d has a negative quantity or unit price", i+1))
		}
	}
	if len(inv.LineItems) > 0 {
		if total := inv.LineItemsTotal(); !total.Equal(inv.Amount) {
			issues = append(issues, ruleIssue("line_items", SeverityError,
				"line items total %s does not match amount %s", total.StringFixed(2), inv.Amount.StringFixed(2)))
		}
	}
	if inv.DueOn != nil && inv.DueOn.Before(inv.IssuedOn) {
		issues = append(issues, ruleIssue("due_on", SeverityError, "due date %s is before issue date %s",
			inv.DueOn.Format(dateLayout), inv.IssuedOn.Format(dateLayout)))
	}

	if contract == nil {
		return issues
	}
	if contract.CustomerID != "" && inv.CustomerID != contract.CustomerID {
		issues = append(issues, ruleIssue("customer_id", SeverityError, "invoice customer does not match the contract customer"))
	}
	if contract.TotalValue.IsPositive() && inv.Amount.GreaterThan(contract.TotalValue) {
		issues = append(issues, ruleIssue("amount", SeverityWarning, "amount %s exceeds contract value %s",
			inv.Amount.StringFixed(2), contract.TotalValue.StringFixed(2)))
	}
	if inv.Currency != "" && contract.Currency != "" && inv.Currency != contract.Currency {
		issues = append(issues, ruleIssue("currency", SeverityWarning, "invoice currency %s differs from contract currency %s",
			inv.Currency, contract.Currency))
	}
	if inv.IssuedOn.Before(contract.StartDate) {
		issues = append(issues, ruleIssue("issued_on", SeverityWarning, "invoice issued before the contract start date"))
	}
	return issues
}

// CheckContract runs the local contract rules as of now.
func CheckContract(c *domain.Contract, now time.Time) []ValidationIssue {
	issues := []ValidationIssue{}

	if !c.TotalValue.IsPositive() {
		issues = append(issues, ruleIssue("total_value", SeverityError, "total value must be positive, got %s", c.TotalValue.StringFixed(2)))
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		issues = append(issues, ruleIssue("end_date", SeverityError, "end date %s is before start date %s",
			c.EndDate.Format(dateLayout), c.StartDate.Format(dateLayout)))
	}
	if c.HoursBudget > 0 && c.HoursUsed > c.HoursBudget {
		issues = append(issues, ruleIssue("hours_used", SeverityWarning, "hours used %s exceed the budget of %s",
			strconv.FormatFloat(c.HoursUsed, 'f', -1, 64), strconv.FormatFloat(c.HoursBudget, 'f', -1, 64)))
	}
	if c.BillingType == domain.BillingHourly && c.HoursBudget <= 0 {
		issues = append(issues, ruleIssue("hours_budget", SeverityWarning, "time and materials contract has no hours budget"))
	}
	if c.Status == domain.ContractActive && c.EndDate != nil && c.EndDate.Before(now) {
		issues = append(issues, ruleIssue("status", SeverityWarning, "contract is active but ended on %s", c.EndDate.Format(dateLayout)))
	}
	return issues
}

// BuildInvoicePrompt renders an invoice, its contract and the rule findings.
func BuildInvoicePrompt(inv *domain.Invoice, contract *domain.Contract, rules []ValidationIssue) string {
	var p promptBuilder
	p.section("Invoice")
	p.field("Number", inv.Number)
	p.field("Amount", domain.MoneyOrNotSpecified(inv.Amount, inv.Currency))
	p.field("Issued on", domain.DateOrNotSpecified(&inv.IssuedOn))
	p.field("Due on", domain.DateOrNotSpecified(inv.DueOn))
	p.field("Status", string(inv.Status))
	p.line("- Line items:")
	if len(inv.LineItems) == 0 {
		p.line("  - %s", domain.NotSpecified)
	}
	for _, li := range inv.LineItems {
		p.line("  - %s: %s x %s = %s", domain.OrNotSpecified(li.Description),
			li.Quantity.String(), li.UnitPrice.StringFixed(2), li.Total().StringFixed(2))
	}

	p.section("Contract")
	if contract == nil {
		p.line("%s", domain.NotSpecified)
	} else {
		p.field("Title", contract.Title)
		p.field("Billing type", string(contract.BillingType))
		p.field("Total value", domain.MoneyOrNotSpecified(contract.TotalValue, contract.Currency))
		p.field("Start date", domain.DateOrNotSpecified(&contract.StartDate))
		p.field("End date", domain.DateOrNotSpecified(contract.EndDate))
	}

	writeRuleFindings(&p, rules)
	return p.String()
}

// BuildContractPrompt renders a contract and the rule findings.
func BuildContractPrompt(c *domain.Contract, rules []ValidationIssue) string {
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
	writeRuleFindings(&p, rules)
	return p.String()
}

func writeRuleFindings(p *promptBuilder, rules []ValidationIssue) {
	p.section("Rule check findings")
	if len(rules) == 0 {
		p.line("  - None")
	}
	for _, is := range rules {
		p.line("  - [%s] %s: %s", is.Severity, is.Field, is.Message)
	}
}

const validationSystemPrompt = `You are a billing controller for a professional services firm.
You will receive an invoice or contract and the findings of automated rule checks.
Review the document for additional problems: unclear descriptions, unusual terms, missing details.

You must output ONLY a JSON object with these fields:
- is_valid: boolean
- summary: 1-2 sentence verdict
- issues: array of objects with field, severity ("error", "warning" or "info") and message
- suggestions: array of short improvement suggestions

CRITICAL RULES:
1. Do NOT repeat the rule check findings; they are reported separately
2. Output ONLY the JSON object, no markdown, no explanation`
