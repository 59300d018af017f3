package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var invoiceNumberPattern = regexp.MustCompile(`^INV-[0-9]{4}-[0-9]{3,6}$`)

type Contract struct {
	ID          string
	CustomerID  string
	Title       string
	BillingType BillingType
	TotalValue  decimal.Decimal
	Currency    string
	HoursBudget float64
	HoursUsed   float64
	StartDate   time.Time
	EndDate     *time.Time
	Status      ContractStatus
	CreatedAt   time.Time
}

// MonthsElapsed counts started months between the contract start and now, at least 1.
func (c *Contract) MonthsElapsed(now time.Time) int {
	if now.Before(c.StartDate) {
		return 1
	}
	months := (now.Year()-c.StartDate.Year())*12 + int(now.Month()) - int(c.StartDate.Month())
	if now.Day() >= c.StartDate.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}

type LineItem struct {
	Description string          `json:"description" yaml:"description"`
	Quantity    decimal.Decimal `json:"quantity" yaml:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" yaml:"unit_price"`
}

// Total is quantity times unit price.
func (l LineItem) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

type Invoice struct {
	ID         string
	CustomerID string
	ContractID string
	Number     string
	Amount     decimal.Decimal
	Currency   string
	IssuedOn   time.Time
	DueOn      *time.Time
	Status     InvoiceStatus
	LineItems  []LineItem
	CreatedAt  time.Time
}

// LineItemsTotal sums all line items.
func (i *Invoice) LineItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.LineItems {
		total = total.Add(li.Total())
	}
	return total
}

// ValidateNumber checks the invoice number format, e.g. INV-2024-0042.
func (i *Invoice) ValidateNumber() error {
	if i.Number == "" {
		return fmt.Errorf("invoice number is required")
	}
	if !invoiceNumberPattern.MatchString(i.Number) {
		return fmt.Errorf("invoice number %q must look like INV-2024-0042", i.Number)
	}
	return nil
}

// BilledTotal sums the amounts of non-void invoices.
func BilledTotal(invoices []*Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == InvoiceVoid {
			continue
		}
		total = total.Add(inv.Amount)
	}
	return total
}
