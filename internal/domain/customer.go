package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID             string
	Name           string
	Industry       string
	Segment        string
	Status         CustomerStatus
	MonthlyRevenue decimal.Decimal
	Currency       string
	HealthScore    *int
	OpenTickets    int
	LastContactAt  *time.Time
	RenewalDate    *time.Time
	Notes          string
	CreatedAt      time.Time
}

// DaysSinceContact returns whole days since the last recorded contact, or nil
// when no contact was ever recorded.
func (c *Customer) DaysSinceContact(now time.Time) *int {
	if c.LastContactAt == nil {
		return nil
	}
	d := int(now.Sub(*c.LastContactAt).Hours() / 24)
	if d < 0 {
		d = 0
	}
	return &d
}
