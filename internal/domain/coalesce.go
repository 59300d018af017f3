package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NotSpecified is rendered in prompts for any missing optional field so the
// prompt layout stays the same whether or not the field is present.
const NotSpecified = "Not specified"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// OrNotSpecified returns s, or NotSpecified when s is blank.
func OrNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotSpecified
	}
	return s
}

// DateOrNotSpecified formats t as YYYY-MM-DD.
func DateOrNotSpecified(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotSpecified
	}
	return t.Format("2006-01-02")
}

// IntOrNotSpecified formats an optional integer.
func IntOrNotSpecified(v *int) string {
	if v == nil {
		return NotSpecified
	}
	return strconv.Itoa(*v)
}

// FloatOrNotSpecified formats an optional float without trailing zeros.
func FloatOrNotSpecified(v *float64) string {
	if v == nil {
		return NotSpecified
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// MoneyOrNotSpecified formats an amount with two decimals and its currency.
// A zero amount counts as missing.
func MoneyOrNotSpecified(amount decimal.Decimal, currency string) string {
	if amount.IsZero() {
		return NotSpecified
	}
	return amount.StringFixed(2) + " " + CoalesceStr(currency, "USD")
}

// ListOrNotSpecified joins non-blank items with ", ".
func ListOrNotSpecified(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return NotSpecified
	}
	return strings.Join(kept, ", ")
}

// Float64FromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
