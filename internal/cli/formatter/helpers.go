package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
// Plain mode drops the border.
func RenderBox(title string, content string) string {
	inner := content
	if title != "" {
		inner = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	if plain {
		return inner + "\n"
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	return box.Render(strings.TrimRight(inner, "\n")) + "\n"
}

// DegradedNotice explains that a result is the built-in default rather than
// a generated analysis. It is empty for generated results.
func DegradedNotice(degraded bool) string {
	if !degraded {
		return ""
	}
	return StyleYellow.Render("⚠ Advisor unavailable; showing default analysis.") + "\n\n"
}

// writeList writes a titled bullet list; empty lists are skipped.
func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(b, "  • %s\n", item)
	}
	b.WriteString("\n")
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-18s %s\n", label+":", value)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Money renders an amount with two decimals and its currency.
func Money(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// Hours renders a number of hours without a trailing .0.
func Hours(h float64) string {
	if h == float64(int64(h)) {
		return fmt.Sprintf("%dh", int64(h))
	}
	return fmt.Sprintf("%.1fh", h)
}
