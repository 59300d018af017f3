package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/domain"
)

// promptBuilder assembles the user prompt for an advisory. Every field line is
// always written; missing values render as domain.NotSpecified so the prompt
// layout does not depend on which fields a record carries.
type promptBuilder struct {
	b strings.Builder
}

func (p *promptBuilder) line(format string, args ...any) {
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *promptBuilder) blank() {
	p.b.WriteByte('\n')
}

func (p *promptBuilder) section(title string) {
	if p.b.Len() > 0 {
		p.blank()
	}
	p.line("%s:", title)
}

func (p *promptBuilder) field(label, value string) {
	p.line("- %s: %s", label, domain.OrNotSpecified(value))
}

// list writes each item as a bullet, or a single placeholder bullet.
func (p *promptBuilder) list(items []string) {
	wrote := false
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			p.line("  - %s", s)
			wrote = true
		}
	}
	if !wrote {
		p.line("  - %s", domain.NotSpecified)
	}
}

func (p *promptBuilder) String() string {
	return strings.TrimRight(p.b.String(), "\n")
}
