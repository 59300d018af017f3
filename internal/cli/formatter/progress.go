package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/kpi"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a progress
// percentage. The bar fills at most to width; the label keeps the real value,
// which may exceed 100. Color follows the kpi status buckets.
func RenderProgress(pct int, width int) string {
	if width < 2 {
		width = 2
	}
	filled := min(max(pct, 0)*width/100, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	c, ok := statusColors[kpi.StatusFor(float64(pct))]
	return fmt.Sprintf("[%s] %3d%%", colored(c, ok, bar), pct)
}
