package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var plain bool

// SetPlain switches to borderless, colorless output for pipes and files.
func SetPlain(p bool) {
	plain = p
	if p {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

var statusColors = map[kpi.Status]lipgloss.Color{
	kpi.StatusAchieved:   ColorGreen,
	kpi.StatusOnTrack:    ColorBlue,
	kpi.StatusAtRisk:     ColorYellow,
	kpi.StatusOffTrack:   ColorRed,
	kpi.StatusNotStarted: ColorDim,
}

var statusLabels = map[kpi.Status]string{
	kpi.StatusAchieved:   "Achieved",
	kpi.StatusOnTrack:    "On Track",
	kpi.StatusAtRisk:     "At Risk",
	kpi.StatusOffTrack:   "Off Track",
	kpi.StatusNotStarted: "Not Started",
}

var trendIcons = map[kpi.Trend]string{
	kpi.TrendImproving: "↑",
	kpi.TrendStable:    "→",
	kpi.TrendDeclining: "↓",
}

var riskColors = map[intelligence.RiskLevel]lipgloss.Color{
	intelligence.RiskLow:      ColorGreen,
	intelligence.RiskMedium:   ColorYellow,
	intelligence.RiskHigh:     ColorOrange,
	intelligence.RiskCritical: ColorRed,
}

var severityColors = map[intelligence.Severity]lipgloss.Color{
	intelligence.SeverityError:   ColorRed,
	intelligence.SeverityWarning: ColorYellow,
	intelligence.SeverityInfo:    ColorBlue,
}

var priorityColors = map[intelligence.Priority]lipgloss.Color{
	intelligence.PriorityHigh:   ColorRed,
	intelligence.PriorityMedium: ColorYellow,
	intelligence.PriorityLow:    ColorDim,
}

func colored(c lipgloss.Color, ok bool, text string) string {
	if !ok {
		c = ColorDim
	}
	return lipgloss.NewStyle().Foreground(c).Render(text)
}

// StatusPill renders a kpi status such as "● On Track".
func StatusPill(s kpi.Status) string {
	label, ok := statusLabels[s]
	if !ok {
		label = string(s)
	}
	c, ok := statusColors[s]
	return colored(c, ok, "● "+label)
}

// TrendIcon renders an arrow for a trend.
func TrendIcon(t kpi.Trend) string {
	icon, ok := trendIcons[t]
	if !ok {
		return Dim("·")
	}
	switch t {
	case kpi.TrendImproving:
		return StyleGreen.Render(icon)
	case kpi.TrendDeclining:
		return StyleRed.Render(icon)
	default:
		return Dim(icon)
	}
}

// RiskIndicator renders a risk level such as "● HIGH".
func RiskIndicator(r intelligence.RiskLevel) string {
	c, ok := riskColors[r]
	return colored(c, ok, "● "+strings.ToUpper(string(r)))
}

// SeverityBadge renders a validation or conflict severity.
func SeverityBadge(s intelligence.Severity) string {
	c, ok := severityColors[s]
	return colored(c, ok, fmt.Sprintf("[%s]", s))
}

// PriorityBadge renders an insight priority.
func PriorityBadge(p intelligence.Priority) string {
	c, ok := priorityColors[p]
	return colored(c, ok, string(p))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
