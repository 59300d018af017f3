package intelligence

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// CapacityAdvisor finds over-allocated resources and proposes resolutions.
type CapacityAdvisor interface {
	DetectConflicts(ctx context.Context, allocations []*domain.Allocation) Result[[]CapacityConflict]
}

type capacityAdvisor struct {
	engine
}

// NewCapacityAdvisor creates a CapacityAdvisor backed by an LLM client.
func NewCapacityAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) CapacityAdvisor {
	return &capacityAdvisor{engine: newEngine(client, observer, log)}
}

// DetectConflicts returns the model's conflict list. Any overlap found by
// DetectOverlaps that the model did not report is appended, so the result
// never misses a computed conflict.
func (a *capacityAdvisor) DetectConflicts(ctx context.Context, allocations []*domain.Allocation) Result[[]CapacityConflict] {
	detected := DetectOverlaps(allocations)
	return run(ctx, a.engine, advisory[[]CapacityConflict]{
		task:     llm.TaskCapacity,
		system:   capacitySystemPrompt,
		prompt:   BuildCapacityPrompt(allocations, detected),
		shape:    llm.ShapeArray,
		fallback: FallbackCapacityConflicts,
		finalize: func(conflicts *[]CapacityConflict) {
			*conflicts = mergeConflicts(emptyIfNil(*conflicts), detected)
		},
	})
}

func mergeConflicts(reported, detected []CapacityConflict) []CapacityConflict {
	type key struct{ resource, start string }
	seen := make(map[key]bool, len(reported))
	for i := range reported {
		reported[i].Projects = emptyIfNil(reported[i].Projects)
		seen[key{reported[i].ResourceName, reported[i].PeriodStart}] = true
	}
	for _, c := range detected {
		if !seen[key{c.ResourceName, c.PeriodStart}] {
			reported = append(reported, c)
		}
	}
	return reported
}

// DetectOverlaps sweeps each resource's allocations day-interval by
// day-interval and reports every contiguous period in which booked weekly
// hours exceed the resource's weekly capacity. Adjacent periods with the same
// set of projects and hours are merged. Output is ordered by resource name
// then period start.
func DetectOverlaps(allocations []*domain.Allocation) []CapacityConflict {
	byResource := make(map[string][]*domain.Allocation)
	for _, a := range allocations {
		if a == nil || a.EndDate.Before(a.StartDate) {
			continue
		}
		byResource[a.ResourceName] = append(byResource[a.ResourceName], a)
	}

	names := make([]string, 0, len(byResource))
	for name := range byResource {
		names = append(names, name)
	}
	sort.Strings(names)

	conflicts := []CapacityConflict{}
	for _, name := range names {
		conflicts = append(conflicts, sweepResource(name, byResource[name])...)
	}
	return conflicts
}

func sweepResource(name string, allocs []*domain.Allocation) []CapacityConflict {
	// Boundaries are allocation starts and the day after each allocation ends.
	var points []time.Time
	for _, a := range allocs {
		points = append(points, day(a.StartDate), day(a.EndDate).AddDate(0, 0, 1))
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })
	points = slices.CompactFunc(points, func(a, b time.Time) bool { return a.Equal(b) })

	var out []CapacityConflict
	for i := 0; i+1 < len(points); i++ {
		segStart := points[i]
		segEnd := points[i+1].AddDate(0, 0, -1)

		var projects []string
		var hours, capacity float64
		for _, a := range allocs {
			if day(a.StartDate).After(segStart) || day(a.EndDate).Before(segStart) {
				continue
			}
			projects = append(projects, a.ProjectName)
			hours += a.HoursPerWeek
			capacity = max(capacity, a.CapacityHoursPerWeek)
		}
		if capacity <= 0 || hours <= capacity {
			continue
		}
		sort.Strings(projects)

		if n := len(out); n > 0 {
			prev := &out[n-1]
			if prev.PeriodEnd == segStart.AddDate(0, 0, -1).Format(dateLayout) &&
				prev.AllocatedHours == hours && slices.Equal(prev.Projects, projects) {
				prev.PeriodEnd = segEnd.Format(dateLayout)
				continue
			}
		}

		over := hours - capacity
		out = append(out, CapacityConflict{
			ResourceName:        name,
			Projects:            projects,
			PeriodStart:         segStart.Format(dateLayout),
			PeriodEnd:           segEnd.Format(dateLayout),
			AllocatedHours:      hours,
			CapacityHours:       capacity,
			OverallocationHours: over,
			Severity:            overallocationSeverity(over / capacity),
			Resolution: fmt.Sprintf("Reduce %s's bookings by %s h/week or move one of: %s",
				name, strconv.FormatFloat(over, 'f', -1, 64), strings.Join(projects, ", ")),
		})
	}
	return out
}

// overallocationSeverity grades how far over capacity a resource is, as a
// fraction of capacity.
func overallocationSeverity(ratio float64) Severity {
	switch {
	case ratio > 0.25:
		return SeverityError
	case ratio > 0.10:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BuildCapacityPrompt renders the allocations and the conflicts already found.
func BuildCapacityPrompt(allocations []*domain.Allocation, detected []CapacityConflict) string {
	var p promptBuilder
	p.section("Allocations")
	if len(allocations) == 0 {
		p.line("  - %s", domain.NotSpecified)
	}
	for _, a := range allocations {
		p.line("  - %s on %s: %s to %s, %s h/week of %s h/week capacity",
			domain.OrNotSpecified(a.ResourceName),
			domain.OrNotSpecified(a.ProjectName),
			a.StartDate.Format(dateLayout),
			a.EndDate.Format(dateLayout),
			strconv.FormatFloat(a.HoursPerWeek, 'f', -1, 64),
			strconv.FormatFloat(a.CapacityHoursPerWeek, 'f', -1, 64),
		)
	}

	p.section("Over-allocated periods already detected")
	if len(detected) == 0 {
		p.line("  - None")
	}
	for _, c := range detected {
		p.line("  - %s, %s to %s: %s h/week booked against %s (%s)",
			c.ResourceName, c.PeriodStart, c.PeriodEnd,
			strconv.FormatFloat(c.AllocatedHours, 'f', -1, 64),
			strconv.FormatFloat(c.CapacityHours, 'f', -1, 64),
			strings.Join(c.Projects, ", "),
		)
	}
	return p.String()
}

const capacitySystemPrompt = `You are a resource manager for a professional services firm.
You will receive resource allocations and the over-allocated periods already detected.
Confirm each detected conflict, add any scheduling risks you see, and propose a resolution.

You must output ONLY a JSON array of objects, each with:
- resource_name: string, exactly as given
- projects: array of project names involved
- period_start: "YYYY-MM-DD"
- period_end: "YYYY-MM-DD"
- allocated_hours: number of weekly hours booked
- capacity_hours: number of weekly hours available
- overallocation_hours: allocated_hours minus capacity_hours
- severity: one of "error", "warning", "info"
- resolution: concrete proposal (reschedule, reassign, reduce scope)

Output [] when there are no conflicts. Output ONLY the JSON array, no markdown, no explanation.`
