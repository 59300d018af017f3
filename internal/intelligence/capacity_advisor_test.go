package intelligence

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func alloc(resource, project string, start, end time.Time, hours float64) *domain.Allocation {
	return &domain.Allocation{
		ID:                   resource + "/" + project,
		ResourceName:         resource,
		ProjectName:          project,
		StartDate:            start,
		EndDate:              end,
		HoursPerWeek:         hours,
		CapacityHoursPerWeek: 40,
	}
}

func TestDetectOverlaps_NoConflictWithinCapacity(t *testing.T) {
	allocs := []*domain.Allocation{
		alloc("ana", "alpha", date(2024, 3, 1), date(2024, 3, 31), 20),
		alloc("ana", "beta", date(2024, 3, 10), date(2024, 4, 10), 20),
	}

	assert.Empty(t, DetectOverlaps(allocs))
}

func TestDetectOverlaps_OverlappingPeriod(t *testing.T) {
	allocs := []*domain.Allocation{
		alloc("ana", "alpha", date(2024, 3, 1), date(2024, 3, 31), 30),
		alloc("ana", "beta", date(2024, 3, 20), date(2024, 4, 10), 20),
	}

	conflicts := DetectOverlaps(allocs)

	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, "ana", c.ResourceName)
	assert.Equal(t, []string{"alpha", "beta"}, c.Projects)
	assert.Equal(t, "2024-03-20", c.PeriodStart)
	assert.Equal(t, "2024-03-31", c.PeriodEnd)
	assert.Equal(t, 50.0, c.AllocatedHours)
	assert.Equal(t, 40.0, c.CapacityHours)
	assert.Equal(t, 10.0, c.OverallocationHours)
	assert.Equal(t, SeverityWarning, c.Severity)
}

func TestDetectOverlaps_SeparatesResourcesAndOrdersByName(t *testing.T) {
	allocs := []*domain.Allocation{
		alloc("zoe", "alpha", date(2024, 1, 1), date(2024, 1, 31), 50),
		alloc("ana", "alpha", date(2024, 2, 1), date(2024, 2, 28), 30),
		alloc("ana", "beta", date(2024, 2, 1), date(2024, 2, 28), 30),
		alloc("bob", "beta", date(2024, 2, 1), date(2024, 2, 28), 40),
	}

	conflicts := DetectOverlaps(allocs)

	require.Len(t, conflicts, 2)
	assert.Equal(t, "ana", conflicts[0].ResourceName)
	assert.Equal(t, SeverityError, conflicts[0].Severity)
	assert.Equal(t, "zoe", conflicts[1].ResourceName)
	assert.Equal(t, []string{"alpha"}, conflicts[1].Projects)
}

func TestDetectOverlaps_ThreeWaySplitsPeriods(t *testing.T) {
	allocs := []*domain.Allocation{
		alloc("ana", "a", date(2024, 5, 1), date(2024, 5, 31), 20),
		alloc("ana", "b", date(2024, 5, 10), date(2024, 5, 20), 15),
		alloc("ana", "c", date(2024, 5, 15), date(2024, 5, 25), 8),
	}

	conflicts := DetectOverlaps(allocs)

	// 20+15 fits, 20+15+8 from the 15th to the 20th does not, 20+8 fits.
	require.Len(t, conflicts, 1)
	assert.Equal(t, "2024-05-15", conflicts[0].PeriodStart)
	assert.Equal(t, "2024-05-20", conflicts[0].PeriodEnd)
	assert.Equal(t, 43.0, conflicts[0].AllocatedHours)
	assert.Equal(t, SeverityInfo, conflicts[0].Severity)
}

func TestDetectOverlaps_IgnoresInvalidRanges(t *testing.T) {
	allocs := []*domain.Allocation{
		nil,
		alloc("ana", "a", date(2024, 5, 31), date(2024, 5, 1), 80),
	}

	assert.Equal(t, []CapacityConflict{}, DetectOverlaps(allocs))
}

func TestDetectConflicts_AppendsMissedDetections(t *testing.T) {
	client := &mockLLMClient{response: `[{"resource_name":"bob","projects":["x"],"period_start":"2024-01-01","period_end":"2024-01-05","severity":"info","resolution":"Watch"}]`}
	adv := NewCapacityAdvisor(client, llm.NoopObserver{}, zap.NewNop())
	allocs := []*domain.Allocation{
		alloc("ana", "alpha", date(2024, 3, 1), date(2024, 3, 31), 30),
		alloc("ana", "beta", date(2024, 3, 20), date(2024, 4, 10), 20),
	}

	res := adv.DetectConflicts(context.Background(), allocs)

	require.False(t, res.Degraded)
	require.Len(t, res.Value, 2)
	assert.Equal(t, "bob", res.Value[0].ResourceName)
	assert.Equal(t, "ana", res.Value[1].ResourceName)
	assert.Contains(t, client.last.UserPrompt, "ana, 2024-03-20 to 2024-03-31: 50 h/week booked against 40 (alpha, beta)")
}

func TestDetectConflicts_ModelConfirmationNotDuplicated(t *testing.T) {
	client := &mockLLMClient{response: `[{"resource_name":"ana","period_start":"2024-03-20","period_end":"2024-03-31","severity":"warning","resolution":"Move beta"}]`}
	adv := NewCapacityAdvisor(client, llm.NoopObserver{}, zap.NewNop())
	allocs := []*domain.Allocation{
		alloc("ana", "alpha", date(2024, 3, 1), date(2024, 3, 31), 30),
		alloc("ana", "beta", date(2024, 3, 20), date(2024, 4, 10), 20),
	}

	res := adv.DetectConflicts(context.Background(), allocs)

	require.Len(t, res.Value, 1)
	assert.Equal(t, "Move beta", res.Value[0].Resolution)
	assert.Equal(t, []string{}, res.Value[0].Projects)
}

func TestDetectConflicts_FallbackEmpty(t *testing.T) {
	client := &mockLLMClient{response: "no conflicts here"}
	adv := NewCapacityAdvisor(client, llm.NoopObserver{}, zap.NewNop())

	res := adv.DetectConflicts(context.Background(), nil)

	assert.True(t, res.Degraded)
	assert.Equal(t, FallbackCapacityConflicts(), res.Value)
	assert.Contains(t, client.last.UserPrompt, "- Not specified")
}

func TestDetectConflicts_FallbackKeepsDetectedConflicts(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrTimeout}
	adv := NewCapacityAdvisor(client, llm.NoopObserver{}, zap.NewNop())
	allocs := []*domain.Allocation{alloc("ana", "alpha", date(2024, 3, 1), date(2024, 3, 31), 60)}

	res := adv.DetectConflicts(context.Background(), allocs)

	assert.True(t, res.Degraded)
	require.Len(t, res.Value, 1)
	assert.Equal(t, 20.0, res.Value[0].OverallocationHours)
	assert.Equal(t, SeverityError, res.Value[0].Severity)
}
