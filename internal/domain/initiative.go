package domain

import "time"

// ChangeInitiative is an organizational change tracked through ADKAR.
// StageScores holds survey results on a 1-5 scale per stage.
type ChangeInitiative struct {
	ID             string
	Name           string
	Description    string
	Sponsor        string
	Stage          ADKARStage
	ImpactedGroups []string
	StageScores    map[ADKARStage]float64
	TargetDate     *time.Time
	CreatedAt      time.Time
}

type Allocation struct {
	ID                   string
	ResourceName         string
	ProjectName          string
	StartDate            time.Time
	EndDate              time.Time
	HoursPerWeek         float64
	CapacityHoursPerWeek float64
}

// Overlaps reports whether two allocations share at least one day.
func (a *Allocation) Overlaps(b *Allocation) bool {
	return !a.EndDate.Before(b.StartDate) && !b.EndDate.Before(a.StartDate)
}
