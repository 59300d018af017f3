package domain

import "time"

// Canvas is a Business Model Canvas; each block holds free-text entries.
type Canvas struct {
	ID          string
	Name        string
	Description string
	Blocks      map[CanvasBlock][]string
	CreatedAt   time.Time
}

type ForceInput struct {
	Intensity string   `json:"intensity,omitempty" yaml:"intensity"`
	Factors   []string `json:"factors,omitempty" yaml:"factors"`
}

type CompetitiveAnalysis struct {
	ID          string
	Company     string
	Industry    string
	Competitors []string
	Forces      map[Force]ForceInput
	Notes       string
	CreatedAt   time.Time
}
