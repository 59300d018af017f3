package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedSchema is the top-level structure of a seed file. Records reference each
// other by ref, id or name. JSON files parse too since JSON is valid YAML.
type SeedSchema struct {
	Customers           []CustomerSeed   `yaml:"customers"`
	Contracts           []ContractSeed   `yaml:"contracts"`
	Invoices            []InvoiceSeed    `yaml:"invoices"`
	Scorecards          []ScorecardSeed  `yaml:"scorecards"`
	Initiatives         []InitiativeSeed `yaml:"initiatives"`
	Allocations         []AllocationSeed `yaml:"allocations"`
	Canvases            []CanvasSeed     `yaml:"canvases"`
	CompetitiveAnalyses []AnalysisSeed   `yaml:"competitive_analyses"`
}

// Money fields are strings so amounts keep their exact decimal text.
type CustomerSeed struct {
	Ref            string `yaml:"ref"`
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Industry       string `yaml:"industry"`
	Segment        string `yaml:"segment"`
	Status         string `yaml:"status"`
	MonthlyRevenue string `yaml:"monthly_revenue"`
	Currency       string `yaml:"currency"`
	HealthScore    *int   `yaml:"health_score"`
	OpenTickets    int    `yaml:"open_tickets"`
	LastContactAt  string `yaml:"last_contact_at"`
	RenewalDate    string `yaml:"renewal_date"`
	Notes          string `yaml:"notes"`
}

type ContractSeed struct {
	Ref         string  `yaml:"ref"`
	ID          string  `yaml:"id"`
	Customer    string  `yaml:"customer"`
	Title       string  `yaml:"title"`
	BillingType string  `yaml:"billing_type"`
	TotalValue  string  `yaml:"total_value"`
	Currency    string  `yaml:"currency"`
	HoursBudget float64 `yaml:"hours_budget"`
	HoursUsed   float64 `yaml:"hours_used"`
	StartDate   string  `yaml:"start_date"`
	EndDate     string  `yaml:"end_date"`
	Status      string  `yaml:"status"`
}

type LineItemSeed struct {
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	UnitPrice   string `yaml:"unit_price"`
}

type InvoiceSeed struct {
	ID        string         `yaml:"id"`
	Customer  string         `yaml:"customer"`
	Contract  string         `yaml:"contract"`
	Number    string         `yaml:"number"`
	Amount    string         `yaml:"amount"`
	Currency  string         `yaml:"currency"`
	IssuedOn  string         `yaml:"issued_on"`
	DueOn     string         `yaml:"due_on"`
	Status    string         `yaml:"status"`
	LineItems []LineItemSeed `yaml:"line_items"`
}

type MetricSeed struct {
	Perspective string   `yaml:"perspective"`
	Name        string   `yaml:"name"`
	Unit        string   `yaml:"unit"`
	Current     float64  `yaml:"current"`
	Target      float64  `yaml:"target"`
	Previous    *float64 `yaml:"previous"`
}

type ScorecardSeed struct {
	Ref          string       `yaml:"ref"`
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Organization string       `yaml:"organization"`
	Period       string       `yaml:"period"`
	Metrics      []MetricSeed `yaml:"metrics"`
}

type InitiativeSeed struct {
	Ref            string             `yaml:"ref"`
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name"`
	Description    string             `yaml:"description"`
	Sponsor        string             `yaml:"sponsor"`
	Stage          string             `yaml:"stage"`
	ImpactedGroups []string           `yaml:"impacted_groups"`
	StageScores    map[string]float64 `yaml:"stage_scores"`
	TargetDate     string             `yaml:"target_date"`
}

type AllocationSeed struct {
	ID           string  `yaml:"id"`
	Resource     string  `yaml:"resource"`
	Project      string  `yaml:"project"`
	StartDate    string  `yaml:"start_date"`
	EndDate      string  `yaml:"end_date"`
	HoursPerWeek float64 `yaml:"hours_per_week"`
	Capacity     float64 `yaml:"capacity_hours_per_week"`
}

type CanvasSeed struct {
	Ref         string              `yaml:"ref"`
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Blocks      map[string][]string `yaml:"blocks"`
}

type ForceSeed struct {
	Intensity string   `yaml:"intensity"`
	Factors   []string `yaml:"factors"`
}

type AnalysisSeed struct {
	Ref         string               `yaml:"ref"`
	ID          string               `yaml:"id"`
	Company     string               `yaml:"company"`
	Industry    string               `yaml:"industry"`
	Competitors []string             `yaml:"competitors"`
	Forces      map[string]ForceSeed `yaml:"forces"`
	Notes       string               `yaml:"notes"`
}

// Empty reports whether the seed holds no records at all.
func (s *SeedSchema) Empty() bool {
	return len(s.Customers) == 0 && len(s.Contracts) == 0 && len(s.Invoices) == 0 &&
		len(s.Scorecards) == 0 && len(s.Initiatives) == 0 && len(s.Allocations) == 0 &&
		len(s.Canvases) == 0 && len(s.CompetitiveAnalyses) == 0
}

// LoadSeed reads and parses a YAML or JSON seed file.
func LoadSeed(path string) (*SeedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data)
}

// ParseSeed parses seed content. Unknown keys are rejected.
func ParseSeed(data []byte) (*SeedSchema, error) {
	var schema SeedSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &schema, nil
}
