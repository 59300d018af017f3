package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/compass/internal/domain"
)

// ErrNotFound is wrapped by every GetByID when no row matches.
var ErrNotFound = errors.New("not found")

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Contract, error)
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	ListByContract(ctx context.Context, contractID string) ([]*domain.Invoice, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Invoice, error)
}

// ScorecardRepo stores scorecards together with their metrics.
type ScorecardRepo interface {
	Create(ctx context.Context, s *domain.Scorecard) error
	GetByID(ctx context.Context, id string) (*domain.Scorecard, error)
	List(ctx context.Context) ([]*domain.Scorecard, error)
}

type InitiativeRepo interface {
	Create(ctx context.Context, ci *domain.ChangeInitiative) error
	GetByID(ctx context.Context, id string) (*domain.ChangeInitiative, error)
	List(ctx context.Context) ([]*domain.ChangeInitiative, error)
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.Allocation) error
	List(ctx context.Context) ([]*domain.Allocation, error)
	ListByResource(ctx context.Context, resourceName string) ([]*domain.Allocation, error)
}

type CanvasRepo interface {
	Create(ctx context.Context, c *domain.Canvas) error
	GetByID(ctx context.Context, id string) (*domain.Canvas, error)
	List(ctx context.Context) ([]*domain.Canvas, error)
}

type CompetitiveAnalysisRepo interface {
	Create(ctx context.Context, ca *domain.CompetitiveAnalysis) error
	GetByID(ctx context.Context, id string) (*domain.CompetitiveAnalysis, error)
	List(ctx context.Context) ([]*domain.CompetitiveAnalysis, error)
}
