package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/importer"
	"github.com/alexanderramin/compass/internal/repository"
)

type seedService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewSeedService(uow db.UnitOfWork, observers ...UseCaseObserver) SeedService {
	return &seedService{
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *seedService) ImportFile(ctx context.Context, path string) (*SeedResult, error) {
	schema, err := importer.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}
	return s.Import(ctx, schema)
}

// Import validates and converts the seed, then writes every record in one
// transaction. Any failure leaves the store unchanged.
func (s *seedService) Import(ctx context.Context, schema *importer.SeedSchema) (result *SeedResult, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "seed", fields)
	defer done(&err)

	if errs := importer.ValidateSeed(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	ds, err := importer.Convert(schema, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return writeDataset(ctx, tx, ds)
	})
	if err != nil {
		return nil, err
	}

	result = &SeedResult{
		Customers:           len(ds.Customers),
		Contracts:           len(ds.Contracts),
		Invoices:            len(ds.Invoices),
		Scorecards:          len(ds.Scorecards),
		Initiatives:         len(ds.Initiatives),
		Allocations:         len(ds.Allocations),
		Canvases:            len(ds.Canvases),
		CompetitiveAnalyses: len(ds.CompetitiveAnalyses),
	}
	fields["records"] = result.Total()
	return result, nil
}

// writeDataset inserts parents before children so foreign keys resolve.
func writeDataset(ctx context.Context, tx db.DBTX, ds *importer.Dataset) error {
	customers := repository.NewSQLiteCustomerRepo(tx)
	for _, c := range ds.Customers {
		if err := customers.Create(ctx, c); err != nil {
			return fmt.Errorf("creating customer %q: %w", c.Name, err)
		}
	}
	contracts := repository.NewSQLiteContractRepo(tx)
	for _, c := range ds.Contracts {
		if err := contracts.Create(ctx, c); err != nil {
			return fmt.Errorf("creating contract %q: %w", c.Title, err)
		}
	}
	invoices := repository.NewSQLiteInvoiceRepo(tx)
	for _, inv := range ds.Invoices {
		if err := invoices.Create(ctx, inv); err != nil {
			return fmt.Errorf("creating invoice %q: %w", inv.Number, err)
		}
	}
	scorecards := repository.NewSQLiteScorecardRepo(tx)
	for _, sc := range ds.Scorecards {
		if err := scorecards.Create(ctx, sc); err != nil {
			return fmt.Errorf("creating scorecard %q: %w", sc.Name, err)
		}
	}
	initiatives := repository.NewSQLiteInitiativeRepo(tx)
	for _, ci := range ds.Initiatives {
		if err := initiatives.Create(ctx, ci); err != nil {
			return fmt.Errorf("creating change initiative %q: %w", ci.Name, err)
		}
	}
	allocations := repository.NewSQLiteAllocationRepo(tx)
	for _, a := range ds.Allocations {
		if err := allocations.Create(ctx, a); err != nil {
			return fmt.Errorf("creating allocation %s/%s: %w", a.ResourceName, a.ProjectName, err)
		}
	}
	canvases := repository.NewSQLiteCanvasRepo(tx)
	for _, c := range ds.Canvases {
		if err := canvases.Create(ctx, c); err != nil {
			return fmt.Errorf("creating canvas %q: %w", c.Name, err)
		}
	}
	analyses := repository.NewSQLiteCompetitiveAnalysisRepo(tx)
	for _, ca := range ds.CompetitiveAnalyses {
		if err := analyses.Create(ctx, ca); err != nil {
			return fmt.Errorf("creating competitive analysis %q: %w", ca.Company, err)
		}
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("seed validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
