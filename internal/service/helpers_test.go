package service

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/llm"
	"github.com/alexanderramin/compass/internal/repository"
	"go.uber.org/zap"
)

// stubClient answers per task and records concurrency.
type stubClient struct {
	mu        sync.Mutex
	responses map[llm.TaskType]string
	err       error
	delay     time.Duration
	calls     []llm.GenerateRequest

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (c *stubClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		prev := c.maxInFlight.Load()
		if n <= prev || c.maxInFlight.CompareAndSwap(prev, n) {
			break
		}
	}

	c.mu.Lock()
	c.calls = append(c.calls, req)
	c.mu.Unlock()

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return &llm.GenerateResponse{Text: c.responses[req.Task], Model: "stub"}, nil
}

func (c *stubClient) Available(context.Context) bool { return true }

func (c *stubClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// recordingUseCaseObserver keeps every event.
type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingUseCaseObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func newRepositories(conn *sql.DB) Repositories {
	return Repositories{
		Customers:   repository.NewSQLiteCustomerRepo(conn),
		Contracts:   repository.NewSQLiteContractRepo(conn),
		Invoices:    repository.NewSQLiteInvoiceRepo(conn),
		Scorecards:  repository.NewSQLiteScorecardRepo(conn),
		Initiatives: repository.NewSQLiteInitiativeRepo(conn),
		Allocations: repository.NewSQLiteAllocationRepo(conn),
		Canvases:    repository.NewSQLiteCanvasRepo(conn),
		Analyses:    repository.NewSQLiteCompetitiveAnalysisRepo(conn),
	}
}

func newAdvisoryService(conn *sql.DB, client llm.LLMClient, obs UseCaseObserver) AdvisoryService {
	advisors := intelligence.NewAdvisors(client, llm.NoopObserver{}, zap.NewNop())
	return NewAdvisoryService(newRepositories(conn), advisors, obs)
}
