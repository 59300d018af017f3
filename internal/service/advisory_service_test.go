package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/intelligence"
	"github.com/alexanderramin/compass/internal/llm"
	"github.com/alexanderramin/compass/internal/repository"
	"github.com/alexanderramin/compass/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerHealth_ParsedResult(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	c := testutil.NewTestCustomer("Acme", testutil.WithHealthScore(61))
	require.NoError(t, repository.NewSQLiteCustomerRepo(conn).Create(ctx, c))

	client := &stubClient{responses: map[llm.TaskType]string{
		llm.TaskHealth: "```json\n{\"health_score\":72,\"risk_level\":\"low\",\"summary\":\"Stable\"}\n```",
	}}
	obs := &recordingUseCaseObserver{}
	svc := newAdvisoryService(conn, client, obs)

	res, err := svc.CustomerHealth(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Equal(t, c.ID, res.Value.CustomerID)
	assert.Equal(t, 72, res.Value.HealthScore)
	assert.Contains(t, client.calls[0].UserPrompt, "Acme")

	ev := obs.last()
	assert.Equal(t, "customer-health", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, false, ev.Fields["degraded"])
}

func TestCustomerHealth_GenerationFailureDegrades(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	c := testutil.NewTestCustomer("Acme")
	require.NoError(t, repository.NewSQLiteCustomerRepo(conn).Create(ctx, c))

	obs := &recordingUseCaseObserver{}
	svc := newAdvisoryService(conn, &stubClient{err: llm.ErrUnavailable}, obs)

	res, err := svc.CustomerHealth(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, intelligence.FallbackHealthAnalysis(c.ID), res.Value)
	assert.Equal(t, true, obs.last().Fields["degraded"])
}

func TestCustomerHealth_MissingRecordIsAnError(t *testing.T) {
	conn := testutil.NewTestDB(t)
	client := &stubClient{}
	obs := &recordingUseCaseObserver{}
	svc := newAdvisoryService(conn, client, obs)

	_, err := svc.CustomerHealth(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, client.callCount())
	assert.False(t, obs.last().Success)
	assert.NotContains(t, obs.last().Fields, "degraded")
}

func TestCustomerInsights(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	c := testutil.NewTestCustomer("Acme")
	require.NoError(t, repository.NewSQLiteCustomerRepo(conn).Create(ctx, c))

	client := &stubClient{responses: map[llm.TaskType]string{
		llm.TaskHealth: `[{"type":"risk","title":"Renewal soon","priority":"high"}]`,
	}}
	res, err := newAdvisoryService(conn, client, nil).CustomerInsights(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, res.Value, 1)
	assert.Equal(t, c.ID, res.Value[0].CustomerID)
}

func TestBurnRate_UsesContractInvoices(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	cust := testutil.NewTestCustomer("Acme")
	require.NoError(t, repository.NewSQLiteCustomerRepo(conn).Create(ctx, cust))
	contract := testutil.NewTestContract(cust.ID)
	require.NoError(t, repository.NewSQLiteContractRepo(conn).Create(ctx, contract))
	invoices := repository.NewSQLiteInvoiceRepo(conn)
	require.NoError(t, invoices.Create(ctx, testutil.NewTestInvoice(cust.ID, contract.ID, "INV-2024-001", "10000")))
	require.NoError(t, invoices.Create(ctx, testutil.NewTestInvoice(cust.ID, contract.ID, "INV-2024-002", "5000")))

	svc := newAdvisoryService(conn, &stubClient{err: llm.ErrTimeout}, nil)
	res, err := svc.BurnRate(ctx, contract.ID)
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, contract.ID, res.Value.ContractID)
	assert.Equal(t, "15000", res.Value.BilledTotal.String(), "derived fields are recomputed on the fallback")
	assert.Equal(t, 30, res.Value.HoursUtilization)
}

func TestValidateInvoice_LoadsContract(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	cust := testutil.NewTestCustomer("Acme")
	require.NoError(t, repository.NewSQLiteCustomerRepo(conn).Create(ctx, cust))
	contract := testutil.NewTestContract(cust.ID, testutil.WithTotalValue("1000"))
	require.NoError(t, repository.NewSQLiteContractRepo(conn).Create(ctx, contract))
	inv := testutil.NewTestInvoice(cust.ID, contract.ID, "INV-2024-001", "1500")
	require.NoError(t, repository.NewSQLiteInvoiceRepo(conn).Create(ctx, inv))

	svc := newAdvisoryService(conn, llm.DisabledClient{}, nil)
	res, err := svc.ValidateInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, inv.ID, res.Value.EntityID)

	var fields []string
	for _, issue := range res.Value.Issues {
		fields = append(fields, issue.Field)
	}
	assert.Contains(t, fields, "amount", "amount above contract value is flagged")
}

func TestValidateContract(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	cust := testutil.NewTestCustomer("Acme")
	require.NoError(t, repository.NewSQLiteCustomerRepo(conn).Create(ctx, cust))
	contract := testutil.NewTestContract(cust.ID, testutil.WithHours(100, 150))
	require.NoError(t, repository.NewSQLiteContractRepo(conn).Create(ctx, contract))

	res, err := newAdvisoryService(conn, llm.DisabledClient{}, nil).ValidateContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ID, res.Value.EntityID)
	assert.NotEmpty(t, res.Value.Issues)
}

func TestCapacityConflicts_FiltersByResource(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	allocations := repository.NewSQLiteAllocationRepo(conn)
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, allocations.Create(ctx, testutil.NewTestAllocation("ana", "alpha", d(1), d(20), 30)))
	require.NoError(t, allocations.Create(ctx, testutil.NewTestAllocation("ana", "beta", d(10), d(31), 30)))
	require.NoError(t, allocations.Create(ctx, testutil.NewTestAllocation("ben", "alpha", d(1), d(20), 30)))
	require.NoError(t, allocations.Create(ctx, testutil.NewTestAllocation("ben", "gamma", d(5), d(25), 30)))

	svc := newAdvisoryService(conn, llm.DisabledClient{}, nil)

	all, err := svc.CapacityConflicts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Value, 2)

	ana, err := svc.CapacityConflicts(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, ana.Value, 1)
	assert.Equal(t, "ana", ana.Value[0].ResourceName)
}

func TestBlockSuggestions_RejectsUnknownBlock(t *testing.T) {
	conn := testutil.NewTestDB(t)
	client := &stubClient{}
	_, err := newAdvisoryService(conn, client, nil).BlockSuggestions(context.Background(), "cv", "vibes")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, client.callCount())
}

func TestCanvasUseCases(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	cv := testutil.NewTestCanvas("Analytics")
	require.NoError(t, repository.NewSQLiteCanvasRepo(conn).Create(ctx, cv))
	svc := newAdvisoryService(conn, llm.DisabledClient{}, nil)

	insights, err := svc.AnalyzeCanvas(ctx, cv.ID)
	require.NoError(t, err)
	require.NotEmpty(t, insights.Value)
	assert.Equal(t, cv.ID, insights.Value[0].CanvasID)

	block, err := svc.BlockSuggestions(ctx, cv.ID, domain.BlockChannels)
	require.NoError(t, err)
	assert.Equal(t, domain.BlockChannels, block.Value.Block)
}

func TestScorecardUseCases(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	sc := testutil.NewTestScorecard("FY24",
		testutil.NewTestMetric(domain.PerspectiveFinancial, "Revenue", 80, 100),
		testutil.NewTestMetric(domain.PerspectiveCustomer, "NPS", 30, 50),
	)
	require.NoError(t, repository.NewSQLiteScorecardRepo(conn).Create(ctx, sc))

	client := &stubClient{responses: map[llm.TaskType]string{
		llm.TaskScorecard: `{"summary":"Solid","strengths":["Revenue"],"overall_status":"achieved"}`,
	}}
	svc := newAdvisoryService(conn, client, nil)

	perf, err := svc.AnalyzePerspective(ctx, sc.ID, domain.PerspectiveFinancial)
	require.NoError(t, err)
	assert.False(t, perf.Degraded)
	assert.Equal(t, domain.PerspectiveFinancial, perf.Value.PerspectiveType)
	assert.Equal(t, "on_track", string(perf.Value.OverallStatus), "status is recomputed from metrics")
	require.Len(t, perf.Value.Metrics, 1)
	assert.Equal(t, "Revenue", perf.Value.Metrics[0].Name)

	_, err = svc.StrategicInsights(ctx, sc.ID, "sideways")
	assert.ErrorIs(t, err, ErrInvalidInput)

	insights, err := svc.StrategicInsights(ctx, sc.ID, domain.PerspectiveCustomer)
	require.NoError(t, err)
	assert.True(t, insights.Degraded)
	for _, in := range insights.Value {
		assert.Equal(t, sc.ID, in.ScorecardID)
		assert.Equal(t, domain.PerspectiveCustomer, in.PerspectiveType)
	}
}

func TestPorterUseCases(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	ca := testutil.NewTestCompetitiveAnalysis("Acme")
	require.NoError(t, repository.NewSQLiteCompetitiveAnalysisRepo(conn).Create(ctx, ca))
	svc := newAdvisoryService(conn, llm.DisabledClient{}, nil)

	force, err := svc.AnalyzeForce(ctx, ca.ID, domain.ForceBuyerPower)
	require.NoError(t, err)
	assert.Equal(t, domain.ForceBuyerPower, force.Value.ForceType)

	_, err = svc.AnalyzeForce(ctx, ca.ID, "gravity")
	assert.ErrorIs(t, err, ErrInvalidInput)

	bench, err := svc.CompareBenchmark(ctx, ca.ID)
	require.NoError(t, err)
	assert.Len(t, bench.Value.ForceScores, 5)
	assert.Equal(t, "Industrial IoT", bench.Value.Industry)
}

func TestADKARUseCases(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	ci := testutil.NewTestInitiative("ERP", domain.StageDesire, map[domain.ADKARStage]float64{
		domain.StageAwareness: 4, domain.StageDesire: 2,
	})
	require.NoError(t, repository.NewSQLiteInitiativeRepo(conn).Create(ctx, ci))

	client := &stubClient{responses: map[llm.TaskType]string{
		llm.TaskADKAR: `[{"stage":"awareness","title":"X","priority":"high"}]`,
	}}
	svc := newAdvisoryService(conn, client, nil)

	recs, err := svc.StageRecommendations(ctx, ci.ID)
	require.NoError(t, err)
	require.Len(t, recs.Value, 1)
	assert.Equal(t, ci.ID, recs.Value[0].InitiativeID)
	assert.Equal(t, domain.StageAwareness, recs.Value[0].Stage)

	readiness, err := svc.AnalyzeReadiness(ctx, ci.ID)
	require.NoError(t, err)
	assert.True(t, readiness.Degraded)
	assert.Equal(t, domain.StageDesire, readiness.Value.Stage)
	assert.Equal(t, domain.StageDesire, readiness.Value.BarrierPoint)
}

func TestPortfolioHealth_PreservesOrderAndLimitsConcurrency(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	customers := repository.NewSQLiteCustomerRepo(conn)
	for i := 0; i < 6; i++ {
		require.NoError(t, customers.Create(ctx, testutil.NewTestCustomer(fmt.Sprintf("Customer %d", i))))
	}

	client := &stubClient{
		delay: 20 * time.Millisecond,
		responses: map[llm.TaskType]string{
			llm.TaskHealth: `{"health_score":80,"risk_level":"low"}`,
		},
	}
	obs := &recordingUseCaseObserver{}
	svc := newAdvisoryService(conn, client, obs)

	entries, err := svc.PortfolioHealth(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 6)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("Customer %d", i), e.CustomerName)
		assert.Equal(t, e.CustomerID, e.Analysis.Value.CustomerID)
		assert.False(t, e.Analysis.Degraded)
	}
	assert.LessOrEqual(t, client.maxInFlight.Load(), int32(2))
	assert.Equal(t, 6, client.callCount())
	assert.Equal(t, 6, obs.last().Fields["customers"])
	assert.Equal(t, 0, obs.last().Fields["degraded"])
}

func TestPortfolioHealth_EmptyStore(t *testing.T) {
	conn := testutil.NewTestDB(t)
	entries, err := newAdvisoryService(conn, &stubClient{}, nil).PortfolioHealth(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPortfolioHealth_CancelledContext(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	customers := repository.NewSQLiteCustomerRepo(conn)
	for i := 0; i < 3; i++ {
		require.NoError(t, customers.Create(ctx, testutil.NewTestCustomer(fmt.Sprintf("C%d", i))))
	}
	svc := newAdvisoryService(conn, &stubClient{}, nil)

	// Cancel after the customer list is read so the workers see it.
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()
	svc.(*advisoryService).repos.Customers = &cancelOnListRepo{CustomerRepo: customers, cancel: cancel}

	_, err := svc.PortfolioHealth(cctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

type cancelOnListRepo struct {
	repository.CustomerRepo
	cancel context.CancelFunc
}

func (r *cancelOnListRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	list, err := r.CustomerRepo.List(ctx)
	r.cancel()
	return list, err
}
