package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convertNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestConvert_Fixture(t *testing.T) {
	schema, err := LoadSeed("testdata/portfolio.yaml")
	require.NoError(t, err)
	require.Empty(t, ValidateSeed(schema))

	ds, err := Convert(schema, convertNow)
	require.NoError(t, err)
	assert.Equal(t, 11, ds.Count())

	acme := ds.Customers[0]
	assert.NotEmpty(t, acme.ID)
	assert.Equal(t, domain.CustomerAtRisk, acme.Status)
	assert.Equal(t, "EUR", acme.Currency)
	assert.Equal(t, "4200.5", acme.MonthlyRevenue.String())
	require.NotNil(t, acme.LastContactAt)
	require.NotNil(t, acme.RenewalDate)
	assert.Equal(t, convertNow, acme.CreatedAt)

	globex := ds.Customers[1]
	assert.Equal(t, domain.CustomerActive, globex.Status)
	assert.Nil(t, globex.HealthScore)

	contract := ds.Contracts[0]
	assert.Equal(t, acme.ID, contract.CustomerID)
	assert.Equal(t, domain.BillingRetainer, contract.BillingType)
	assert.Equal(t, domain.ContractActive, contract.Status)

	byContract := ds.Invoices[0]
	assert.Equal(t, contract.ID, byContract.ContractID)
	assert.Equal(t, acme.ID, byContract.CustomerID, "customer inherited from contract")
	assert.True(t, byContract.LineItemsTotal().Equal(byContract.Amount))

	byName := ds.Invoices[1]
	assert.Equal(t, globex.ID, byName.CustomerID)
	assert.Empty(t, byName.ContractID)
	assert.Equal(t, domain.InvoiceDraft, byName.Status)
	assert.NotNil(t, byName.LineItems)

	sc := ds.Scorecards[0]
	require.Len(t, sc.Metrics, 2)
	assert.Equal(t, sc.ID, sc.Metrics[0].ScorecardID)
	assert.NotEqual(t, sc.Metrics[0].ID, sc.Metrics[1].ID)

	ci := ds.Initiatives[0]
	assert.Equal(t, domain.StageKnowledge, ci.Stage)
	assert.Equal(t, 4.5, ci.StageScores[domain.StageAwareness])

	assert.Equal(t, 40.0, ds.Allocations[0].CapacityHoursPerWeek)
	assert.Equal(t, []string{"Dashboards in a week"}, ds.Canvases[0].Blocks[domain.BlockValuePropositions])
	assert.Equal(t, "high", ds.CompetitiveAnalyses[0].Forces[domain.ForceRivalry].Intensity)
}

func TestConvert_KeepsGivenIDs(t *testing.T) {
	schema := &SeedSchema{
		Customers: []CustomerSeed{{ID: "cust-1", Name: "Acme"}},
		Contracts: []ContractSeed{{ID: "ctr-1", Customer: "cust-1", Title: "T", TotalValue: "5", StartDate: "2024-01-01"}},
	}
	ds, err := Convert(schema, convertNow)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", ds.Customers[0].ID)
	assert.Equal(t, "ctr-1", ds.Contracts[0].ID)
	assert.Equal(t, "cust-1", ds.Contracts[0].CustomerID)
	assert.Equal(t, domain.BillingFixed, ds.Contracts[0].BillingType)
}

func TestConvert_RefWinsOverName(t *testing.T) {
	schema := &SeedSchema{
		Customers: []CustomerSeed{
			{Name: "beta"},
			{Ref: "beta", Name: "Beta GmbH"},
		},
		Contracts: []ContractSeed{{Customer: "beta", Title: "T", TotalValue: "5", StartDate: "2024-01-01"}},
	}
	ds, err := Convert(schema, convertNow)
	require.NoError(t, err)
	assert.Equal(t, ds.Customers[1].ID, ds.Contracts[0].CustomerID)
}

func TestConvert_UnknownReference(t *testing.T) {
	schema := &SeedSchema{
		Contracts: []ContractSeed{{Customer: "ghost", Title: "T", TotalValue: "5", StartDate: "2024-01-01"}},
	}
	_, err := Convert(schema, convertNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown customer "ghost"`)
}
