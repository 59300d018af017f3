package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasRepo_RoundTripsBlocks(t *testing.T) {
	conn := testutil.NewTestDB(t)
	repo := NewSQLiteCanvasRepo(conn)
	ctx := context.Background()

	cv := testutil.NewTestCanvas("Managed analytics")
	cv.Blocks[domain.BlockChannels] = []string{"Partners", "Direct sales"}
	require.NoError(t, repo.Create(ctx, cv))

	fetched, err := repo.GetByID(ctx, cv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Managed analytics", fetched.Name)
	assert.Equal(t, []string{"Partners", "Direct sales"}, fetched.Blocks[domain.BlockChannels])
	assert.Equal(t, []string{"Faster onboarding"}, fetched.Blocks[domain.BlockValuePropositions])
	assert.NotContains(t, fetched.Blocks, domain.BlockKeyPartners)
}

func TestCanvasRepo_ListAndNotFound(t *testing.T) {
	conn := testutil.NewTestDB(t)
	repo := NewSQLiteCanvasRepo(conn)
	ctx := context.Background()

	empty := testutil.NewTestCanvas("Beta")
	empty.Blocks = nil
	require.NoError(t, repo.Create(ctx, empty))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCanvas("Alpha")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Empty(t, list[1].Blocks)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompetitiveAnalysisRepo_RoundTripsForces(t *testing.T) {
	conn := testutil.NewTestDB(t)
	repo := NewSQLiteCompetitiveAnalysisRepo(conn)
	ctx := context.Background()

	ca := testutil.NewTestCompetitiveAnalysis("Acme")
	ca.Notes = "Entering DACH"
	require.NoError(t, repo.Create(ctx, ca))

	fetched, err := repo.GetByID(ctx, ca.ID)
	require.NoError(t, err)
	assert.Equal(t, "Industrial IoT", fetched.Industry)
	assert.Equal(t, []string{"Globex"}, fetched.Competitors)
	assert.Equal(t, "Entering DACH", fetched.Notes)
	require.Contains(t, fetched.Forces, domain.ForceRivalry)
	assert.Equal(t, "high", fetched.Forces[domain.ForceRivalry].Intensity)
	assert.Equal(t, []string{"Price wars"}, fetched.Forces[domain.ForceRivalry].Factors)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
