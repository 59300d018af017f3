package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)
	ctx := context.Background()

	contact := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	renewal := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	c := testutil.NewTestCustomer("Acme",
		testutil.WithHealthScore(72),
		testutil.WithLastContact(contact),
		testutil.WithRenewalDate(renewal),
		testutil.WithOpenTickets(3),
	)
	require.NoError(t, repo.Create(ctx, c))

	fetched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Name)
	assert.Equal(t, domain.CustomerActive, fetched.Status)
	assert.True(t, c.MonthlyRevenue.Equal(fetched.MonthlyRevenue), "revenue %s", fetched.MonthlyRevenue)
	assert.Equal(t, "4200.5", fetched.MonthlyRevenue.String())
	require.NotNil(t, fetched.HealthScore)
	assert.Equal(t, 72, *fetched.HealthScore)
	assert.Equal(t, 3, fetched.OpenTickets)
	require.NotNil(t, fetched.LastContactAt)
	assert.True(t, contact.Equal(*fetched.LastContactAt))
	require.NotNil(t, fetched.RenewalDate)
	assert.Equal(t, "2024-12-31", fetched.RenewalDate.Format(dateLayout))
	assert.True(t, c.CreatedAt.Equal(fetched.CreatedAt))
}

func TestCustomerRepo_NullableFieldsStayNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCustomer("Bare")
	c.Status = ""
	require.NoError(t, repo.Create(ctx, c))

	fetched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerActive, fetched.Status)
	assert.Nil(t, fetched.HealthScore)
	assert.Nil(t, fetched.LastContactAt)
	assert.Nil(t, fetched.RenewalDate)
}

func TestCustomerRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "customer nonexistent")
}

func TestCustomerRepo_List_SortedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)
	ctx := context.Background()

	for _, name := range []string{"Initech", "Acme", "Globex"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestCustomer(name)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "Globex", list[1].Name)
	assert.Equal(t, "Initech", list[2].Name)
}

func TestCustomerRepo_RejectsHealthScoreOutOfRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)

	err := repo.Create(context.Background(), testutil.NewTestCustomer("Broken", testutil.WithHealthScore(140)))
	assert.Error(t, err)
}
