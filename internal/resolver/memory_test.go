package resolver

import (
	"context"
	"testing"

	"fjacquet/txsearch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() models.Catalog {
	return models.Catalog{
		Accounts: []models.Account{
			{ID: 3, Name: "Savings Checking", Type: models.AccountTypeAsset},
			{ID: 1, Name: "Checking", Type: models.AccountTypeAsset},
			{ID: 2, Name: "Employer", Type: models.AccountTypeRevenue},
			{ID: 4, Name: "Supermarket", Type: models.AccountTypeExpense},
			{ID: 5, Name: "Car loan", Type: models.AccountTypeLoan},
		},
		Categories: []models.EntityRef{
			{ID: 2, Name: "Groceries"},
			{ID: 1, Name: "Dining out"},
			{ID: 3, Name: "groceries (bulk)"},
		},
		Budgets: []models.EntityRef{{ID: 1, Name: "Food"}},
		Tags:    []models.EntityRef{{ID: 1, Name: "holiday"}, {ID: 2, Name: "holiday-2020"}},
		Bills:   []models.EntityRef{{ID: 1, Name: "Rent"}},
	}
}

func TestMemoryResolver_SearchAccount(t *testing.T) {
	r := NewMemoryResolver(testCatalog())
	ctx := context.Background()

	got, err := r.SearchAccount(ctx, "check", models.SourceAccountTypes(), 25)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Checking", got[0].Name)
	assert.Equal(t, "Savings Checking", got[1].Name)

	got, err = r.SearchAccount(ctx, "e", models.SourceAccountTypes(), 25)
	require.NoError(t, err)
	var names []string
	for _, a := range got {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, "Employer")
	assert.NotContains(t, names, "Supermarket")

	got, err = r.SearchAccount(ctx, "super", models.DestinationAccountTypes(), 25)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemoryResolver_Limit(t *testing.T) {
	r := NewMemoryResolver(testCatalog())
	ctx := context.Background()

	got, err := r.SearchAccount(ctx, "", nil, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.SearchAccount(ctx, "", nil, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	tags, err := r.SearchTag(ctx, "holi", 0)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	tags, err = r.SearchTag(ctx, "holi", 1)
	require.NoError(t, err)
	assert.Equal(t, []models.EntityRef{{ID: 1, Name: "holiday"}}, tags)
}

func TestMemoryResolver_EntitySearches(t *testing.T) {
	r := NewMemoryResolver(testCatalog())
	ctx := context.Background()

	cats, err := r.SearchCategory(ctx, "GROCER", 25)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Groceries", cats[0].Name)

	budgets, err := r.SearchBudget(ctx, "foo", 25)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)

	bills, err := r.SearchBill(ctx, "nothing", 25)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestMemoryResolver_Cancelled(t *testing.T) {
	r := NewMemoryResolver(testCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.SearchAccount(ctx, "a", nil, 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = r.SearchCategory(ctx, "a", 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryResolver_CopiesCatalog(t *testing.T) {
	catalog := testCatalog()
	r := NewMemoryResolver(catalog)
	catalog.Categories[0].Name = "changed"

	cats, err := r.SearchCategory(context.Background(), "Groceries", 25)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestSetFrom(t *testing.T) {
	s := SetFrom(NewMemoryResolver(testCatalog()))
	assert.True(t, s.Complete())
	assert.False(t, Set{}.Complete())
}
