package collector

import (
	"testing"
	"time"

	"fjacquet/txsearch/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsEmpty(t *testing.T) {
	f := New().Filter()
	assert.True(t, f.IsEmpty())
	assert.False(t, f.HasConstraints())
	assert.Equal(t, Filter{}, f)
}

func TestAddWords_PreservesOrder(t *testing.T) {
	c := New()
	c.AddWords("fish", "and")
	c.AddWords("chips")

	f := c.Filter()
	assert.Equal(t, []string{"fish", "and", "chips"}, f.Words)
	assert.False(t, f.IsEmpty())
	assert.False(t, f.HasConstraints())
}

func TestAccountSets_ReplaceNotUnion(t *testing.T) {
	c := New()
	c.SetSourceAccounts([]models.Account{{ID: 1, Name: "Checking"}})
	c.SetSourceAccounts([]models.Account{{ID: 2, Name: "Savings"}})
	c.SetDestinationAccounts([]models.Account{{ID: 3, Name: "Shop"}})
	c.SetDestinationAccounts([]models.Account{{ID: 4, Name: "Landlord"}})

	f := c.Filter()
	assert.Equal(t, []models.Account{{ID: 2, Name: "Savings"}}, f.SourceAccounts)
	assert.Equal(t, []models.Account{{ID: 4, Name: "Landlord"}}, f.DestinationAccounts)
}

func TestEntitySetters(t *testing.T) {
	c := New()
	c.SetCategories([]models.EntityRef{{ID: 1, Name: "Groceries"}})
	c.SetBudgets([]models.EntityRef{{ID: 2, Name: "Food"}})
	c.SetTags([]models.EntityRef{{ID: 3, Name: "holiday"}, {ID: 4, Name: "holidays"}})
	c.SetBills([]models.EntityRef{{ID: 5, Name: "Rent"}})

	f := c.Filter()
	assert.Equal(t, "Groceries", f.Categories[0].Name)
	assert.Equal(t, "Food", f.Budgets[0].Name)
	assert.Len(t, f.Tags, 2)
	assert.Equal(t, "Rent", f.Bills[0].Name)
	assert.True(t, f.HasConstraints())
}

func TestAmounts_LastWriteWins(t *testing.T) {
	c := New()
	c.AmountIs(decimal.NewFromInt(5))
	c.AmountIs(decimal.NewFromInt(7))
	c.AmountLess(decimal.NewFromInt(100))
	c.AmountMore(decimal.NewFromInt(10))

	f := c.Filter()
	require.NotNil(t, f.AmountEquals)
	assert.True(t, decimal.NewFromInt(7).Equal(*f.AmountEquals))
	assert.True(t, decimal.NewFromInt(100).Equal(*f.AmountMax))
	assert.True(t, decimal.NewFromInt(10).Equal(*f.AmountMin))
}

func TestDates(t *testing.T) {
	day := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)
	c := New()
	c.SetRange(day, day)
	c.SetBefore(day.AddDate(0, 1, 0))
	c.SetAfter(day.AddDate(0, -1, 0))
	c.SetCreatedAt(day.AddDate(0, 0, 1))
	c.SetUpdatedAt(day.AddDate(0, 0, 2))

	f := c.Filter()
	require.NotNil(t, f.DateOn)
	assert.Equal(t, day, f.DateOn.Start)
	assert.Equal(t, day, f.DateOn.End)
	assert.Equal(t, time.February, f.DateBefore.Month())
	assert.Equal(t, time.December, f.DateAfter.Month())
	assert.Equal(t, 16, f.CreatedAt.Day())
	assert.Equal(t, 17, f.UpdatedAt.Day())
}

func TestLiterals(t *testing.T) {
	c := New()
	c.SetTypes([]string{"Withdrawal"})
	c.SetTypes([]string{"Deposit"})
	c.SetExternalID("ext-1")
	c.SetInternalReference("ref-9")

	f := c.Filter()
	assert.Equal(t, []string{"Deposit"}, f.Types)
	assert.Equal(t, "ext-1", *f.ExternalID)
	assert.Equal(t, "ref-9", *f.InternalReference)
}

func TestFilter_IsDeepCopy(t *testing.T) {
	input := []models.EntityRef{{ID: 1, Name: "Groceries"}}
	c := New()
	c.SetCategories(input)
	c.AmountIs(decimal.NewFromInt(3))
	c.SetExternalID("a")

	input[0].Name = "mutated by caller"
	first := c.Filter()
	first.Categories[0].Name = "mutated by reader"
	*first.ExternalID = "b"
	first.Words = append(first.Words, "extra")

	second := c.Filter()
	assert.Equal(t, "Groceries", second.Categories[0].Name)
	assert.Equal(t, "a", *second.ExternalID)
	assert.Empty(t, second.Words)
}
