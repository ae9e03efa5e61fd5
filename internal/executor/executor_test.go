package executor

import (
	"testing"
	"time"

	"fjacquet/txsearch/internal/collector"
	"fjacquet/txsearch/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID: "1", Date: time.Date(2020, 1, 15, 18, 45, 0, 0, time.UTC), Description: "Dinner at Luigi's",
			Amount: decimal.RequireFromString("-45.50"), Type: "Withdrawal",
			SourceAccount: "Checking", DestinationAccount: "Luigi's", Category: "Dining",
			Tags: []string{"holiday"}, ExternalID: "EXT-1",
			CreatedAt: day(2020, 1, 16), UpdatedAt: day(2020, 2, 1),
		},
		{
			ID: "2", Date: day(2020, 1, 20), Description: "Weekly groceries",
			Amount: decimal.RequireFromString("-82.10"), Type: "Withdrawal",
			SourceAccount: "Checking", DestinationAccount: "Supermarket", Category: "Groceries",
			Budget: "Food", InternalReference: "ref-2",
		},
		{
			ID: "3", Date: day(2020, 1, 31), Description: "Salary January",
			Amount: decimal.RequireFromString("5000"), Type: "Deposit",
			SourceAccount: "Employer", DestinationAccount: "Checking",
		},
		{
			ID: "4", Date: day(2020, 2, 1), Description: "Rent February",
			Amount: decimal.RequireFromString("-1500"), Type: "Withdrawal",
			SourceAccount: "7", DestinationAccount: "Landlord", Bill: "Rent",
		},
	}
}

func ids(txs []models.Transaction) []string {
	var out []string
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func TestExecute_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter collector.Filter
		want   []string
	}{
		{"empty filter matches all", collector.Filter{}, []string{"1", "2", "3", "4"}},
		{"words are case-insensitive and all required", collector.Filter{Words: []string{"DINNER", "luigi"}}, []string{"1"}},
		{"missing word", collector.Filter{Words: []string{"dinner", "lunch"}}, nil},
		{"source account by name", collector.Filter{SourceAccounts: []models.Account{{ID: 1, Name: "checking"}}}, []string{"1", "2"}},
		{"source account by id", collector.Filter{SourceAccounts: []models.Account{{ID: 7, Name: "Old checking"}}}, []string{"4"}},
		{"destination account", collector.Filter{DestinationAccounts: []models.Account{{ID: 1, Name: "Checking"}}}, []string{"3"}},
		{"category", collector.Filter{Categories: []models.EntityRef{{ID: 1, Name: "Groceries"}, {ID: 2, Name: "Dining"}}}, []string{"1", "2"}},
		{"budget", collector.Filter{Budgets: []models.EntityRef{{ID: 1, Name: "food"}}}, []string{"2"}},
		{"bill", collector.Filter{Bills: []models.EntityRef{{ID: 1, Name: "Rent"}}}, []string{"4"}},
		{"tag", collector.Filter{Tags: []models.EntityRef{{ID: 1, Name: "holiday"}}}, []string{"1"}},
		{"amount equals absolute", collector.Filter{AmountEquals: dec("45.5")}, []string{"1"}},
		{"amount min", collector.Filter{AmountMin: dec("100")}, []string{"3", "4"}},
		{"amount max", collector.Filter{AmountMax: dec("82.10")}, []string{"1", "2"}},
		{"date on ignores time of day", collector.Filter{DateOn: &collector.DateRange{Start: day(2020, 1, 15), End: day(2020, 1, 15)}}, []string{"1"}},
		{"date before is inclusive", collector.Filter{DateBefore: ptr(day(2020, 1, 20))}, []string{"1", "2"}},
		{"date after is inclusive", collector.Filter{DateAfter: ptr(day(2020, 1, 31))}, []string{"3", "4"}},
		{"created on", collector.Filter{CreatedAt: ptr(day(2020, 1, 16))}, []string{"1"}},
		{"updated on", collector.Filter{UpdatedAt: ptr(day(2020, 2, 1))}, []string{"1"}},
		{"type", collector.Filter{Types: []string{"deposit"}}, []string{"3"}},
		{"external id", collector.Filter{ExternalID: ptr("EXT-1")}, []string{"1"}},
		{"external id is exact", collector.Filter{ExternalID: ptr("ext-1")}, nil},
		{"internal reference", collector.Filter{InternalReference: ptr("ref-2")}, []string{"2"}},
		{
			"combined",
			collector.Filter{
				Words:          []string{"groceries"},
				SourceAccounts: []models.Account{{ID: 1, Name: "Checking"}},
				AmountMin:      dec("50"),
				Types:          []string{"Withdrawal"},
			},
			[]string{"2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Execute(tt.filter, testTransactions(), 1, 0)
			assert.Equal(t, tt.want, ids(page.Transactions))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestExecute_Pagination(t *testing.T) {
	txs := testTransactions()

	tests := []struct {
		name      string
		page      int
		pageSize  int
		want      []string
		wantPages int
	}{
		{"first page", 1, 3, []string{"1", "2", "3"}, 2},
		{"second page", 2, 3, []string{"4"}, 2},
		{"past the end", 5, 3, []string{}, 2},
		{"page below one", 0, 2, []string{"1", "2"}, 2},
		{"unpaged", 1, 0, []string{"1", "2", "3", "4"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Execute(collector.Filter{}, txs, tt.page, tt.pageSize)
			got := ids(page.Transactions)
			if got == nil {
				got = []string{}
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 4, page.Total)
			assert.Equal(t, tt.wantPages, page.Pages())
		})
	}
}

func TestPage_PagesWithoutResults(t *testing.T) {
	assert.Equal(t, 0, Page{}.Pages())
	assert.Equal(t, 0, Page{PageSize: 10}.Pages())
}
