// Package executor applies a search filter to a list of transactions.
package executor

import (
	"strconv"
	"strings"
	"time"

	"fjacquet/txsearch/internal/collector"
	"fjacquet/txsearch/internal/dateutils"
	"fjacquet/txsearch/internal/models"

	"github.com/shopspring/decimal"
)

// Page is one page of matching transactions.
type Page struct {
	Transactions []models.Transaction `json:"transactions" yaml:"transactions"`
	Total        int                  `json:"total" yaml:"total"`
	Page         int                  `json:"page" yaml:"page"`
	PageSize     int                  `json:"page_size" yaml:"page_size"`
}

// Pages returns the number of pages needed for Total results.
func (p Page) Pages() int {
	if p.PageSize <= 0 {
		if p.Total > 0 {
			return 1
		}
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// Execute returns the requested page of transactions matching f, in input
// order. page is 1-based and values below 1 select the first page; a
// pageSize of zero or less returns every match on one page.
func Execute(f collector.Filter, txs []models.Transaction, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}

	var matched []models.Transaction
	for _, tx := range txs {
		if Match(f, tx) {
			matched = append(matched, tx)
		}
	}

	result := Page{Total: len(matched), Page: page, PageSize: pageSize}
	if pageSize <= 0 {
		result.Transactions = matched
		return result
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		result.Transactions = []models.Transaction{}
		return result
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	result.Transactions = matched[start:end]
	return result
}

// Match reports whether tx satisfies every constraint of f.
func Match(f collector.Filter, tx models.Transaction) bool {
	return matchWords(f.Words, tx.Description) &&
		matchAccounts(f.SourceAccounts, tx.SourceAccount) &&
		matchAccounts(f.DestinationAccounts, tx.DestinationAccount) &&
		matchRefs(f.Categories, tx.Category) &&
		matchRefs(f.Budgets, tx.Budget) &&
		matchRefs(f.Bills, tx.Bill) &&
		matchTags(f.Tags, tx.Tags) &&
		matchAmount(f, models.Positive(tx.Amount)) &&
		matchDates(f, tx) &&
		matchTypes(f.Types, tx.Type) &&
		matchExact(f.ExternalID, tx.ExternalID) &&
		matchExact(f.InternalReference, tx.InternalReference)
}

func matchWords(words []string, description string) bool {
	desc := strings.ToLower(description)
	for _, w := range words {
		if !strings.Contains(desc, strings.ToLower(w)) {
			return false
		}
	}
	return true
}

// matchAccounts accepts the transaction account by name or by numeric ID.
func matchAccounts(accounts []models.Account, account string) bool {
	if len(accounts) == 0 {
		return true
	}
	for _, acc := range accounts {
		if strings.EqualFold(acc.Name, account) || strconv.FormatInt(acc.ID, 10) == account {
			return true
		}
	}
	return false
}

func matchRefs(refs []models.EntityRef, name string) bool {
	if len(refs) == 0 {
		return true
	}
	for _, ref := range refs {
		if strings.EqualFold(ref.Name, name) {
			return true
		}
	}
	return false
}

func matchTags(refs []models.EntityRef, tags []string) bool {
	if len(refs) == 0 {
		return true
	}
	for _, tag := range tags {
		if matchRefs(refs, tag) {
			return true
		}
	}
	return false
}

func matchAmount(f collector.Filter, amount decimal.Decimal) bool {
	if f.AmountEquals != nil && !amount.Equal(*f.AmountEquals) {
		return false
	}
	if f.AmountMin != nil && amount.LessThan(*f.AmountMin) {
		return false
	}
	if f.AmountMax != nil && amount.GreaterThan(*f.AmountMax) {
		return false
	}
	return true
}

// matchDates compares calendar days, ignoring time of day and location.
func matchDates(f collector.Filter, tx models.Transaction) bool {
	if f.DateOn != nil && (dateutils.CompareDates(tx.Date, f.DateOn.Start) < 0 || dateutils.CompareDates(tx.Date, f.DateOn.End) > 0) {
		return false
	}
	if f.DateBefore != nil && dateutils.CompareDates(tx.Date, *f.DateBefore) > 0 {
		return false
	}
	if f.DateAfter != nil && dateutils.CompareDates(tx.Date, *f.DateAfter) < 0 {
		return false
	}
	return matchDay(f.CreatedAt, tx.CreatedAt) && matchDay(f.UpdatedAt, tx.UpdatedAt)
}

func matchDay(want *time.Time, got time.Time) bool {
	return want == nil || dateutils.SameDay(*want, got)
}

func matchTypes(types []string, t string) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if strings.EqualFold(want, t) {
			return true
		}
	}
	return false
}

func matchExact(want *string, got string) bool {
	return want == nil || *want == got
}
