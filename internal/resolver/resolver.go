// Package resolver defines the entity lookup contract used by the search
// engine and provides in-memory and caching implementations.
//
// Every search is a case-insensitive substring match. Results are returned
// in resolver-defined priority order; the implementations here sort by name
// and then by ID. A limit of zero or less means "no limit".
package resolver

import (
	"context"

	"fjacquet/txsearch/internal/models"
)

// AccountSearcher finds accounts by partial name, restricted to kinds.
type AccountSearcher interface {
	SearchAccount(ctx context.Context, term string, kinds []models.AccountType, limit int) ([]models.Account, error)
}

// CategorySearcher finds categories by partial name.
type CategorySearcher interface {
	SearchCategory(ctx context.Context, term string, limit int) ([]models.EntityRef, error)
}

// BudgetSearcher finds budgets by partial name.
type BudgetSearcher interface {
	SearchBudget(ctx context.Context, term string, limit int) ([]models.EntityRef, error)
}

// TagSearcher finds tags by partial name.
type TagSearcher interface {
	SearchTag(ctx context.Context, term string, limit int) ([]models.EntityRef, error)
}

// BillSearcher finds bills by partial name.
type BillSearcher interface {
	SearchBill(ctx context.Context, term string, limit int) ([]models.EntityRef, error)
}

// Set bundles one searcher per entity kind.
type Set struct {
	Accounts   AccountSearcher
	Categories CategorySearcher
	Budgets    BudgetSearcher
	Tags       TagSearcher
	Bills      BillSearcher
}

// Backend is implemented by stores that can answer every kind of lookup.
type Backend interface {
	AccountSearcher
	CategorySearcher
	BudgetSearcher
	TagSearcher
	BillSearcher
}

// SetFrom uses a single backend for every entity kind.
func SetFrom(b Backend) Set {
	return Set{
		Accounts:   b,
		Categories: b,
		Budgets:    b,
		Tags:       b,
		Bills:      b,
	}
}

// Complete reports whether every searcher is present.
func (s Set) Complete() bool {
	return s.Accounts != nil && s.Categories != nil && s.Budgets != nil &&
		s.Tags != nil && s.Bills != nil
}
