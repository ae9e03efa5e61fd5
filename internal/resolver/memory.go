package resolver

import (
	"context"
	"sort"
	"strings"

	"fjacquet/txsearch/internal/models"
)

// MemoryResolver answers lookups from an in-memory catalog. The catalog is
// copied and sorted on construction; the resolver is read-only afterwards and
// safe for concurrent use.
type MemoryResolver struct {
	catalog models.Catalog
}

// NewMemoryResolver creates a resolver over a copy of catalog.
func NewMemoryResolver(catalog models.Catalog) *MemoryResolver {
	c := models.Catalog{
		Accounts:   append([]models.Account(nil), catalog.Accounts...),
		Categories: append([]models.EntityRef(nil), catalog.Categories...),
		Budgets:    append([]models.EntityRef(nil), catalog.Budgets...),
		Tags:       append([]models.EntityRef(nil), catalog.Tags...),
		Bills:      append([]models.EntityRef(nil), catalog.Bills...),
	}
	sort.SliceStable(c.Accounts, func(i, j int) bool {
		return lessByName(c.Accounts[i].Name, c.Accounts[i].ID, c.Accounts[j].Name, c.Accounts[j].ID)
	})
	for _, refs := range [][]models.EntityRef{c.Categories, c.Budgets, c.Tags, c.Bills} {
		sortRefs(refs)
	}
	return &MemoryResolver{catalog: c}
}

// SearchAccount implements AccountSearcher.
func (m *MemoryResolver) SearchAccount(ctx context.Context, term string, kinds []models.AccountType, limit int) ([]models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var out []models.Account
	for _, acc := range m.catalog.Accounts {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !models.ContainsAccountType(kinds, acc.Type) {
			continue
		}
		if strings.Contains(strings.ToLower(acc.Name), needle) {
			out = append(out, acc)
		}
	}
	return out, nil
}

// SearchCategory implements CategorySearcher.
func (m *MemoryResolver) SearchCategory(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return searchRefs(ctx, m.catalog.Categories, term, limit)
}

// SearchBudget implements BudgetSearcher.
func (m *MemoryResolver) SearchBudget(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return searchRefs(ctx, m.catalog.Budgets, term, limit)
}

// SearchTag implements TagSearcher.
func (m *MemoryResolver) SearchTag(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return searchRefs(ctx, m.catalog.Tags, term, limit)
}

// SearchBill implements BillSearcher.
func (m *MemoryResolver) SearchBill(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return searchRefs(ctx, m.catalog.Bills, term, limit)
}

func searchRefs(ctx context.Context, refs []models.EntityRef, term string, limit int) ([]models.EntityRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var out []models.EntityRef
	for _, ref := range refs {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(ref.Name), needle) {
			out = append(out, ref)
		}
	}
	return out, nil
}

func sortRefs(refs []models.EntityRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		return lessByName(refs[i].Name, refs[i].ID, refs[j].Name, refs[j].ID)
	})
}

func lessByName(nameA string, idA int64, nameB string, idB int64) bool {
	if nameA != nameB {
		return nameA < nameB
	}
	return idA < idB
}
