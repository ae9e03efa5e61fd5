package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/txsearch/internal/cache"
	"fjacquet/txsearch/internal/models"
)

// CachingResolver memoises lookups of an underlying Set. Errors are never
// cached. Cached slices are copied on the way in and out.
type CachingResolver struct {
	next     Set
	accounts *cache.LRUCache[[]models.Account]
	refs     *cache.LRUCache[[]models.EntityRef]
}

// NewCachingResolver wraps next with two LRU caches of the given size and ttl.
func NewCachingResolver(next Set, size int, ttl time.Duration) *CachingResolver {
	return &CachingResolver{
		next:     next,
		accounts: cache.NewLRUCache[[]models.Account](size, ttl),
		refs:     cache.NewLRUCache[[]models.EntityRef](size, ttl),
	}
}

// Set returns the caching resolver as a resolver.Set.
func (c *CachingResolver) Set() Set {
	return SetFrom(c)
}

// Stats returns the combined usage of both caches.
func (c *CachingResolver) Stats() cache.Stats {
	a, r := c.accounts.Stats(), c.refs.Stats()
	return cache.Stats{Size: a.Size + r.Size, Hits: a.Hits + r.Hits, Misses: a.Misses + r.Misses}
}

// Purge drops every cached lookup, e.g. after the catalog changed.
func (c *CachingResolver) Purge() {
	c.accounts.Purge()
	c.refs.Purge()
}

// SearchAccount implements AccountSearcher.
func (c *CachingResolver) SearchAccount(ctx context.Context, term string, kinds []models.AccountType, limit int) ([]models.Account, error) {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	key := fmt.Sprintf("account|%s|%d|%s", strings.Join(parts, ","), limit, term)

	if hit, ok := c.accounts.Get(key); ok {
		return append([]models.Account(nil), hit...), nil
	}
	result, err := c.next.Accounts.SearchAccount(ctx, term, kinds, limit)
	if err != nil {
		return nil, err
	}
	c.accounts.Set(key, append([]models.Account(nil), result...))
	return result, nil
}

// SearchCategory implements CategorySearcher.
func (c *CachingResolver) SearchCategory(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.cachedRefs(models.EntityCategory, term, limit, func() ([]models.EntityRef, error) {
		return c.next.Categories.SearchCategory(ctx, term, limit)
	})
}

// SearchBudget implements BudgetSearcher.
func (c *CachingResolver) SearchBudget(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.cachedRefs(models.EntityBudget, term, limit, func() ([]models.EntityRef, error) {
		return c.next.Budgets.SearchBudget(ctx, term, limit)
	})
}

// SearchTag implements TagSearcher.
func (c *CachingResolver) SearchTag(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.cachedRefs(models.EntityTag, term, limit, func() ([]models.EntityRef, error) {
		return c.next.Tags.SearchTag(ctx, term, limit)
	})
}

// SearchBill implements BillSearcher.
func (c *CachingResolver) SearchBill(ctx context.Context, term string, limit int) ([]models.EntityRef, error) {
	return c.cachedRefs(models.EntityBill, term, limit, func() ([]models.EntityRef, error) {
		return c.next.Bills.SearchBill(ctx, term, limit)
	})
}

func (c *CachingResolver) cachedRefs(kind models.EntityKind, term string, limit int, load func() ([]models.EntityRef, error)) ([]models.EntityRef, error) {
	key := fmt.Sprintf("%s|%d|%s", kind, limit, term)
	if hit, ok := c.refs.Get(key); ok {
		return append([]models.EntityRef(nil), hit...), nil
	}
	result, err := load()
	if err != nil {
		return nil, err
	}
	c.refs.Set(key, append([]models.EntityRef(nil), result...))
	return result, nil
}
