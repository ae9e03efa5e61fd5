// Package collector accumulates the constraints of one search request into a
// single filter.
//
// A Collector is created per request, mutated only while the query is
// evaluated, and then read through Filter. It performs no validation: values
// arrive already parsed and normalised. It is not safe for concurrent use.
package collector

import (
	"time"

	"fjacquet/txsearch/internal/models"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Filter is the read-only result of a search evaluation, consumed by the
// executor. Nil pointers and empty slices mean "no constraint".
type Filter struct {
	Words               []string           `json:"words,omitempty" yaml:"words,omitempty"`
	SourceAccounts      []models.Account   `json:"source_accounts,omitempty" yaml:"source_accounts,omitempty"`
	DestinationAccounts []models.Account   `json:"destination_accounts,omitempty" yaml:"destination_accounts,omitempty"`
	Categories          []models.EntityRef `json:"categories,omitempty" yaml:"categories,omitempty"`
	Budgets             []models.EntityRef `json:"budgets,omitempty" yaml:"budgets,omitempty"`
	Tags                []models.EntityRef `json:"tags,omitempty" yaml:"tags,omitempty"`
	Bills               []models.EntityRef `json:"bills,omitempty" yaml:"bills,omitempty"`
	AmountEquals        *decimal.Decimal   `json:"amount_equals,omitempty" yaml:"amount_equals,omitempty"`
	AmountMin           *decimal.Decimal   `json:"amount_min,omitempty" yaml:"amount_min,omitempty"`
	AmountMax           *decimal.Decimal   `json:"amount_max,omitempty" yaml:"amount_max,omitempty"`
	DateOn              *DateRange         `json:"date_on,omitempty" yaml:"date_on,omitempty"`
	DateBefore          *time.Time         `json:"date_before,omitempty" yaml:"date_before,omitempty"`
	DateAfter           *time.Time         `json:"date_after,omitempty" yaml:"date_after,omitempty"`
	CreatedAt           *time.Time         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt           *time.Time         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Types               []string           `json:"types,omitempty" yaml:"types,omitempty"`
	ExternalID          *string            `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	InternalReference   *string            `json:"internal_reference,omitempty" yaml:"internal_reference,omitempty"`
}

// IsEmpty reports whether the filter constrains nothing, words included.
func (f Filter) IsEmpty() bool {
	return len(f.Words) == 0 && !f.HasConstraints()
}

// HasConstraints reports whether any field modifier left a constraint.
func (f Filter) HasConstraints() bool {
	return len(f.SourceAccounts) > 0 || len(f.DestinationAccounts) > 0 ||
		len(f.Categories) > 0 || len(f.Budgets) > 0 || len(f.Tags) > 0 || len(f.Bills) > 0 ||
		f.AmountEquals != nil || f.AmountMin != nil || f.AmountMax != nil ||
		f.DateOn != nil || f.DateBefore != nil || f.DateAfter != nil ||
		f.CreatedAt != nil || f.UpdatedAt != nil ||
		len(f.Types) > 0 || f.ExternalID != nil || f.InternalReference != nil
}

// Collector is the mutable accumulator behind a Filter.
type Collector struct {
	f Filter
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// AddWords appends free-text words, preserving order.
func (c *Collector) AddWords(words ...string) {
	c.f.Words = append(c.f.Words, words...)
}

// SetSourceAccounts replaces the source account set.
func (c *Collector) SetSourceAccounts(accounts []models.Account) {
	c.f.SourceAccounts = cloneAccounts(accounts)
}

// SetDestinationAccounts replaces the destination account set.
func (c *Collector) SetDestinationAccounts(accounts []models.Account) {
	c.f.DestinationAccounts = cloneAccounts(accounts)
}

// SetCategories replaces the category set.
func (c *Collector) SetCategories(refs []models.EntityRef) {
	c.f.Categories = cloneRefs(refs)
}

// SetBudgets replaces the budget set.
func (c *Collector) SetBudgets(refs []models.EntityRef) {
	c.f.Budgets = cloneRefs(refs)
}

// SetTags replaces the tag set.
func (c *Collector) SetTags(refs []models.EntityRef) {
	c.f.Tags = cloneRefs(refs)
}

// SetBills replaces the bill set.
func (c *Collector) SetBills(refs []models.EntityRef) {
	c.f.Bills = cloneRefs(refs)
}

// AmountIs sets the exact amount.
func (c *Collector) AmountIs(amount decimal.Decimal) {
	c.f.AmountEquals = &amount
}

// AmountLess sets the upper amount bound.
func (c *Collector) AmountLess(amount decimal.Decimal) {
	c.f.AmountMax = &amount
}

// AmountMore sets the lower amount bound.
func (c *Collector) AmountMore(amount decimal.Decimal) {
	c.f.AmountMin = &amount
}

// SetRange restricts the transaction date to [start, end].
func (c *Collector) SetRange(start, end time.Time) {
	c.f.DateOn = &DateRange{Start: start, End: end}
}

// SetBefore sets the latest transaction date.
func (c *Collector) SetBefore(date time.Time) {
	c.f.DateBefore = &date
}

// SetAfter sets the earliest transaction date.
func (c *Collector) SetAfter(date time.Time) {
	c.f.DateAfter = &date
}

// SetCreatedAt restricts the creation day.
func (c *Collector) SetCreatedAt(date time.Time) {
	c.f.CreatedAt = &date
}

// SetUpdatedAt restricts the last-update day.
func (c *Collector) SetUpdatedAt(date time.Time) {
	c.f.UpdatedAt = &date
}

// SetTypes replaces the transaction type set.
func (c *Collector) SetTypes(types []string) {
	c.f.Types = append([]string(nil), types...)
}

// SetExternalID sets the external identifier to match.
func (c *Collector) SetExternalID(id string) {
	c.f.ExternalID = &id
}

// SetInternalReference sets the internal reference to match.
func (c *Collector) SetInternalReference(ref string) {
	c.f.InternalReference = &ref
}

// Filter returns a deep copy of the accumulated filter.
func (c *Collector) Filter() Filter {
	out := Filter{
		Words:               append([]string(nil), c.f.Words...),
		SourceAccounts:      cloneAccounts(c.f.SourceAccounts),
		DestinationAccounts: cloneAccounts(c.f.DestinationAccounts),
		Categories:          cloneRefs(c.f.Categories),
		Budgets:             cloneRefs(c.f.Budgets),
		Tags:                cloneRefs(c.f.Tags),
		Bills:               cloneRefs(c.f.Bills),
		AmountEquals:        clonePtr(c.f.AmountEquals),
		AmountMin:           clonePtr(c.f.AmountMin),
		AmountMax:           clonePtr(c.f.AmountMax),
		DateOn:              clonePtr(c.f.DateOn),
		DateBefore:          clonePtr(c.f.DateBefore),
		DateAfter:           clonePtr(c.f.DateAfter),
		CreatedAt:           clonePtr(c.f.CreatedAt),
		UpdatedAt:           clonePtr(c.f.UpdatedAt),
		Types:               append([]string(nil), c.f.Types...),
		ExternalID:          clonePtr(c.f.ExternalID),
		InternalReference:   clonePtr(c.f.InternalReference),
	}
	return out
}

func cloneAccounts(in []models.Account) []models.Account {
	if len(in) == 0 {
		return nil
	}
	return append([]models.Account(nil), in...)
}

func cloneRefs(in []models.EntityRef) []models.EntityRef {
	if len(in) == 0 {
		return nil
	}
	return append([]models.EntityRef(nil), in...)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
