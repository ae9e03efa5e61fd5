// Package operator holds the whitelist of field modifiers a search query may
// use and the handling class of each.
package operator

import (
	"fmt"
	"sort"
)

// Class groups operators that are handled the same way.
type Class string

const (
	ClassSourceAccount       Class = "source_account"
	ClassSourceAccountPrefix Class = "source_account_prefix"
	ClassSourceAccountSuffix Class = "source_account_suffix"
	ClassDestinationAccount  Class = "destination_account"
	ClassCategory            Class = "category"
	ClassBill                Class = "bill"
	ClassTag                 Class = "tag"
	ClassBudget              Class = "budget"
	ClassAmountIs            Class = "amount_is"
	ClassAmountMax           Class = "amount_max"
	ClassAmountMin           Class = "amount_min"
	ClassType                Class = "type"
	ClassDateOn              Class = "date_on"
	ClassDateBefore          Class = "date_before"
	ClassDateAfter           Class = "date_after"
	ClassCreatedOn           Class = "created_on"
	ClassUpdatedOn           Class = "updated_on"
	ClassExternalID          Class = "external_id"
	ClassInternalReference   Class = "internal_reference"
	ClassIgnored             Class = "ignored"
)

// Operator is one entry of the operator table.
type Operator struct {
	Name        string
	Class       Class
	Description string
}

// Ignored reports whether the operator is accepted but has no effect on the
// filter.
func (o Operator) Ignored() bool {
	return o.Class == ClassIgnored
}

// defaults is the complete operator table. Names are the user-facing syntax
// and must stay stable.
var defaults = []Operator{
	{Name: "from", Class: ClassSourceAccount, Description: "source account name contains value"},
	{Name: "source", Class: ClassSourceAccount, Description: "source account name contains value"},
	{Name: "from_account_contains", Class: ClassSourceAccount, Description: "source account name contains value"},
	{Name: "from_account_starts", Class: ClassSourceAccountPrefix, Description: "source account name starts with value"},
	{Name: "from_account_ends", Class: ClassSourceAccountSuffix, Description: "source account name ends with value"},
	{Name: "to", Class: ClassDestinationAccount, Description: "destination account name contains value"},
	{Name: "destination", Class: ClassDestinationAccount, Description: "destination account name contains value"},
	{Name: "category", Class: ClassCategory, Description: "category name contains value"},
	{Name: "bill", Class: ClassBill, Description: "bill name contains value"},
	{Name: "tag", Class: ClassTag, Description: "tag contains value"},
	{Name: "budget", Class: ClassBudget, Description: "budget name contains value"},
	{Name: "amount", Class: ClassAmountIs, Description: "amount equals value"},
	{Name: "amount_is", Class: ClassAmountIs, Description: "amount equals value"},
	{Name: "amount_max", Class: ClassAmountMax, Description: "amount is at most value"},
	{Name: "amount_less", Class: ClassAmountMax, Description: "amount is at most value"},
	{Name: "amount_min", Class: ClassAmountMin, Description: "amount is at least value"},
	{Name: "amount_more", Class: ClassAmountMin, Description: "amount is at least value"},
	{Name: "type", Class: ClassType, Description: "transaction type"},
	{Name: "date", Class: ClassDateOn, Description: "transaction date is value"},
	{Name: "on", Class: ClassDateOn, Description: "transaction date is value"},
	{Name: "date_before", Class: ClassDateBefore, Description: "transaction date is on or before value"},
	{Name: "before", Class: ClassDateBefore, Description: "transaction date is on or before value"},
	{Name: "date_after", Class: ClassDateAfter, Description: "transaction date is on or after value"},
	{Name: "after", Class: ClassDateAfter, Description: "transaction date is on or after value"},
	{Name: "created_on", Class: ClassCreatedOn, Description: "transaction was created on value"},
	{Name: "updated_on", Class: ClassUpdatedOn, Description: "transaction was updated on value"},
	{Name: "external_id", Class: ClassExternalID, Description: "external ID equals value"},
	{Name: "internal_reference", Class: ClassInternalReference, Description: "internal reference equals value"},
	{Name: "user_action", Class: ClassIgnored, Description: "recorded, has no effect on results"},
}

// Defaults returns a copy of the complete operator table in display order.
func Defaults() []Operator {
	out := make([]Operator, len(defaults))
	copy(out, defaults)
	return out
}

// DefaultNames returns every known operator name in display order.
func DefaultNames() []string {
	names := make([]string, len(defaults))
	for i, op := range defaults {
		names[i] = op.Name
	}
	return names
}

// Registry is an immutable lookup table of enabled operators. It is safe for
// concurrent use.
type Registry struct {
	byName map[string]Operator
	order  []string
}

// NewRegistry builds a registry enabling only the named operators. An empty
// list enables every known operator. A name that is not in the operator table
// is an error.
func NewRegistry(enabled []string) (*Registry, error) {
	known := make(map[string]Operator, len(defaults))
	for _, op := range defaults {
		known[op.Name] = op
	}

	if len(enabled) == 0 {
		enabled = DefaultNames()
	}

	r := &Registry{byName: make(map[string]Operator, len(enabled))}
	for _, name := range enabled {
		op, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown operator in whitelist: %q", name)
		}
		if _, dup := r.byName[name]; dup {
			continue
		}
		r.byName[name] = op
		r.order = append(r.order, name)
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error. Intended for tests and
// static setup.
func MustNewRegistry(enabled []string) *Registry {
	r, err := NewRegistry(enabled)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the operator with the given name if it is enabled.
func (r *Registry) Lookup(name string) (Operator, bool) {
	op, ok := r.byName[name]
	return op, ok
}

// Operators returns the enabled operators in registration order.
func (r *Registry) Operators() []Operator {
	out := make([]Operator, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the enabled operator names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len returns the number of enabled operators.
func (r *Registry) Len() int {
	return len(r.order)
}
