package models

// EntityKind names the non-account entities a query can filter on.
type EntityKind string

const (
	EntityAccount  EntityKind = "account"
	EntityCategory EntityKind = "category"
	EntityBudget   EntityKind = "budget"
	EntityTag      EntityKind = "tag"
	EntityBill     EntityKind = "bill"
)

// EntityRef identifies a category, budget, tag or bill.
type EntityRef struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Catalog is the full set of entities the resolvers search through.
type Catalog struct {
	Accounts   []Account   `json:"accounts" yaml:"accounts"`
	Categories []EntityRef `json:"categories" yaml:"categories"`
	Budgets    []EntityRef `json:"budgets" yaml:"budgets"`
	Tags       []EntityRef `json:"tags" yaml:"tags"`
	Bills      []EntityRef `json:"bills" yaml:"bills"`
}

// Entities returns the entity list for kind. Accounts are not EntityRefs and
// yield nil.
func (c *Catalog) Entities(kind EntityKind) []EntityRef {
	switch kind {
	case EntityCategory:
		return c.Categories
	case EntityBudget:
		return c.Budgets
	case EntityTag:
		return c.Tags
	case EntityBill:
		return c.Bills
	}
	return nil
}

// Size returns the total number of entries in the catalog.
func (c *Catalog) Size() int {
	return len(c.Accounts) + len(c.Categories) + len(c.Budgets) + len(c.Tags) + len(c.Bills)
}
