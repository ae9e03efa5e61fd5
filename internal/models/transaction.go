// Package models holds the domain types shared by the search engine: accounts,
// catalog entities, money and transactions.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single transaction journal the executor filters.
type Transaction struct {
	ID                 string          `json:"id" yaml:"id"`
	Date               time.Time       `json:"date" yaml:"date"`
	Description        string          `json:"description" yaml:"description"`
	Amount             decimal.Decimal `json:"amount" yaml:"amount"`
	Currency           string          `json:"currency" yaml:"currency"`
	Type               string          `json:"type" yaml:"type"`
	SourceAccount      string          `json:"source_account" yaml:"source_account"`
	DestinationAccount string          `json:"destination_account" yaml:"destination_account"`
	Category           string          `json:"category,omitempty" yaml:"category,omitempty"`
	Budget             string          `json:"budget,omitempty" yaml:"budget,omitempty"`
	Bill               string          `json:"bill,omitempty" yaml:"bill,omitempty"`
	Tags               []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	ExternalID         string          `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	InternalReference  string          `json:"internal_reference,omitempty" yaml:"internal_reference,omitempty"`
	CreatedAt          time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" yaml:"updated_at"`
}

// Money returns the transaction amount with its currency.
func (t Transaction) Money() Money {
	return NewMoney(t.Amount, t.Currency)
}

// HasTag reports whether the transaction carries a tag with the given name.
func (t Transaction) HasTag(name string) bool {
	for _, tag := range t.Tags {
		if tag == name {
			return true
		}
	}
	return false
}
