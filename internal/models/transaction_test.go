package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Money(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		currency string
		expected string
	}{
		{"WithCurrency", "-45.5", "CHF", "-45.50 CHF"},
		{"WithoutCurrency", "12", "", "12.00"},
		{"Rounded", "0.125", "EUR", "0.13 EUR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := Transaction{Amount: decimal.RequireFromString(tc.amount), Currency: tc.currency}
			assert.Equal(t, tc.expected, tx.Money().String())
		})
	}
}

func TestTransaction_HasTag(t *testing.T) {
	tx := Transaction{Tags: []string{"holiday", "food"}}

	assert.True(t, tx.HasTag("holiday"))
	assert.True(t, tx.HasTag("food"))
	assert.False(t, tx.HasTag("Holiday"))
	assert.False(t, tx.HasTag("holiday-2020"))
	assert.False(t, Transaction{}.HasTag("food"))
}
