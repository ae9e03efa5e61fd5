package models

import (
	"fmt"
	"strings"
)

// AccountType is the kind of an account. Resolvers restrict account
// searches to a set of kinds depending on the direction of the operator.
type AccountType string

const (
	AccountTypeAsset    AccountType = "asset"
	AccountTypeMortgage AccountType = "mortgage"
	AccountTypeLoan     AccountType = "loan"
	AccountTypeDebt     AccountType = "debt"
	AccountTypeRevenue  AccountType = "revenue"
	AccountTypeExpense  AccountType = "expense"
	AccountTypeCash     AccountType = "cash"
)

// Account is a named account as returned by an account resolver.
type Account struct {
	ID   int64       `json:"id" yaml:"id"`
	Name string      `json:"name" yaml:"name"`
	Type AccountType `json:"type" yaml:"type"`
}

// SourceAccountTypes returns the kinds an account can have when it is the
// source of a transaction: asset, liabilities or revenue.
func SourceAccountTypes() []AccountType {
	return []AccountType{
		AccountTypeAsset,
		AccountTypeMortgage,
		AccountTypeLoan,
		AccountTypeDebt,
		AccountTypeRevenue,
	}
}

// DestinationAccountTypes returns the kinds an account can have when it is
// the destination of a transaction: asset, liabilities or expense.
func DestinationAccountTypes() []AccountType {
	return []AccountType{
		AccountTypeAsset,
		AccountTypeMortgage,
		AccountTypeLoan,
		AccountTypeDebt,
		AccountTypeExpense,
	}
}

// ParseAccountType converts a case-insensitive name into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case AccountTypeAsset, AccountTypeMortgage, AccountTypeLoan, AccountTypeDebt,
		AccountTypeRevenue, AccountTypeExpense, AccountTypeCash:
		return t, nil
	}
	return "", fmt.Errorf("unknown account type: %q", s)
}

// ContainsAccountType reports whether t is one of kinds. An empty kinds slice
// matches every type.
func ContainsAccountType(kinds []AccountType, t AccountType) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == t {
			return true
		}
	}
	return false
}
