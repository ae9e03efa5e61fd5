package models

// Transaction types as they appear after the `type:` operator capitalised
// the user value.
const (
	TransactionTypeWithdrawal = "Withdrawal"
	TransactionTypeDeposit    = "Deposit"
	TransactionTypeTransfer   = "Transfer"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
)
