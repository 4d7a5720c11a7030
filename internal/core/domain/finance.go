// internal/core/domain/finance.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a finance transaction
type TransactionType string

const (
	TransactionDeposit TransactionType = "deposit"
	TransactionPayment TransactionType = "payment"
	TransactionExpense TransactionType = "expense"
	TransactionRefund  TransactionType = "refund"
)

// Transaction is a single ledger entry scoped to a company, optionally
// tied to a property.
type Transaction struct {
	ID          string          `json:"id"`
	CompanyID   int             `json:"company_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	PropertyID  string          `json:"property_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FinanceStats is the per-company financial dashboard payload.
type FinanceStats struct {
	TotalBalance         decimal.Decimal `json:"total_balance"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	TotalExpenses        decimal.Decimal `json:"total_expenses"`
	AvailableLimit       decimal.Decimal `json:"available_limit"`
	RealizedROI          decimal.Decimal `json:"realized_roi"`
	DefaultBidPercentage decimal.Decimal `json:"default_bid_percentage"`
}

// DepositRequest funds a company account.
type DepositRequest struct {
	CompanyID   int             `json:"company_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}
