package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Escrow ledger statuses
const (
	EscrowStatusPending = "pending"
	EscrowStatusMissed  = "missed"
	EscrowStatusPaid    = "paid"
)

// EscrowLedgerEntry is one fee obligation owed by a merchant. Rows are written
// by the order and payment system; the dashboard only reads them.
type EscrowLedgerEntry struct {
	ID                   string              `gorm:"column:id;primaryKey" json:"id"`
	MerchantID           string              `gorm:"column:merchant_id;index" json:"merchant_id"`
	FeeAmount            decimal.NullDecimal `gorm:"column:fee_amount;type:numeric" json:"fee_amount"`
	Currency             *string             `gorm:"column:currency" json:"currency"`
	Status               *string             `gorm:"column:status" json:"status"`
	PayoutDate           *CalendarDate       `gorm:"column:payout_date;type:date" json:"payout_date"`
	CreatedAt            time.Time           `gorm:"column:created_at" json:"created_at"`
	PaidAt               *time.Time          `gorm:"column:paid_at" json:"paid_at"`
	OrderID              *string             `gorm:"column:order_id" json:"order_id"`
	PayoutBatchID        *string             `gorm:"column:payout_batch_id" json:"payout_batch_id"`
	PaymentReceiptNumber *string             `gorm:"column:payment_receipt_number" json:"payment_receipt_number"`
}

// TableName overrides the default table name
func (EscrowLedgerEntry) TableName() string {
	return "fee_escrow"
}

// Amount returns the fee amount, treating a missing value as zero.
func (e *EscrowLedgerEntry) Amount() decimal.Decimal {
	if !e.FeeAmount.Valid {
		return decimal.Zero
	}
	return e.FeeAmount.Decimal
}
