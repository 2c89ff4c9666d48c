package escrow

import (
	"time"

	"challenz/internal/models"

	"github.com/shopspring/decimal"
)

// MerchantAggregate summarises one merchant's ledger.
type MerchantAggregate struct {
	CurrentEscrow      decimal.Decimal
	MissedAmount       decimal.Decimal
	MissedCount        int
	EarliestMissedDate *models.CalendarDate
	TotalRevenue       decimal.Decimal
	Currency           string
}

// DashboardRow is one merchant in the escrow list view.
type DashboardRow struct {
	ID                      string   `json:"id"`
	BusinessName            string   `json:"businessName"`
	Location                string   `json:"location"`
	Phone                   string   `json:"phone"`
	Currency                string   `json:"currency"`
	CurrentEscrow           float64  `json:"currentEscrow"`
	NextPayoutAt            string   `json:"nextPayoutAt"`
	MissedPayoutAmount      *float64 `json:"missedPayoutAmount"`
	MissedPayoutWasSupposed *string  `json:"missedPayoutWasSupposed"`
	MissedPayoutCount       int      `json:"missedPayoutCount"`
	TotalRevenue            float64  `json:"totalRevenue"`
}

// DetailSummary is the header block of the merchant escrow page.
type DetailSummary struct {
	MerchantID         string   `json:"merchantId"`
	BusinessName       string   `json:"businessName"`
	Location           string   `json:"location"`
	Phone              string   `json:"phone"`
	Currency           string   `json:"currency"`
	CurrentEscrow      float64  `json:"currentEscrow"`
	MissedPayoutAmount *float64 `json:"missedPayoutAmount"`
	MissedCount        int      `json:"missedCount"`
	MissedWasSupposed  *string  `json:"missedWasSupposed"`
	NextPayoutAt       string   `json:"nextPayoutAt"`
	TotalRevenue       float64  `json:"totalRevenue"`
}

// EscrowLedgerRow is one display line of the merchant ledger.
type EscrowLedgerRow struct {
	ID                   string    `json:"id"`
	DateLabel            string    `json:"dateLabel"`
	CreatedAt            time.Time `json:"createdAt"`
	TypeLabel            string    `json:"typeLabel"`
	Amount               float64   `json:"amount"`
	Currency             string    `json:"currency"`
	OrderID              *string   `json:"orderId"`
	PayoutBatchID        *string   `json:"payoutBatchId"`
	PaymentReceiptNumber *string   `json:"paymentReceiptNumber"`
	PaidAt               string    `json:"paidAt"`
	Status               string    `json:"status"`
}

// MerchantDetail is the full payload of the detail view.
type MerchantDetail struct {
	Summary DetailSummary     `json:"summary"`
	Ledger  []EscrowLedgerRow `json:"ledger"`
}
