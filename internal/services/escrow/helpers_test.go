package escrow

import (
	"time"

	"challenz/internal/models"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string {
	return &s
}

func datePtr(s string) *models.CalendarDate {
	d := models.CalendarDate(s)
	return &d
}

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func entry(merchantID, status, fee string, payoutDate string) models.EscrowLedgerEntry {
	e := models.EscrowLedgerEntry{
		ID:         merchantID + "-" + status + "-" + fee + "-" + payoutDate,
		MerchantID: merchantID,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if status != "" {
		e.Status = strPtr(status)
	}
	if fee != "" {
		e.FeeAmount = amount(fee)
	}
	if payoutDate != "" {
		e.PayoutDate = datePtr(payoutDate)
	}
	return e
}
