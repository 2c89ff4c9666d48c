package escrow

import (
	"strings"
	"time"

	"challenz/internal/models"
)

// TypeLabel names a ledger entry by its normalized status.
func TypeLabel(status string) string {
	switch status {
	case models.EscrowStatusPaid:
		return LabelPaymentReceived
	case models.EscrowStatusMissed:
		return LabelMissedPayout
	default:
		return LabelPendingPayout
	}
}

// DateLabel renders "Today, 15:04" for timestamps on now's calendar day and
// "Mon, Jan 2, 15:04" otherwise.
func (s Schedule) DateLabel(t, now time.Time) string {
	local := t.In(s.location())
	if s.IsToday(t, now) {
		return "Today, " + local.Format("15:04")
	}
	return local.Format("Mon, Jan 2, 15:04")
}

// FormatLedger turns raw entries into display rows, keeping their order.
func (s Schedule) FormatLedger(entries []models.EscrowLedgerEntry, now time.Time) []EscrowLedgerRow {
	rows := make([]EscrowLedgerRow, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		status := NormalizeStatus(entry.Status)

		currency := DefaultCurrency
		if entry.Currency != nil && strings.TrimSpace(*entry.Currency) != "" {
			currency = strings.TrimSpace(*entry.Currency)
		}

		paidAt := labelNoPayment
		if entry.PaidAt != nil {
			paidAt = s.DateLabel(*entry.PaidAt, now)
		}

		rows = append(rows, EscrowLedgerRow{
			ID:                   entry.ID,
			DateLabel:            s.DateLabel(entry.CreatedAt, now),
			CreatedAt:            entry.CreatedAt,
			TypeLabel:            TypeLabel(status),
			Amount:               money(entry.Amount()),
			Currency:             currency,
			OrderID:              entry.OrderID,
			PayoutBatchID:        entry.PayoutBatchID,
			PaymentReceiptNumber: entry.PaymentReceiptNumber,
			PaidAt:               paidAt,
			Status:               status,
		})
	}
	return rows
}
