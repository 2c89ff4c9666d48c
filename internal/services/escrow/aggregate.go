package escrow

import (
	"strings"

	"challenz/internal/models"
)

// NormalizeStatus trims and lowercases a ledger status. A missing or blank
// status is pending.
func NormalizeStatus(status *string) string {
	if status == nil {
		return models.EscrowStatusPending
	}
	s := strings.ToLower(strings.TrimSpace(*status))
	if s == "" {
		return models.EscrowStatusPending
	}
	return s
}

// Aggregate folds ledger entries into one aggregate per requested merchant.
// Every id in merchantIDs is present in the result, and entries belonging to
// any other merchant are ignored.
func Aggregate(merchantIDs []string, entries []models.EscrowLedgerEntry) map[string]*MerchantAggregate {
	aggregates := make(map[string]*MerchantAggregate, len(merchantIDs))
	for _, id := range merchantIDs {
		aggregates[id] = &MerchantAggregate{}
	}

	for i := range entries {
		entry := &entries[i]
		agg, ok := aggregates[entry.MerchantID]
		if !ok {
			continue
		}

		// first currency seen wins; mixed-currency ledgers are summed as one unit
		if agg.Currency == "" && entry.Currency != nil {
			agg.Currency = strings.TrimSpace(*entry.Currency)
		}

		amount := entry.Amount()
		switch NormalizeStatus(entry.Status) {
		case models.EscrowStatusPending:
			agg.CurrentEscrow = agg.CurrentEscrow.Add(amount)
		case models.EscrowStatusMissed:
			agg.CurrentEscrow = agg.CurrentEscrow.Add(amount)
			agg.MissedAmount = agg.MissedAmount.Add(amount)
			agg.MissedCount++
			if entry.PayoutDate != nil && *entry.PayoutDate != "" {
				if agg.EarliestMissedDate == nil || *entry.PayoutDate < *agg.EarliestMissedDate {
					date := *entry.PayoutDate
					agg.EarliestMissedDate = &date
				}
			}
		case models.EscrowStatusPaid:
			agg.TotalRevenue = agg.TotalRevenue.Add(amount)
		}
	}

	for _, agg := range aggregates {
		if agg.Currency == "" {
			agg.Currency = DefaultCurrency
		}
	}

	return aggregates
}
