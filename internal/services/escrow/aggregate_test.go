package escrow

import (
	"fmt"
	"testing"

	"challenz/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name   string
		status *string
		want   string
	}{
		{name: "nil defaults to pending", status: nil, want: "pending"},
		{name: "blank defaults to pending", status: strPtr("  "), want: "pending"},
		{name: "upper case", status: strPtr("MISSED"), want: "missed"},
		{name: "mixed case with spaces", status: strPtr(" Paid "), want: "paid"},
		{name: "unknown kept", status: strPtr("Refunded"), want: "refunded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.status))
		})
	}
}

func TestAggregate_EveryMerchantPresent(t *testing.T) {
	ids := []string{"a", "b", "c"}

	aggs := Aggregate(ids, nil)

	require.Len(t, aggs, 3)
	for _, id := range ids {
		agg, ok := aggs[id]
		require.True(t, ok, id)
		assert.True(t, agg.CurrentEscrow.IsZero())
		assert.True(t, agg.MissedAmount.IsZero())
		assert.True(t, agg.TotalRevenue.IsZero())
		assert.Zero(t, agg.MissedCount)
		assert.Nil(t, agg.EarliestMissedDate)
		assert.Equal(t, DefaultCurrency, agg.Currency)
	}
}

func TestAggregate_MissedScenario(t *testing.T) {
	entries := []models.EscrowLedgerEntry{
		entry("A", "missed", "50", "2024-01-10"),
		entry("A", "missed", "30", "2024-01-05"),
		entry("A", "paid", "100", ""),
	}

	agg := Aggregate([]string{"A"}, entries)["A"]

	assert.True(t, agg.CurrentEscrow.Equal(decimal.NewFromInt(80)), agg.CurrentEscrow.String())
	assert.True(t, agg.MissedAmount.Equal(decimal.NewFromInt(80)), agg.MissedAmount.String())
	assert.Equal(t, 2, agg.MissedCount)
	require.NotNil(t, agg.EarliestMissedDate)
	assert.Equal(t, "2024-01-05", agg.EarliestMissedDate.String())
	assert.True(t, agg.TotalRevenue.Equal(decimal.NewFromInt(100)), agg.TotalRevenue.String())
}

func TestAggregate_StatusBuckets(t *testing.T) {
	entries := []models.EscrowLedgerEntry{
		entry("m", "PENDING", "10.25", ""),
		entry("m", "", "4.75", ""),
		entry("m", "Missed", "5", ""),
		entry("m", "paid", "20", ""),
		entry("m", "refunded", "99", ""),
	}

	agg := Aggregate([]string{"m"}, entries)["m"]

	assert.Equal(t, "20", agg.CurrentEscrow.String())
	assert.Equal(t, "5", agg.MissedAmount.String())
	assert.Equal(t, 1, agg.MissedCount)
	assert.Nil(t, agg.EarliestMissedDate, "missed entry had no payout date")
	assert.Equal(t, "20", agg.TotalRevenue.String())
}

func TestAggregate_DropsUnrequestedMerchants(t *testing.T) {
	entries := []models.EscrowLedgerEntry{
		entry("known", "pending", "10", ""),
		entry("stranger", "pending", "500", ""),
	}

	aggs := Aggregate([]string{"known"}, entries)

	require.Len(t, aggs, 1)
	assert.Equal(t, "10", aggs["known"].CurrentEscrow.String())
}

func TestAggregate_NullAmountCountsAsZero(t *testing.T) {
	entries := []models.EscrowLedgerEntry{
		entry("m", "missed", "", "2024-02-01"),
		entry("m", "pending", "3", ""),
	}

	agg := Aggregate([]string{"m"}, entries)["m"]

	assert.Equal(t, "3", agg.CurrentEscrow.String())
	assert.True(t, agg.MissedAmount.IsZero())
	assert.Equal(t, 1, agg.MissedCount)
	assert.Equal(t, "2024-02-01", agg.EarliestMissedDate.String())
}

func TestAggregate_FirstCurrencyWins(t *testing.T) {
	first := entry("m", "pending", "1", "")
	second := entry("m", "pending", "1", "")
	second.Currency = strPtr("EUR")
	third := entry("m", "pending", "1", "")
	third.Currency = strPtr("GBP")

	agg := Aggregate([]string{"m"}, []models.EscrowLedgerEntry{first, second, third})["m"]

	assert.Equal(t, "EUR", agg.Currency)
}

func TestAggregate_EarliestMissedDateIsMonotonic(t *testing.T) {
	base := []models.EscrowLedgerEntry{
		entry("m", "missed", "1", "2024-03-10"),
	}

	later := append(append([]models.EscrowLedgerEntry{}, base...), entry("m", "missed", "1", "2024-04-01"))
	assert.Equal(t, "2024-03-10", Aggregate([]string{"m"}, later)["m"].EarliestMissedDate.String())

	earlier := append(append([]models.EscrowLedgerEntry{}, base...), entry("m", "missed", "1", "2023-12-31"))
	assert.Equal(t, "2023-12-31", Aggregate([]string{"m"}, earlier)["m"].EarliestMissedDate.String())
}

func TestAggregate_OrderIndependent(t *testing.T) {
	entries := []models.EscrowLedgerEntry{
		entry("a", "missed", "0.10", "2024-01-09"),
		entry("b", "paid", "0.20", ""),
		entry("a", "pending", "0.20", ""),
		entry("a", "missed", "0.30", "2024-01-02"),
		entry("b", "missed", "1.15", "2024-01-05"),
	}
	reversed := make([]models.EscrowLedgerEntry, len(entries))
	for i := range entries {
		reversed[len(entries)-1-i] = entries[i]
	}

	ids := []string{"a", "b"}
	assert.Equal(t, snapshot(Aggregate(ids, entries)), snapshot(Aggregate(ids, reversed)))
	assert.Equal(t, snapshot(Aggregate(ids, entries)), snapshot(Aggregate(ids, entries)))
}

func snapshot(aggs map[string]*MerchantAggregate) map[string]string {
	out := make(map[string]string, len(aggs))
	for id, agg := range aggs {
		earliest := "<nil>"
		if agg.EarliestMissedDate != nil {
			earliest = agg.EarliestMissedDate.String()
		}
		out[id] = fmt.Sprintf("%s|%s|%d|%s|%s|%s",
			agg.CurrentEscrow.StringFixed(2),
			agg.MissedAmount.StringFixed(2),
			agg.MissedCount,
			earliest,
			agg.TotalRevenue.StringFixed(2),
			agg.Currency,
		)
	}
	return out
}

func TestAggregate_CurrentEscrowCoversMissed(t *testing.T) {
	entries := []models.EscrowLedgerEntry{
		entry("m", "missed", "7.5", "2024-01-02"),
		entry("m", "pending", "2.5", ""),
		entry("m", "paid", "100", ""),
		entry("n", "paid", "1", ""),
	}

	for id, agg := range Aggregate([]string{"m", "n"}, entries) {
		assert.True(t, agg.CurrentEscrow.GreaterThanOrEqual(agg.MissedAmount), id)
		assert.False(t, agg.MissedAmount.IsNegative(), id)
	}
}
