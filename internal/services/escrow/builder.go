package escrow

import (
	"challenz/internal/models"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// RoundMoney rounds half up to the nearest cent.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Shift(2).Add(half).Floor().Shift(-2)
}

func money(amount decimal.Decimal) float64 {
	return RoundMoney(amount).InexactFloat64()
}

// missedMoney is nil when nothing was missed, so the view can tell "no missed
// payouts" apart from a zero amount.
func missedMoney(agg *MerchantAggregate) *float64 {
	if !agg.MissedAmount.IsPositive() {
		return nil
	}
	v := money(agg.MissedAmount)
	return &v
}

func wasSupposed(agg *MerchantAggregate) *string {
	if agg.EarliestMissedDate == nil {
		return nil
	}
	label := agg.EarliestMissedDate.String() + " " + payoutTime
	return &label
}

func orZero(agg *MerchantAggregate) *MerchantAggregate {
	if agg == nil {
		return &MerchantAggregate{Currency: DefaultCurrency}
	}
	return agg
}

// BuildDashboardRow projects a profile and its aggregate into a list row.
func BuildDashboardRow(profile *models.BusinessProfile, agg *MerchantAggregate, nextPayoutAt string) DashboardRow {
	agg = orZero(agg)
	return DashboardRow{
		ID:                      profile.ID,
		BusinessName:            profile.DisplayName(),
		Location:                profile.DisplayLocation(),
		Phone:                   profile.DisplayPhone(),
		Currency:                agg.Currency,
		CurrentEscrow:           money(agg.CurrentEscrow),
		NextPayoutAt:            nextPayoutAt,
		MissedPayoutAmount:      missedMoney(agg),
		MissedPayoutWasSupposed: wasSupposed(agg),
		MissedPayoutCount:       agg.MissedCount,
		TotalRevenue:            money(agg.TotalRevenue),
	}
}

// BuildDetailSummary projects a profile and its aggregate into the detail
// header.
func BuildDetailSummary(profile *models.BusinessProfile, agg *MerchantAggregate, nextPayoutAt string) DetailSummary {
	agg = orZero(agg)
	return DetailSummary{
		MerchantID:         profile.ID,
		BusinessName:       profile.DisplayName(),
		Location:           profile.DisplayLocation(),
		Phone:              profile.DisplayPhone(),
		Currency:           agg.Currency,
		CurrentEscrow:      money(agg.CurrentEscrow),
		MissedPayoutAmount: missedMoney(agg),
		MissedCount:        agg.MissedCount,
		MissedWasSupposed:  wasSupposed(agg),
		NextPayoutAt:       nextPayoutAt,
		TotalRevenue:       money(agg.TotalRevenue),
	}
}
