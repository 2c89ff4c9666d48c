package models

import "time"

// MissedPayoutDigest is published to the finance channel ahead of each payout
// slot and lists every merchant with outstanding missed payouts.
type MissedPayoutDigest struct {
	ID            string                   `json:"id"`
	GeneratedAt   time.Time                `json:"generatedAt"`
	NextPayoutAt  string                   `json:"nextPayoutAt"`
	MerchantCount int                      `json:"merchantCount"`
	Totals        map[string]float64       `json:"totals"`
	Merchants     []MissedPayoutDigestItem `json:"merchants"`
}

type MissedPayoutDigestItem struct {
	MerchantID   string  `json:"merchantId"`
	BusinessName string  `json:"businessName"`
	Currency     string  `json:"currency"`
	MissedAmount float64 `json:"missedAmount"`
	MissedCount  int     `json:"missedCount"`
	WasSupposed  *string `json:"wasSupposed"`
}
