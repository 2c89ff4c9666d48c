package escrow

import "time"

// DefaultCurrency is reported for merchants with no currency on any entry.
const DefaultCurrency = "USD"

// Payout cadence
const (
	PayoutHour = 10
	payoutTime = "10:00"
)

var payoutDays = []time.Weekday{time.Tuesday, time.Friday}

// Ledger labels
const (
	LabelPaymentReceived = "Payment Received"
	LabelMissedPayout    = "Missed Payout"
	LabelPendingPayout   = "Pending Payout"
	labelNoPayment       = "-"
)
