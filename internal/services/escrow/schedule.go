package escrow

import (
	"time"

	"challenz/internal/models"
)

// Schedule computes payout slots. Payouts run every Tuesday and Friday at
// 10:00 in Location.
type Schedule struct {
	Location *time.Location
}

// NewSchedule returns a schedule in loc, or in the process local zone when
// loc is nil.
func NewSchedule(loc *time.Location) Schedule {
	if loc == nil {
		loc = time.Local
	}
	return Schedule{Location: loc}
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// NextPayoutAt returns the first payout slot strictly ahead of from. A slot
// on from's own day counts only while from is before 10:00.
func (s Schedule) NextPayoutAt(from time.Time) time.Time {
	from = from.In(s.location())

	days := -1
	for _, weekday := range payoutDays {
		if n := daysUntil(from, weekday); days < 0 || n < days {
			days = n
		}
	}

	y, m, d := from.Date()
	return time.Date(y, m, d+days, PayoutHour, 0, 0, 0, from.Location())
}

// NextPayoutLabel formats the next slot as "Tue 10:00" or "Fri 10:00".
func (s Schedule) NextPayoutLabel(from time.Time) string {
	return s.NextPayoutAt(from).Format("Mon") + " " + payoutTime
}

// MissedAnchor returns the missed payout date at 10:00, the moment the payout
// was originally due.
func (s Schedule) MissedAnchor(date models.CalendarDate) (time.Time, bool) {
	day, err := date.Time(s.location())
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, PayoutHour, 0, 0, 0, day.Location()), true
}

// IsToday reports whether t falls on the same calendar day as now.
func (s Schedule) IsToday(t, now time.Time) bool {
	ty, tm, td := t.In(s.location()).Date()
	ny, nm, nd := now.In(s.location()).Date()
	return ty == ny && tm == nm && td == nd
}

func daysUntil(from time.Time, weekday time.Weekday) int {
	days := (int(weekday) - int(from.Weekday()) + 7) % 7
	if days == 0 {
		y, m, d := from.Date()
		cutoff := time.Date(y, m, d, PayoutHour, 0, 0, 0, from.Location())
		if !from.Before(cutoff) {
			days = 7
		}
	}
	return days
}
