package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used for payout dates.
const DateLayout = "2006-01-02"

// CalendarDate is a date-only value kept in its ISO YYYY-MM-DD form, so two
// dates compare correctly as strings.
type CalendarDate string

// Value implements the driver.Valuer interface
func (d CalendarDate) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan implements the sql.Scanner interface
func (d *CalendarDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = CalendarDate(v.Format(DateLayout))
	case string:
		*d = parseCalendarDate(v)
	case []byte:
		*d = parseCalendarDate(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CalendarDate", value)
	}
	return nil
}

// UnmarshalJSON accepts both plain dates and full timestamps.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" {
		*d = ""
		return nil
	}
	*d = parseCalendarDate(raw)
	return nil
}

// Time returns the date at midnight in loc.
func (d CalendarDate) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, string(d), loc)
}

func (d CalendarDate) String() string {
	return string(d)
}

func parseCalendarDate(raw string) CalendarDate {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	return CalendarDate(raw)
}
