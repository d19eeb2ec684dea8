package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Date is a civil calendar date with no time component. It is stored as UTC
// midnight, so two Dates constructed from the same calendar day compare equal
// with == and Date is usable as a map key.
type Date struct {
	t time.Time
}

// NewDate constructs a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date-only string in ISO form ("2006-01-02").
// Unparseable input is an error, never a silently coerced zero date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// ParseDateTime parses a combined date-time string ("2006-01-02 15:04:05")
// and truncates it to the calendar day. A bare date-only string is also
// accepted, since some source extracts omit the time portion.
func ParseDateTime(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		t, err = time.Parse(dateLayout, s)
	}
	if err != nil {
		return Date{}, fmt.Errorf("parse datetime %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Time returns the date as a time.Time at UTC midnight.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return NewDate(d.t.Year(), d.t.Month(), 1)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(dateLayout) }

// MarshalJSON encodes the date as an ISO "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO "2006-01-02" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
