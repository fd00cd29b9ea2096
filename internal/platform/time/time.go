// Package time holds the calendar-date helpers crosswords are keyed by
package time

import (
	"fmt"
	"time"
)

// DateLayout is the wire form of a crossword date
const DateLayout = time.DateOnly

// DateOf truncates t to midnight UTC of its UTC calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FromEpochMillis turns a unix millisecond timestamp into its UTC date
func FromEpochMillis(ms int64) time.Time { return DateOf(time.UnixMilli(ms)) }

// ParseDate parses YYYY-MM-DD into midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t's UTC calendar day as YYYY-MM-DD
func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }

// Date is a calendar date that travels as YYYY-MM-DD in JSON
type Date struct{ time.Time }

// NewDate wraps t's UTC calendar day
func NewDate(t time.Time) Date { return Date{DateOf(t)} }

// String renders YYYY-MM-DD
func (d Date) String() string { return FormatDate(d.Time) }

// MarshalJSON renders the date as a YYYY-MM-DD string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + FormatDate(d.Time) + `"`), nil
}

// UnmarshalJSON accepts only a quoted YYYY-MM-DD string
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a %s string, got %s", DateLayout, b)
	}
	t, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
