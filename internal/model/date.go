package model

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time component. The zero value is not a
// valid date.
type Date struct {
	t time.Time // always midnight UTC
}

// ParseDate parses a YYYY-MM-DD string. Anything that is not a real
// calendar day fails with *InvalidDateError.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &InvalidDateError{Value: s, Err: err}
	}
	return Date{t: t}, nil
}

// MustDate is ParseDate for literals; it panics on bad input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a date from its parts, normalizing overflow the way
// time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DaysBetween returns the whole number of days from b to a (a - b).
func DaysBetween(a, b Date) int {
	return int(a.t.Sub(b.t) / (24 * time.Hour))
}

func (d Date) IsZero() bool         { return d.t.IsZero() }
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }
func (d Date) Before(o Date) bool   { return d.t.Before(o.t) }
func (d Date) After(o Date) bool    { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool    { return d.t.Equal(o.t) }
func (d Date) Year() int            { return d.t.Year() }
func (d Date) Month() time.Month    { return d.t.Month() }
func (d Date) Day() int             { return d.t.Day() }
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

// Format formats the day with a time layout.
func (d Date) Format(layout string) string { return d.t.Format(layout) }

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date { return NewDate(d.Year(), d.Month(), 1) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
