// Package time contains time related helpers, chiefly the civil Day used for purchase dates
package time

import (
	"encoding/json"
	"strings"
	"time"
)

// DayLayout is the wire and storage form of a Day
const DayLayout = "2006-01-02"

// Day is a calendar date without time of day or zone
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the Day of t in t's own location
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Today returns the current local date
func Today() Day { return DayOf(time.Now()) }

// ParseDay parses a "YYYY-MM-DD" string
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// MustDay is ParseDay for literals; panics on bad input
func MustDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of d
func (d Day) Time() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// IsZero reports whether d is the zero Day
func (d Day) IsZero() bool { return d == Day{} }

// String formats d as "YYYY-MM-DD"
func (d Day) String() string { return d.Time().Format(DayLayout) }

// AddDays returns d shifted by n calendar days
func (d Day) AddDays(n int) Day { return DayOf(d.Time().AddDate(0, 0, n)) }

// DaysSince returns the whole days from o to d (negative if d is earlier)
func (d Day) DaysSince(o Day) int {
	return int(d.Time().Sub(o.Time()).Hours() / 24)
}

// Before reports whether d is strictly earlier than o
func (d Day) Before(o Day) bool { return d.Time().Before(o.Time()) }

// After reports whether d is strictly later than o
func (d Day) After(o Day) bool { return d.Time().After(o.Time()) }

// Compare returns -1, 0 or +1
func (d Day) Compare(o Day) int { return d.Time().Compare(o.Time()) }

// MarshalJSON encodes d as a "YYYY-MM-DD" string
func (d Day) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON accepts "YYYY-MM-DD" and, for older files, a full RFC3339 timestamp
func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if len(s) > len(DayLayout) && s[len(DayLayout)] == 'T' {
		s = s[:len(DayLayout)]
	}
	v, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
