package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for civil dates.
const Layout = "2006-01-02"

// Date is a civil calendar date without a time of day or timezone.
// The zero value means "no date". Date is comparable and usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New builds a Date, normalizing out-of-range components the way time.Date
// does (e.g. February 30th rolls into March).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime extracts the civil date from t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse reads a date in the "2006-01-02" layout.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Time returns midnight UTC of the date. All duration-based arithmetic goes
// through UTC so DST transitions never skew whole-day counts.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Time().Format(Layout)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

// DaysSince returns the number of whole days from o to d. Negative when d is
// earlier than o.
func (d Date) DaysSince(o Date) int {
	return int(d.Time().Sub(o.Time()) / (24 * time.Hour))
}

// MonthsSince returns the number of calendar months from o to d, ignoring the
// day-of-month component.
func (d Date) MonthsSince(o Date) int {
	return (d.Year-o.Year)*12 + int(d.Month) - int(o.Month)
}

// Range returns the dates from start through start+days-1 inclusive.
func Range(start Date, days int) []Date {
	if days <= 0 {
		return nil
	}
	out := make([]Date, days)
	for i := range out {
		out[i] = start.AddDays(i)
	}
	return out
}

// MarshalJSON encodes the date as "2006-01-02", or null for the zero value.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "2006-01-02" strings, null, and the empty string
// (both decode to the zero Date).
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("parse date: not a string: %s", s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
