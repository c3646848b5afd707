// Package dateutil provides the calendar value types used by the projection
// engine. A Date is a plain year/month/day with no time or timezone component;
// the YYYY-MM-DD wire form is parsed and emitted only at the boundary so that
// ordering and range checks never rely on string comparison.
package dateutil

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Date is a calendar date, comparable by value.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Today returns the current date in the given location.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func fromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Compare returns -1, 0, or +1 as d is before, equal to, or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return fromTime(d.toTime().AddDate(0, 0, n))
}

// AddMonths returns the date n months after d. Day overflow follows Go's
// time.AddDate normalization: Jan 31 + 1 month = Mar 2 (Mar 3 in leap years).
// The behavior is deterministic for any input.
func (d Date) AddMonths(n int) Date {
	return fromTime(d.toTime().AddDate(0, n, 0))
}

// AddYears returns the date n years after d, with the same normalization as
// AddMonths (Feb 29 + 1 year = Mar 1).
func (d Date) AddYears(n int) Date {
	return fromTime(d.toTime().AddDate(n, 0, 0))
}

// MonthOf returns the month containing d.
func (d Date) MonthOf() Month {
	return Month{Year: d.Year, Month: d.Month}
}

// DaysBetween returns the number of days from d to other (positive when other
// is later).
func DaysBetween(d, other Date) int {
	return int(other.toTime().Sub(d.toTime()).Hours() / 24)
}

// Month is a calendar month, comparable by value.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM string into a Month.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Compare returns -1, 0, or +1 as m is before, equal to, or after other.
func (m Month) Compare(other Month) int {
	if m.Year != other.Year {
		return sign(m.Year - other.Year)
	}
	return sign(int(m.Month) - int(other.Month))
}

// Before reports whether m is strictly before other.
func (m Month) Before(other Month) bool { return m.Compare(other) < 0 }

// After reports whether m is strictly after other.
func (m Month) After(other Month) bool { return m.Compare(other) > 0 }

// First returns the first day of the month.
func (m Month) First() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths returns the month n months after m.
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether d falls within the month.
func (m Month) Contains(d Date) bool {
	return m.Year == d.Year && m.Month == d.Month
}

// Range is an inclusive span of calendar dates.
type Range struct {
	Start Date
	End   Date
}

// Len returns the number of days in the range, inclusive. A reversed range
// has length zero.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// MonthSpan widens the range to whole months: the first day of the start
// month through the last day of the end month.
func (r Range) MonthSpan() Range {
	end := r.End.MonthOf()
	return Range{Start: r.Start.MonthOf().First(), End: end.First().AddDays(end.Days() - 1)}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
