package dateutil

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestParseDate(t *testing.T) {
	d := mustDate(t, "2024-03-07")
	if d.Year != 2024 || d.Month != time.March || d.Day != 7 {
		t.Fatalf("parsed %v, want 2024-03-07", d)
	}
	if got := d.String(); got != "2024-03-07" {
		t.Fatalf("String() = %q, want 2024-03-07", got)
	}

	for _, bad := range []string{"", "2024-3-7", "2024-13-01", "2024-02-30", "07-03-2024", "2024-03-07T00:00:00"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q) succeeded, want error", bad)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := mustDate(t, "2024-02-29")
	b := mustDate(t, "2024-03-01")
	if !a.Before(b) || b.Before(a) || a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Fatal("2024-02-29 should order strictly before 2024-03-01")
	}
	if a.Compare(a) != 0 {
		t.Fatal("date should compare equal to itself")
	}
}

func TestAddMonthsOverflowNormalizes(t *testing.T) {
	// Day overflow rolls forward per time.AddDate: Jan 31 + 1 month lands in
	// early March, not on a clamped Feb day.
	cases := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-03-02"}, // leap year, Feb has 29 days
		{"2025-01-31", 1, "2025-03-03"},
		{"2024-03-31", 1, "2024-05-01"},
		{"2024-05-15", 2, "2024-07-15"},
		{"2024-11-15", 2, "2025-01-15"},
	}
	for _, c := range cases {
		got := mustDate(t, c.start).AddMonths(c.months)
		if got.String() != c.want {
			t.Fatalf("%s + %d months = %s, want %s", c.start, c.months, got, c.want)
		}
	}
}

func TestAddYearsLeapDay(t *testing.T) {
	got := mustDate(t, "2024-02-29").AddYears(1)
	if got.String() != "2025-03-01" {
		t.Fatalf("2024-02-29 + 1 year = %s, want 2025-03-01", got)
	}
}

func TestAddDays(t *testing.T) {
	if got := mustDate(t, "2024-02-28").AddDays(1); got.String() != "2024-02-29" {
		t.Fatalf("2024-02-28 + 1 day = %s, want 2024-02-29", got)
	}
	if got := mustDate(t, "2024-01-01").AddDays(-1); got.String() != "2023-12-31" {
		t.Fatalf("2024-01-01 - 1 day = %s, want 2023-12-31", got)
	}
}

func TestMonthDays(t *testing.T) {
	cases := map[string]int{
		"2024-02": 29,
		"2025-02": 28,
		"2024-04": 30,
		"2024-12": 31,
	}
	for s, want := range cases {
		m, err := ParseMonth(s)
		if err != nil {
			t.Fatalf("parse month %q: %v", s, err)
		}
		if got := m.Days(); got != want {
			t.Fatalf("%s has %d days, want %d", s, got, want)
		}
	}
}

func TestMonthArithmetic(t *testing.T) {
	m, err := ParseMonth("2024-12")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if got := m.AddMonths(1).String(); got != "2025-01" {
		t.Fatalf("2024-12 + 1 month = %s, want 2025-01", got)
	}
	if got := m.First().String(); got != "2024-12-01" {
		t.Fatalf("First() = %s, want 2024-12-01", got)
	}
	if !m.Contains(mustDate(t, "2024-12-31")) || m.Contains(mustDate(t, "2025-01-01")) {
		t.Fatal("Contains should cover exactly the month's own days")
	}
}

func TestRangeLen(t *testing.T) {
	r := Range{Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-03")}
	if got := r.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	single := Range{Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-01")}
	if got := single.Len(); got != 1 {
		t.Fatalf("single-day Len() = %d, want 1", got)
	}

	reversed := Range{Start: mustDate(t, "2024-03-03"), End: mustDate(t, "2024-03-01")}
	if got := reversed.Len(); got != 0 {
		t.Fatalf("reversed Len() = %d, want 0", got)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(mustDate(t, "2024-02-28"), mustDate(t, "2024-03-01")); got != 2 {
		t.Fatalf("DaysBetween = %d, want 2 (leap year)", got)
	}
}
