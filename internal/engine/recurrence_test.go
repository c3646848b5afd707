package engine

import (
	"errors"
	"testing"

	"runway/internal/dateutil"
	"runway/internal/model"
)

func mustD(t *testing.T, s string) dateutil.Date {
	t.Helper()
	d, err := dateutil.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func monthlyTemplate(t *testing.T) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:          "t1",
		Description: "gym",
		Amount:      -50,
		Date:        mustD(t, "2024-01-15"),
		Status:      model.StatusCleared,
		Category:    "cat-fitness",
		IsRecurring: true,
		RecurFreq:   1,
		RecurPeriod: model.PeriodMonths,
	}
}

func TestExpandMonthlyTwoYearDefault(t *testing.T) {
	today := mustD(t, "2024-01-15")
	got, err := ExpandRecurrence(monthlyTemplate(t), "", today)
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}

	// 2024-01-15 through 2026-01-15 inclusive.
	if len(got) != 25 {
		t.Fatalf("expanded %d occurrences, want 25", len(got))
	}
	if got[0].Date != mustD(t, "2024-01-15") || got[0].Status != model.StatusCleared {
		t.Fatalf("anchor = %s/%s, want template date and status", got[0].Date, got[0].Status)
	}
	if got[1].Date != mustD(t, "2024-02-15") || got[2].Date != mustD(t, "2024-03-15") {
		t.Fatalf("next occurrences on %s, %s — want Feb 15 and Mar 15", got[1].Date, got[2].Date)
	}
	if last := got[len(got)-1].Date; last != mustD(t, "2026-01-15") {
		t.Fatalf("last occurrence %s, want 2026-01-15", last)
	}

	rid := got[0].RecurrenceID
	if rid == "" {
		t.Fatal("anchor was not assigned a recurrence id")
	}
	for i, occ := range got {
		if occ.RecurrenceID != rid {
			t.Fatalf("occurrence %d has recurrence id %q, want %q", i, occ.RecurrenceID, rid)
		}
		if i > 0 {
			if occ.Status != model.StatusExpected {
				t.Fatalf("occurrence %d status = %s, want expected", i, occ.Status)
			}
			if !got[i-1].Date.Before(occ.Date) {
				t.Fatalf("dates not strictly increasing at %d: %s then %s", i, got[i-1].Date, occ.Date)
			}
			if occ.Amount != -50 || occ.Category != "cat-fitness" {
				t.Fatalf("occurrence %d did not inherit anchor fields", i)
			}
		}
	}
}

func TestExpandRespectsEndDate(t *testing.T) {
	tpl := monthlyTemplate(t)
	tpl.RecurPeriod = model.PeriodWeeks
	tpl.RecurEndDate = mustD(t, "2024-02-05")

	got, err := ExpandRecurrence(tpl, "", mustD(t, "2024-01-15"))
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}
	// Jan 15, 22, 29, Feb 5; Feb 12 is past the end.
	if len(got) != 4 {
		t.Fatalf("expanded %d occurrences, want 4", len(got))
	}
	for _, occ := range got {
		if occ.Date.After(tpl.RecurEndDate) {
			t.Fatalf("occurrence %s exceeds end date %s", occ.Date, tpl.RecurEndDate)
		}
	}
}

func TestExpandHardCap(t *testing.T) {
	tpl := monthlyTemplate(t)
	tpl.RecurPeriod = model.PeriodDays

	got, err := ExpandRecurrence(tpl, "", mustD(t, "2024-01-15"))
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}
	// Two years of daily occurrences would be ~730; the cap wins.
	if len(got) != 201 {
		t.Fatalf("expanded %d occurrences, want 201 (anchor + 200)", len(got))
	}
	if last := got[len(got)-1].Date; last != mustD(t, "2024-01-15").AddDays(200) {
		t.Fatalf("last occurrence %s, want anchor + 200 days", last)
	}
}

func TestExpandNonRecurringPassthrough(t *testing.T) {
	tpl := monthlyTemplate(t)
	tpl.IsRecurring = false

	got, err := ExpandRecurrence(tpl, "", mustD(t, "2024-01-15"))
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}
	if len(got) != 1 || got[0] != tpl {
		t.Fatalf("non-recurring input should come back unchanged, got %+v", got)
	}
}

func TestExpandRejectsBadFrequency(t *testing.T) {
	for _, freq := range []int{0, -3} {
		tpl := monthlyTemplate(t)
		tpl.RecurFreq = freq
		if _, err := ExpandRecurrence(tpl, "", mustD(t, "2024-01-15")); !errors.Is(err, ErrInvalidFrequency) {
			t.Fatalf("freq %d: err = %v, want ErrInvalidFrequency", freq, err)
		}
	}
}

func TestExpandRejectsBadPeriod(t *testing.T) {
	tpl := monthlyTemplate(t)
	tpl.RecurPeriod = "fortnights"
	if _, err := ExpandRecurrence(tpl, "", mustD(t, "2024-01-15")); err == nil {
		t.Fatal("unknown period accepted, want error")
	}
}

func TestExpandIdempotentWithExistingID(t *testing.T) {
	today := mustD(t, "2024-01-15")
	first, err := ExpandRecurrence(monthlyTemplate(t), "rid-1", today)
	if err != nil {
		t.Fatalf("first expansion: %v", err)
	}
	second, err := ExpandRecurrence(monthlyTemplate(t), "rid-1", today)
	if err != nil {
		t.Fatalf("second expansion: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("occurrence %d differs between runs", i)
		}
	}
	if first[0].RecurrenceID != "rid-1" {
		t.Fatalf("existing recurrence id not kept, got %q", first[0].RecurrenceID)
	}
}
