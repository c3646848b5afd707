package engine

import (
	"testing"

	"runway/internal/dateutil"
	"runway/internal/model"
)

func mustM(t *testing.T, s string) dateutil.Month {
	t.Helper()
	m, err := dateutil.ParseMonth(s)
	if err != nil {
		t.Fatalf("parse month %q: %v", s, err)
	}
	return m
}

func TestResolvePlannedAmount(t *testing.T) {
	cat := model.BudgetCategory{ID: "groceries", PlannedAmount: 300}
	overrides := IndexOverrides([]model.BudgetOverride{
		{CategoryID: "groceries", Month: mustM(t, "2024-06"), Amount: 450},
	})

	if got := ResolvePlannedAmount(cat, mustM(t, "2024-05"), overrides); got != 300 {
		t.Fatalf("month without override resolved to %v, want base 300", got)
	}
	if got := ResolvePlannedAmount(cat, mustM(t, "2024-06"), overrides); got != 450 {
		t.Fatalf("override month resolved to %v, want 450", got)
	}
	if got := ResolvePlannedAmount(cat, mustM(t, "2024-07"), overrides); got != 300 {
		t.Fatalf("later month resolved to %v, want base 300", got)
	}
}

func TestResolvePlannedAmountNilIndex(t *testing.T) {
	cat := model.BudgetCategory{ID: "fun", PlannedAmount: 120}
	if got := ResolvePlannedAmount(cat, mustM(t, "2024-06"), nil); got != 120 {
		t.Fatalf("nil override index resolved to %v, want base 120", got)
	}
}

func TestPlanBaseAmountChange(t *testing.T) {
	cat := model.BudgetCategory{ID: "groceries", PlannedAmount: 100}
	existing := IndexOverrides([]model.BudgetOverride{
		{CategoryID: "groceries", Month: mustM(t, "2024-04"), Amount: 175},
	})

	backfill := PlanBaseAmountChange(cat, mustM(t, "2024-06"), mustM(t, "2024-03"), existing)

	// 2024-04 already has an override; 03 and 05 get pinned at the old base.
	if len(backfill) != 2 {
		t.Fatalf("backfill has %d overrides, want 2", len(backfill))
	}
	if backfill[0].Month != mustM(t, "2024-03") || backfill[1].Month != mustM(t, "2024-05") {
		t.Fatalf("backfill months = %s, %s — want 2024-03 and 2024-05", backfill[0].Month, backfill[1].Month)
	}
	for _, o := range backfill {
		if o.Amount != 100 || o.CategoryID != "groceries" {
			t.Fatalf("backfill override %+v should pin the old base amount", o)
		}
	}
}

func TestPlanBaseAmountChangeEmptyWindow(t *testing.T) {
	cat := model.BudgetCategory{ID: "groceries", PlannedAmount: 100}
	if got := PlanBaseAmountChange(cat, mustM(t, "2024-06"), mustM(t, "2024-06"), nil); len(got) != 0 {
		t.Fatalf("empty window produced %d overrides, want 0", len(got))
	}
	if got := PlanBaseAmountChange(cat, mustM(t, "2024-06"), mustM(t, "2024-08"), nil); len(got) != 0 {
		t.Fatalf("inverted window produced %d overrides, want 0", len(got))
	}
}
