package engine

import (
	"runway/internal/dateutil"
	"runway/internal/model"
)

// OverrideKey identifies the single override allowed per (category, month).
type OverrideKey struct {
	CategoryID string
	Month      dateutil.Month
}

// OverrideIndex is a sparse map of monthly overrides for O(1) resolution.
type OverrideIndex map[OverrideKey]float64

// IndexOverrides builds an OverrideIndex from a flat override list. A later
// duplicate for the same (category, month) wins, though the store schema
// prevents duplicates from existing.
func IndexOverrides(list []model.BudgetOverride) OverrideIndex {
	idx := make(OverrideIndex, len(list))
	for _, o := range list {
		idx[OverrideKey{CategoryID: o.CategoryID, Month: o.Month}] = o.Amount
	}
	return idx
}

// ResolvePlannedAmount returns the effective planned amount for a category in
// a month: the month's override when one exists, else the base planned
// amount. Constant-time against the override index.
func ResolvePlannedAmount(cat model.BudgetCategory, month dateutil.Month, overrides OverrideIndex) float64 {
	if amt, ok := overrides[OverrideKey{CategoryID: cat.ID, Month: month}]; ok {
		return amt
	}
	return cat.PlannedAmount
}

// PlanBaseAmountChange plans the override backfill for a "from this month
// forward" base-amount change. Months in [backfillFrom, from) that have no
// explicit override get one pinning the old base amount, so history keeps
// resolving to what the user budgeted at the time. The caller then clears
// overrides from `from` onward and writes the new base.
func PlanBaseAmountChange(cat model.BudgetCategory, from, backfillFrom dateutil.Month, existing OverrideIndex) []model.BudgetOverride {
	var backfill []model.BudgetOverride
	for m := backfillFrom; m.Before(from); m = m.AddMonths(1) {
		if _, ok := existing[OverrideKey{CategoryID: cat.ID, Month: m}]; ok {
			continue
		}
		backfill = append(backfill, model.BudgetOverride{
			CategoryID: cat.ID,
			Month:      m,
			Amount:     cat.PlannedAmount,
		})
	}
	return backfill
}
