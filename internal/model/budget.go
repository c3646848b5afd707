package model

import "runway/internal/dateutil"

// GroupType classifies a budget group.
type GroupType string

const (
	GroupIncome  GroupType = "income"
	GroupExpense GroupType = "expense"
	GroupGoal    GroupType = "goal"
)

// ValidGroupType reports whether g is a known group type.
func ValidGroupType(g GroupType) bool {
	switch g {
	case GroupIncome, GroupExpense, GroupGoal:
		return true
	}
	return false
}

// BudgetCategory is one budget line within a group. Fixed categories are
// excluded from burn-rate forecasting; only variable categories are assumed
// to pace evenly through the month.
type BudgetCategory struct {
	ID            string
	Name          string
	PlannedAmount float64
	IsFixed       bool
	SortKey       int
}

// BudgetGroup holds an ordered set of categories of one type.
type BudgetGroup struct {
	ID         string
	Name       string
	Type       GroupType
	SortKey    int
	Categories []BudgetCategory
}

// BudgetOverride replaces a category's base planned amount for one month.
// At most one override exists per (category, month).
type BudgetOverride struct {
	CategoryID string
	Month      dateutil.Month
	Amount     float64
}

// BurnRate is the per-day forecast decay for one month.
type BurnRate struct {
	RatePerDay  float64
	StartDay    int
	IsProjected bool
}

// TimelinePoint is one day of the balance series. Projected is nil until the
// cumulative burn for the point's month has started.
type TimelinePoint struct {
	Date      dateutil.Date
	Balance   float64
	Projected *float64
	IsToday   bool
	IsFuture  bool
}
