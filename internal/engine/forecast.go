package engine

import (
	"math"

	"runway/internal/dateutil"
	"runway/internal/model"
)

// ForecastBurnRate computes the linear daily burn for a month. Variable
// (non-fixed) categories in expense, goal, and income groups contribute their
// unspent remainder, spread evenly over the month's remaining days; expected
// income offsets expected spend, so the rate may be negative (balance
// trending up). Past months return a zero, non-projecting rate.
func ForecastBurnRate(month dateutil.Month, today dateutil.Date, groups []model.BudgetGroup, overrides OverrideIndex, ledger []model.Transaction) model.BurnRate {
	current := today.MonthOf()
	if month.Before(current) {
		return model.BurnRate{}
	}

	startDay := 1
	if month == current {
		startDay = today.Day
	}
	divisor := month.Days() - startDay + 1

	var total float64
	for _, row := range ForecastBreakdown(month, groups, overrides, ledger) {
		if row.GroupType == model.GroupIncome {
			total -= row.Remaining
		} else {
			total += row.Remaining
		}
	}

	return model.BurnRate{
		RatePerDay:  total / float64(divisor),
		StartDay:    startDay,
		IsProjected: true,
	}
}

// CategoryForecast is one variable category's planned/actual/remaining split
// for a month.
type CategoryForecast struct {
	GroupName    string
	GroupType    model.GroupType
	CategoryID   string
	CategoryName string
	Planned      float64
	Actual       float64
	Remaining    float64
}

// ForecastBreakdown lists every variable category with its effective planned
// amount, actual activity within the month, and the unspent remainder that
// feeds the burn rate. Fixed categories are excluded entirely.
func ForecastBreakdown(month dateutil.Month, groups []model.BudgetGroup, overrides OverrideIndex, ledger []model.Transaction) []CategoryForecast {
	var rows []CategoryForecast
	for _, g := range groups {
		if !model.ValidGroupType(g.Type) {
			continue
		}
		for _, cat := range g.Categories {
			if cat.IsFixed {
				continue
			}
			planned := ResolvePlannedAmount(cat, month, overrides)
			actual := actualForMonth(ledger, cat.ID, month, g.Type)
			rows = append(rows, CategoryForecast{
				GroupName:    g.Name,
				GroupType:    g.Type,
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				Planned:      planned,
				Actual:       actual,
				Remaining:    math.Max(0, planned-actual),
			})
		}
	}
	return rows
}

// actualForMonth sums the absolute amounts of non-skipped entries for one
// category within a month. Expense and goal categories count outflows only;
// income categories count inflows only, so a refund never inflates spend.
func actualForMonth(ledger []model.Transaction, categoryID string, month dateutil.Month, gt model.GroupType) float64 {
	var sum float64
	for _, t := range ledger {
		if !t.CountsForBalance() || t.Category != categoryID || !month.Contains(t.Date) {
			continue
		}
		if gt == model.GroupIncome {
			if t.Amount > 0 {
				sum += t.Amount
			}
		} else if t.Amount < 0 {
			sum += -t.Amount
		}
	}
	return sum
}

// BurnRatesForRange forecasts every month touched by the range, keyed by
// month. Past months come back non-projecting and are included so callers
// can hand the whole table to the timeline builder unfiltered.
func BurnRatesForRange(r dateutil.Range, today dateutil.Date, groups []model.BudgetGroup, overrides OverrideIndex, ledger []model.Transaction) map[dateutil.Month]model.BurnRate {
	if r.Len() == 0 {
		return nil
	}
	rates := make(map[dateutil.Month]model.BurnRate)
	last := r.End.MonthOf()
	for m := r.Start.MonthOf(); !m.After(last); m = m.AddMonths(1) {
		rates[m] = ForecastBurnRate(m, today, groups, overrides, ledger)
	}
	return rates
}
