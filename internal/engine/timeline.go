package engine

import (
	"runway/internal/dateutil"
	"runway/internal/model"
)

// BuildBalanceTimeline folds the ledger into a day-indexed balance series
// over the range. Each day's balance is the previous day's plus the sum of
// that day's non-skipped entries, seeded from opening (the balance
// immediately before range start).
//
// When burnRates holds a projecting rate for a day's month and the day has
// reached that month's start day, the cumulative burn accumulator grows by
// one rate unit per day and the point gains a projected balance of
// balance - accumulated burn. The accumulator is threaded through the fold
// and carried across month boundaries without resetting, so a deficit begun
// in one month keeps compounding into the next.
//
// A range shorter than two days yields no series. The input ledger is never
// mutated and identical inputs produce identical output.
func BuildBalanceTimeline(opening float64, ledger []model.Transaction, r dateutil.Range, burnRates map[dateutil.Month]model.BurnRate, today dateutil.Date) []model.TimelinePoint {
	if r.Len() < 2 {
		return nil
	}

	deltas := make(map[dateutil.Date]float64)
	for _, t := range ledger {
		if !t.CountsForBalance() {
			continue
		}
		deltas[t.Date] += t.Amount
	}

	points := make([]model.TimelinePoint, 0, r.Len())
	balance := opening
	var burn float64
	burning := false

	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		balance += deltas[d]

		if br, ok := burnRates[d.MonthOf()]; ok && br.IsProjected && d.Day >= br.StartDay {
			burn += br.RatePerDay
			burning = true
		}

		pt := model.TimelinePoint{
			Date:     d,
			Balance:  balance,
			IsToday:  d == today,
			IsFuture: d.After(today),
		}
		if burning {
			projected := balance - burn
			pt.Projected = &projected
		}
		points = append(points, pt)
	}

	return points
}

// WithoutGhosts filters simulation-only entries out of a ledger, leaving the
// input untouched.
func WithoutGhosts(ledger []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(ledger))
	for _, t := range ledger {
		if t.IsGhost {
			continue
		}
		out = append(out, t)
	}
	return out
}
