package engine

import (
	"math"
	"testing"

	"runway/internal/dateutil"
	"runway/internal/model"
)

func TestTimelineDailyFold(t *testing.T) {
	ledger := []model.Transaction{
		spend(t, "2024-03-01", -200, ""),
		spend(t, "2024-03-03", 50, ""),
	}
	r := dateutil.Range{Start: mustD(t, "2024-03-01"), End: mustD(t, "2024-03-03")}

	points := BuildBalanceTimeline(1000, ledger, r, nil, mustD(t, "2024-03-03"))
	want := []float64{800, 800, 850}
	if len(points) != len(want) {
		t.Fatalf("points = %d, want %d", len(points), len(want))
	}
	for i, w := range want {
		if points[i].Balance != w {
			t.Fatalf("balance[%d] = %v, want %v", i, points[i].Balance, w)
		}
	}
}

func TestTimelineSkippedExcluded(t *testing.T) {
	skipped := spend(t, "2024-03-02", -999, "")
	skipped.Status = model.StatusSkipped
	r := dateutil.Range{Start: mustD(t, "2024-03-01"), End: mustD(t, "2024-03-03")}

	points := BuildBalanceTimeline(100, []model.Transaction{skipped}, r, nil, mustD(t, "2024-03-03"))
	for _, p := range points {
		if p.Balance != 100 {
			t.Fatalf("skipped entry moved the balance to %v on %s", p.Balance, p.Date)
		}
	}
}

func TestTimelineIdempotentAndConservative(t *testing.T) {
	ledger := []model.Transaction{
		spend(t, "2024-03-02", -75.25, ""),
		spend(t, "2024-03-02", -24.75, ""),
		spend(t, "2024-03-10", 1200, ""),
		spend(t, "2024-03-20", -300, ""),
	}
	r := dateutil.Range{Start: mustD(t, "2024-03-01"), End: mustD(t, "2024-03-31")}
	today := mustD(t, "2024-03-15")

	first := BuildBalanceTimeline(500, ledger, r, nil, today)
	second := BuildBalanceTimeline(500, ledger, r, nil, today)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Balance != second[i].Balance || first[i].Date != second[i].Date {
			t.Fatalf("point %d differs between identical calls", i)
		}
	}

	// Summing daily deltas across the window equals final - opening.
	var deltas float64
	prev := 500.0
	for _, p := range first {
		deltas += p.Balance - prev
		prev = p.Balance
	}
	final := first[len(first)-1].Balance
	if math.Abs(deltas-(final-500)) > 1e-9 {
		t.Fatalf("delta sum %v != final-opening %v", deltas, final-500)
	}
}

func TestTimelineProjectionAccumulates(t *testing.T) {
	r := dateutil.Range{Start: mustD(t, "2024-04-01"), End: mustD(t, "2024-04-15")}
	today := mustD(t, "2024-04-10")
	rates := map[dateutil.Month]model.BurnRate{
		{Year: 2024, Month: 4}: {RatePerDay: 10, StartDay: 10, IsProjected: true},
	}

	points := BuildBalanceTimeline(1000, nil, r, rates, today)
	if points[8].Projected != nil {
		t.Fatal("projection began before the start day")
	}
	// Day 10 subtracts one rate unit, day 11 two, and so on.
	for i, wantBurn := range []float64{10, 20, 30, 40, 50, 60} {
		p := points[9+i]
		if p.Projected == nil {
			t.Fatalf("no projected balance on %s", p.Date)
		}
		if got := 1000 - *p.Projected; math.Abs(got-wantBurn) > 1e-9 {
			t.Fatalf("cumulative burn on %s = %v, want %v", p.Date, got, wantBurn)
		}
	}
}

func TestTimelineProjectionCarriesAcrossMonths(t *testing.T) {
	r := dateutil.Range{Start: mustD(t, "2024-04-28"), End: mustD(t, "2024-05-02")}
	today := mustD(t, "2024-04-28")
	rates := map[dateutil.Month]model.BurnRate{
		{Year: 2024, Month: 4}: {RatePerDay: 10, StartDay: 28, IsProjected: true},
		{Year: 2024, Month: 5}: {RatePerDay: 5, StartDay: 1, IsProjected: true},
	}

	points := BuildBalanceTimeline(1000, nil, r, rates, today)
	// April 28-30 burn 10/day (30 total), then May compounds on top at
	// 5/day instead of resetting.
	wantBurns := []float64{10, 20, 30, 35, 40}
	for i, want := range wantBurns {
		p := points[i]
		if p.Projected == nil {
			t.Fatalf("no projected balance on %s", p.Date)
		}
		if got := 1000 - *p.Projected; math.Abs(got-want) > 1e-9 {
			t.Fatalf("cumulative burn on %s = %v, want %v", p.Date, got, want)
		}
	}
}

func TestTimelineNegativeRateTrendsUp(t *testing.T) {
	r := dateutil.Range{Start: mustD(t, "2024-04-01"), End: mustD(t, "2024-04-03")}
	rates := map[dateutil.Month]model.BurnRate{
		{Year: 2024, Month: 4}: {RatePerDay: -20, StartDay: 1, IsProjected: true},
	}

	points := BuildBalanceTimeline(100, nil, r, rates, mustD(t, "2024-04-01"))
	if *points[2].Projected != 160 {
		t.Fatalf("projected = %v, want 160 (net income lifts the curve)", *points[2].Projected)
	}
}

func TestTimelineShortWindow(t *testing.T) {
	single := dateutil.Range{Start: mustD(t, "2024-03-01"), End: mustD(t, "2024-03-01")}
	if got := BuildBalanceTimeline(100, nil, single, nil, mustD(t, "2024-03-01")); got != nil {
		t.Fatalf("single-day window produced %d points, want none", len(got))
	}
}

func TestTimelineDayTags(t *testing.T) {
	r := dateutil.Range{Start: mustD(t, "2024-03-01"), End: mustD(t, "2024-03-03")}
	points := BuildBalanceTimeline(0, nil, r, nil, mustD(t, "2024-03-02"))

	if points[0].IsToday || points[0].IsFuture {
		t.Fatal("past day mis-tagged")
	}
	if !points[1].IsToday || points[1].IsFuture {
		t.Fatal("today mis-tagged")
	}
	if points[2].IsToday || !points[2].IsFuture {
		t.Fatal("future day mis-tagged")
	}
}

func TestWithoutGhosts(t *testing.T) {
	ghost := spend(t, "2024-03-02", -50, "")
	ghost.IsGhost = true
	real := spend(t, "2024-03-02", -10, "")

	got := WithoutGhosts([]model.Transaction{ghost, real, ghost})
	if len(got) != 1 || got[0].Amount != -10 {
		t.Fatalf("WithoutGhosts kept %d entries, want just the real one", len(got))
	}
}
