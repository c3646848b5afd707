package dateutil

import (
	"testing"
	"time"
)

func TestRangeMonthSpan(t *testing.T) {
	r := Range{
		Start: Date{Year: 2024, Month: time.March, Day: 15},
		End:   Date{Year: 2024, Month: time.May, Day: 10},
	}
	want := Range{
		Start: Date{Year: 2024, Month: time.March, Day: 1},
		End:   Date{Year: 2024, Month: time.May, Day: 31},
	}
	if got := r.MonthSpan(); got != want {
		t.Fatalf("MonthSpan = %v..%v, want %v..%v", got.Start, got.End, want.Start, want.End)
	}
}

func TestRangeMonthSpanAligned(t *testing.T) {
	// A range already on month boundaries is unchanged, leap day included.
	whole := Range{
		Start: Date{Year: 2024, Month: time.February, Day: 1},
		End:   Date{Year: 2024, Month: time.February, Day: 29},
	}
	if got := whole.MonthSpan(); got != whole {
		t.Fatalf("MonthSpan = %v..%v, want the input unchanged", got.Start, got.End)
	}
}
