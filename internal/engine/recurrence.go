// Package engine implements the financial projection engine: recurrence
// expansion, planned-amount resolution, burn-rate forecasting, and the
// day-by-day balance timeline. Every entry point is a pure function of its
// inputs; the caller resolves "today" once and passes it in.
package engine

import (
	"errors"
	"fmt"

	"runway/internal/dateutil"
	"runway/internal/model"

	"github.com/google/uuid"
)

// maxOccurrences caps how many occurrences may follow the anchor, guarding
// against pathological rules.
const maxOccurrences = 200

// defaultHorizonYears bounds expansion when no explicit end date is given.
const defaultHorizonYears = 2

// ErrInvalidFrequency is returned for a non-positive recurrence frequency.
var ErrInvalidFrequency = errors.New("recurrence frequency must be a positive integer")

// ExpandRecurrence expands a recurring template into its dated occurrences,
// earliest first. The first occurrence is the anchor itself, keeping its
// status; every later occurrence inherits the anchor's fields with the date
// advanced and status set to expected. Expansion stops once the next date
// would pass recur_end_date, or today plus two years when no end is set.
// A non-recurring template is returned unchanged as a single-element slice.
//
// existingID is reused as the recurrence group id when editing; when empty a
// fresh id is generated.
func ExpandRecurrence(template model.Transaction, existingID string, today dateutil.Date) ([]model.Transaction, error) {
	if !template.IsRecurring {
		return []model.Transaction{template}, nil
	}

	if template.RecurFreq <= 0 {
		return nil, ErrInvalidFrequency
	}
	if !model.ValidPeriod(template.RecurPeriod) {
		return nil, fmt.Errorf("unknown recurrence period %q", template.RecurPeriod)
	}

	rid := existingID
	if rid == "" {
		rid = uuid.NewString()
	}

	end := template.RecurEndDate
	if end.IsZero() {
		end = today.AddYears(defaultHorizonYears)
	}

	anchor := template
	anchor.RecurrenceID = rid

	out := []model.Transaction{anchor}
	date := anchor.Date
	for len(out)-1 < maxOccurrences {
		date = advance(date, template.RecurFreq, template.RecurPeriod)
		if date.After(end) {
			break
		}
		occ := anchor
		occ.ID = "" // occurrences get their own ids at persist time
		occ.Date = date
		occ.Status = model.StatusExpected
		out = append(out, occ)
	}

	return out, nil
}

// advance moves a date forward by freq units of period. Month and year steps
// follow dateutil's documented day-overflow normalization.
func advance(d dateutil.Date, freq int, period model.RecurPeriod) dateutil.Date {
	switch period {
	case model.PeriodDays:
		return d.AddDays(freq)
	case model.PeriodWeeks:
		return d.AddDays(7 * freq)
	case model.PeriodMonths:
		return d.AddMonths(freq)
	default: // model.PeriodYears, validated by the caller
		return d.AddYears(freq)
	}
}
