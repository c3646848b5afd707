// Package model defines domain types for the runway ledger and budget.
package model

import "runway/internal/dateutil"

// Status is the lifecycle state of a ledger entry.
type Status string

const (
	// StatusCleared marks confirmed, settled activity.
	StatusCleared Status = "cleared"
	// StatusPending marks activity awaiting settlement.
	StatusPending Status = "pending"
	// StatusExpected marks future-dated or unconfirmed amounts; included in
	// projections but flagged separately from confirmed activity.
	StatusExpected Status = "expected"
	// StatusSkipped entries stay stored but are excluded from every balance
	// and aggregate computation.
	StatusSkipped Status = "skipped"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusCleared, StatusPending, StatusExpected, StatusSkipped:
		return true
	}
	return false
}

// RecurPeriod is the unit of a recurrence rule.
type RecurPeriod string

const (
	PeriodDays   RecurPeriod = "days"
	PeriodWeeks  RecurPeriod = "weeks"
	PeriodMonths RecurPeriod = "months"
	PeriodYears  RecurPeriod = "years"
)

// ValidPeriod reports whether p is a known recurrence period.
func ValidPeriod(p RecurPeriod) bool {
	switch p {
	case PeriodDays, PeriodWeeks, PeriodMonths, PeriodYears:
		return true
	}
	return false
}

// Transaction is one ledger entry or recurrence template. Amounts are signed:
// positive is inflow, negative is outflow.
type Transaction struct {
	ID          string
	Description string
	Amount      float64
	Date        dateutil.Date
	Status      Status

	Category    string
	BudgetGroup string

	IsRecurring   bool
	RecurrenceID  string
	RecurFreq     int
	RecurPeriod   RecurPeriod
	RecurEndDate  dateutil.Date // zero value means no explicit end

	// IsGhost marks a what-if simulation entry that must never be persisted
	// or mixed into authoritative aggregates unless explicitly requested.
	IsGhost bool
}

// CountsForBalance reports whether the transaction participates in balance
// and aggregate computations.
func (t Transaction) CountsForBalance() bool {
	return t.Status != StatusSkipped
}
