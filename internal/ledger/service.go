// Package ledger binds the projection engine to the persistence layer: it
// resolves opening balances through the snapshot cache, executes recurrence
// and edit-scope plans, and applies budget changes with their override
// backfill semantics.
package ledger

import (
	"fmt"

	"runway/internal/dateutil"
	"runway/internal/engine"
	"runway/internal/model"
)

// Store is the persistence surface the service needs. *store.Store satisfies
// it; tests substitute fakes.
type Store interface {
	ListTransactions(r dateutil.Range) ([]model.Transaction, error)
	GetTransaction(id string) (model.Transaction, error)
	SumBefore(d dateutil.Date) (float64, error)
	EarliestTransactionDate() (dateutil.Date, bool, error)
	InsertTransactions(ts []model.Transaction) ([]model.Transaction, error)
	ApplyEditPlan(plan engine.EditPlan) error

	ListBudgetGroups() ([]model.BudgetGroup, error)
	ListOverrides(from, to dateutil.Month) ([]model.BudgetOverride, error)
	UpsertOverride(categoryID string, m dateutil.Month, amount float64) error
	DeleteOverridesFrom(categoryID string, m dateutil.Month) error
	SetPlannedAmount(categoryID string, amount float64) error

	GetSnapshot(m dateutil.Month) (float64, bool, error)
	SaveSnapshot(m dateutil.Month, balance float64) error
}

// Service orchestrates engine computations against a store.
type Service struct {
	store Store
	today dateutil.Date
}

// New returns a service pinned to the caller's resolved "today".
func New(store Store, today dateutil.Date) *Service {
	return &Service{store: store, today: today}
}

// Today returns the date the service was pinned to.
func (s *Service) Today() dateutil.Date {
	return s.today
}

// OpeningBalance returns the account balance immediately before month m,
// served from a cached snapshot when one exists, otherwise recomputed from
// the full ledger and cached for the next read.
func (s *Service) OpeningBalance(m dateutil.Month) (float64, error) {
	if balance, ok, err := s.store.GetSnapshot(m); err != nil {
		return 0, err
	} else if ok {
		return balance, nil
	}

	balance, err := s.store.SumBefore(m.First())
	if err != nil {
		return 0, err
	}
	if err := s.store.SaveSnapshot(m, balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// BalanceBefore returns the balance immediately before an arbitrary date,
// going through the snapshot cache when d is a month boundary.
func (s *Service) BalanceBefore(d dateutil.Date) (float64, error) {
	if d.Day == 1 {
		return s.OpeningBalance(d.MonthOf())
	}
	return s.store.SumBefore(d)
}

// AddTransaction validates and persists a transaction, expanding a recurring
// template into its full series first. The expanded series is written as one
// batch. Returns the persisted occurrences.
func (s *Service) AddTransaction(t model.Transaction) ([]model.Transaction, error) {
	if err := validate(t); err != nil {
		return nil, err
	}
	occurrences, err := engine.ExpandRecurrence(t, t.RecurrenceID, s.today)
	if err != nil {
		return nil, err
	}
	return s.store.InsertTransactions(occurrences)
}

// EditTransaction applies an edit with the given scope: "this" updates the
// one occurrence in place, "future" replaces the occurrence and everything
// after it in its recurrence group with a re-expanded series.
func (s *Service) EditTransaction(id string, updated model.Transaction, scope engine.EditScope) error {
	if err := validate(updated); err != nil {
		return err
	}
	old, err := s.store.GetTransaction(id)
	if err != nil {
		return err
	}
	plan, err := engine.PlanEditScope(old, updated, scope, s.today)
	if err != nil {
		return err
	}
	return s.store.ApplyEditPlan(plan)
}

// RemoveTransaction deletes an occurrence, or the occurrence and the rest of
// its recurrence group for scope "future".
func (s *Service) RemoveTransaction(id string, scope engine.EditScope) error {
	t, err := s.store.GetTransaction(id)
	if err != nil {
		return err
	}
	plan, err := engine.PlanDeleteScope(t, scope)
	if err != nil {
		return err
	}
	return s.store.ApplyEditPlan(plan)
}

// SetMonthAmount writes a single-month override, leaving the base amount and
// every other month untouched.
func (s *Service) SetMonthAmount(cat model.BudgetCategory, m dateutil.Month, amount float64) error {
	return s.store.UpsertOverride(cat.ID, m, amount)
}

// SetBaseAmountFrom changes a category's base planned amount from month m
// forward. Months before m that resolved to the old base get explicit
// overrides pinning it, overrides from m onward are cleared, and the new
// base is written last so a failure partway leaves history intact.
func (s *Service) SetBaseAmountFrom(cat model.BudgetCategory, m dateutil.Month, amount float64) error {
	earliest, ok, err := s.store.EarliestTransactionDate()
	if err != nil {
		return err
	}
	if ok {
		backfillFrom := earliest.MonthOf()
		if backfillFrom.Before(m) {
			existing, err := s.store.ListOverrides(backfillFrom, m.AddMonths(-1))
			if err != nil {
				return err
			}
			backfill := engine.PlanBaseAmountChange(cat, m, backfillFrom, engine.IndexOverrides(existing))
			for _, o := range backfill {
				if err := s.store.UpsertOverride(o.CategoryID, o.Month, o.Amount); err != nil {
					return err
				}
			}
		}
	}
	if err := s.store.DeleteOverridesFrom(cat.ID, m); err != nil {
		return err
	}
	return s.store.SetPlannedAmount(cat.ID, amount)
}

func validate(t model.Transaction) error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	if !model.ValidStatus(t.Status) {
		return fmt.Errorf("unknown status %q", t.Status)
	}
	if t.IsRecurring {
		if t.RecurFreq <= 0 {
			return engine.ErrInvalidFrequency
		}
		if !model.ValidPeriod(t.RecurPeriod) {
			return fmt.Errorf("unknown recurrence period %q", t.RecurPeriod)
		}
	}
	return nil
}
