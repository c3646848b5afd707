package engine

import (
	"fmt"

	"runway/internal/dateutil"
	"runway/internal/model"
)

// EditScope selects how far an edit or delete of a recurring occurrence
// reaches.
type EditScope string

const (
	// ScopeThis touches only the addressed occurrence.
	ScopeThis EditScope = "this"
	// ScopeFuture touches the addressed occurrence and everything after it
	// in its recurrence group.
	ScopeFuture EditScope = "future"
)

// EditPlan is the store work an edit resolves to. The store executes the
// whole plan in one transaction, deletes first, then inserts, then updates,
// so a recurrence series is never partially visible.
type EditPlan struct {
	DeleteIDs          []string
	DeleteRecurrenceID string
	DeleteFrom         dateutil.Date
	Inserts            []model.Transaction
	Updates            []model.Transaction
}

// PlanEditScope decides what an edit means in store operations, without
// touching the store. Scope "this" is a single in-place update that keeps
// the occurrence in its group. Scope "future" removes the group from the
// edited occurrence onward and re-expands the updated template as a fresh
// recurrence group, since its rule or amounts may have diverged.
func PlanEditScope(old, updated model.Transaction, scope EditScope, today dateutil.Date) (EditPlan, error) {
	switch scope {
	case ScopeThis:
		updated.ID = old.ID
		updated.RecurrenceID = old.RecurrenceID
		return EditPlan{Updates: []model.Transaction{updated}}, nil

	case ScopeFuture:
		if old.RecurrenceID == "" {
			return EditPlan{}, fmt.Errorf("transaction %s is not part of a recurrence group", old.ID)
		}
		updated.ID = ""
		updated.RecurrenceID = ""
		occurrences, err := ExpandRecurrence(updated, "", today)
		if err != nil {
			return EditPlan{}, err
		}
		return EditPlan{
			DeleteRecurrenceID: old.RecurrenceID,
			DeleteFrom:         old.Date,
			Inserts:            occurrences,
		}, nil

	default:
		return EditPlan{}, fmt.Errorf("unknown edit scope %q", scope)
	}
}

// PlanDeleteScope decides what a delete means in store operations.
func PlanDeleteScope(t model.Transaction, scope EditScope) (EditPlan, error) {
	switch scope {
	case ScopeThis:
		return EditPlan{DeleteIDs: []string{t.ID}}, nil
	case ScopeFuture:
		if t.RecurrenceID == "" {
			return EditPlan{}, fmt.Errorf("transaction %s is not part of a recurrence group", t.ID)
		}
		return EditPlan{DeleteRecurrenceID: t.RecurrenceID, DeleteFrom: t.Date}, nil
	default:
		return EditPlan{}, fmt.Errorf("unknown edit scope %q", scope)
	}
}
