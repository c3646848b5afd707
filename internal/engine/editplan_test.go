package engine

import (
	"testing"

	"runway/internal/model"
)

func TestPlanEditScopeThis(t *testing.T) {
	old := monthlyTemplate(t)
	old.RecurrenceID = "rid-1"

	updated := old
	updated.ID = ""
	updated.RecurrenceID = ""
	updated.Amount = -60

	plan, err := PlanEditScope(old, updated, ScopeThis, mustD(t, "2024-02-01"))
	if err != nil {
		t.Fatalf("PlanEditScope: %v", err)
	}
	if len(plan.Updates) != 1 || len(plan.Inserts) != 0 || plan.DeleteRecurrenceID != "" {
		t.Fatalf("plan = %+v, want a single update and nothing else", plan)
	}
	got := plan.Updates[0]
	if got.ID != "t1" || got.RecurrenceID != "rid-1" {
		t.Fatalf("update lost identity: id=%q rid=%q", got.ID, got.RecurrenceID)
	}
	if got.Amount != -60 {
		t.Fatalf("update amount = %v, want -60", got.Amount)
	}
}

func TestPlanEditScopeFuture(t *testing.T) {
	old := monthlyTemplate(t)
	old.RecurrenceID = "rid-1"
	old.Date = mustD(t, "2024-03-15")

	updated := old
	updated.Amount = -75

	plan, err := PlanEditScope(old, updated, ScopeFuture, mustD(t, "2024-03-01"))
	if err != nil {
		t.Fatalf("PlanEditScope: %v", err)
	}
	if plan.DeleteRecurrenceID != "rid-1" || plan.DeleteFrom != mustD(t, "2024-03-15") {
		t.Fatalf("plan deletes %q from %s, want rid-1 from 2024-03-15", plan.DeleteRecurrenceID, plan.DeleteFrom)
	}
	if len(plan.Inserts) < 2 {
		t.Fatalf("plan inserts %d occurrences, want a re-expanded series", len(plan.Inserts))
	}
	if rid := plan.Inserts[0].RecurrenceID; rid == "" || rid == "rid-1" {
		t.Fatalf("re-expanded series kept recurrence id %q, want a fresh group", rid)
	}
	for _, occ := range plan.Inserts {
		if occ.Amount != -75 {
			t.Fatalf("occurrence on %s kept old amount %v", occ.Date, occ.Amount)
		}
	}
	for _, occ := range plan.Inserts[1:] {
		if occ.Status != model.StatusExpected {
			t.Fatalf("re-expanded occurrence on %s has status %q, want expected", occ.Date, occ.Status)
		}
	}
}

func TestPlanEditScopeFutureRequiresRecurrence(t *testing.T) {
	old := monthlyTemplate(t)
	old.RecurrenceID = ""
	if _, err := PlanEditScope(old, old, ScopeFuture, mustD(t, "2024-03-01")); err == nil {
		t.Fatal("future scope on a loose transaction accepted, want error")
	}
}

func TestPlanEditScopeUnknown(t *testing.T) {
	old := monthlyTemplate(t)
	if _, err := PlanEditScope(old, old, EditScope("everything"), mustD(t, "2024-03-01")); err == nil {
		t.Fatal("unknown scope accepted, want error")
	}
}

func TestPlanDeleteScope(t *testing.T) {
	tx := monthlyTemplate(t)
	tx.RecurrenceID = "rid-9"

	this, err := PlanDeleteScope(tx, ScopeThis)
	if err != nil {
		t.Fatalf("PlanDeleteScope(this): %v", err)
	}
	if len(this.DeleteIDs) != 1 || this.DeleteIDs[0] != "t1" || this.DeleteRecurrenceID != "" {
		t.Fatalf("this-scope plan = %+v, want single id delete", this)
	}

	future, err := PlanDeleteScope(tx, ScopeFuture)
	if err != nil {
		t.Fatalf("PlanDeleteScope(future): %v", err)
	}
	if future.DeleteRecurrenceID != "rid-9" || future.DeleteFrom != tx.Date {
		t.Fatalf("future-scope plan = %+v, want group delete from anchor date", future)
	}

	tx.RecurrenceID = ""
	if _, err := PlanDeleteScope(tx, ScopeFuture); err == nil {
		t.Fatal("future delete on a loose transaction accepted, want error")
	}
}
