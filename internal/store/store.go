// Package store provides SQLite-backed persistence for the ledger, the
// budget configuration, and the monthly opening-balance snapshot cache.
//
// Dates are stored as fixed-width YYYY-MM-DD strings and months as YYYY-MM,
// so SQL string comparison matches calendar order. Every ledger mutation
// deletes the snapshots for its month and all later months inside the same
// SQL transaction, keeping the cache invalidation atomic with the write.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"runway/internal/dateutil"
	"runway/internal/engine"
	"runway/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrGhostWrite is returned when a caller tries to persist a simulation-only
// transaction.
var ErrGhostWrite = errors.New("ghost transactions are never persisted")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

const txColumns = `id, description, amount, tx_date, status, category_id, group_id,
	is_recurring, recurrence_id, recur_freq, recur_period, recur_end_date`

func scanTransaction(scan func(...any) error) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, status, period, endStr string
	var category, group, recurrenceID sql.NullString
	var isRecurring int

	err := scan(&t.ID, &t.Description, &t.Amount, &dateStr, &status, &category, &group,
		&isRecurring, &recurrenceID, &t.RecurFreq, &period, &endStr)
	if err != nil {
		return t, err
	}

	t.Date, err = dateutil.ParseDate(dateStr)
	if err != nil {
		return t, err
	}
	t.Status = model.Status(status)
	t.Category = category.String
	t.BudgetGroup = group.String
	t.IsRecurring = isRecurring != 0
	t.RecurrenceID = recurrenceID.String
	t.RecurPeriod = model.RecurPeriod(period)
	if endStr != "" {
		t.RecurEndDate, err = dateutil.ParseDate(endStr)
		if err != nil {
			return t, err
		}
	}
	return t, nil
}

// ListTransactions returns ledger entries dated within the inclusive range,
// ordered by date then id.
func (s *Store) ListTransactions(r dateutil.Range) ([]model.Transaction, error) {
	rows, err := s.db.Query(
		"SELECT "+txColumns+" FROM transactions WHERE tx_date >= ? AND tx_date <= ? ORDER BY tx_date, id",
		r.Start.String(), r.End.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTransaction fetches one entry by id.
func (s *Store) GetTransaction(id string) (model.Transaction, error) {
	row := s.db.QueryRow("SELECT "+txColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("transaction %s not found", id)
	}
	return t, err
}

// SumBefore sums the amounts of all non-skipped entries dated strictly
// before d. This is the full recompute behind an opening balance when no
// snapshot is available.
func (s *Store) SumBefore(d dateutil.Date) (float64, error) {
	var sum float64
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE tx_date < ? AND status != ?",
		d.String(), string(model.StatusSkipped),
	).Scan(&sum)
	return sum, err
}

// EarliestTransactionDate returns the date of the oldest ledger entry, or
// false when the ledger is empty.
func (s *Store) EarliestTransactionDate() (dateutil.Date, bool, error) {
	var dateStr sql.NullString
	err := s.db.QueryRow("SELECT MIN(tx_date) FROM transactions").Scan(&dateStr)
	if err != nil || !dateStr.Valid {
		return dateutil.Date{}, false, err
	}
	d, err := dateutil.ParseDate(dateStr.String)
	if err != nil {
		return dateutil.Date{}, false, err
	}
	return d, true, nil
}

func insertTransaction(tx *sql.Tx, t model.Transaction) error {
	end := ""
	if !t.RecurEndDate.IsZero() {
		end = t.RecurEndDate.String()
	}
	_, err := tx.Exec(`INSERT OR REPLACE INTO transactions
		(`+txColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Description, t.Amount, t.Date.String(), string(t.Status),
		nullable(t.Category), nullable(t.BudgetGroup),
		boolInt(t.IsRecurring), nullable(t.RecurrenceID),
		t.RecurFreq, string(t.RecurPeriod), end,
	)
	return err
}

// InsertTransactions writes a batch of entries in one transaction, so a
// recurrence series is either fully persisted or not at all. Entries with no
// id are assigned one. Snapshots from the earliest written month onward are
// invalidated before commit.
func (s *Store) InsertTransactions(ts []model.Transaction) ([]model.Transaction, error) {
	if len(ts) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	earliest := ts[0].Date
	written := make([]model.Transaction, 0, len(ts))
	for _, t := range ts {
		if t.IsGhost {
			return nil, ErrGhostWrite
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Date.Before(earliest) {
			earliest = t.Date
		}
		if err := insertTransaction(tx, t); err != nil {
			return nil, err
		}
		written = append(written, t)
	}

	if err := invalidateFrom(tx, earliest.MonthOf()); err != nil {
		return nil, err
	}
	return written, tx.Commit()
}

// UpsertTransaction writes or replaces a single entry, invalidating
// snapshots from the earlier of its previous and new dates.
func (s *Store) UpsertTransaction(t model.Transaction) (string, error) {
	if t.IsGhost {
		return "", ErrGhostWrite
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	from := t.Date
	var oldDate sql.NullString
	if err := tx.QueryRow("SELECT tx_date FROM transactions WHERE id = ?", t.ID).Scan(&oldDate); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if oldDate.Valid {
		// A date edit affects balances from the old position too.
		d, err := dateutil.ParseDate(oldDate.String)
		if err != nil {
			return "", err
		}
		if d.Before(from) {
			from = d
		}
	}

	if err := insertTransaction(tx, t); err != nil {
		return "", err
	}
	if err := invalidateFrom(tx, from.MonthOf()); err != nil {
		return "", err
	}
	return t.ID, tx.Commit()
}

// DeleteTransaction removes one entry and invalidates snapshots from its
// month.
func (s *Store) DeleteTransaction(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var dateStr string
	err = tx.QueryRow("SELECT tx_date FROM transactions WHERE id = ?", id).Scan(&dateStr)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("transaction %s not found", id)
	}
	if err != nil {
		return err
	}
	d, err := dateutil.ParseDate(dateStr)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM transactions WHERE id = ?", id); err != nil {
		return err
	}
	if err := invalidateFrom(tx, d.MonthOf()); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteTransactionsByRecurrence removes every occurrence of a recurrence
// group dated on or after from.
func (s *Store) DeleteTransactionsByRecurrence(recurrenceID string, from dateutil.Date) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		"DELETE FROM transactions WHERE recurrence_id = ? AND tx_date >= ?",
		recurrenceID, from.String(),
	); err != nil {
		return err
	}
	if err := invalidateFrom(tx, from.MonthOf()); err != nil {
		return err
	}
	return tx.Commit()
}

// ApplyEditPlan executes an edit plan in a single transaction: deletes
// first, then inserts, then updates. A failure at any step rolls back the
// whole plan, so a recurrence series is never left half-replaced. Snapshots
// invalidate from the earliest month the plan touches.
func (s *Store) ApplyEditPlan(plan engine.EditPlan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var from dateutil.Month
	touched := false
	touch := func(d dateutil.Date) {
		if m := d.MonthOf(); !touched || m.Before(from) {
			from = m
			touched = true
		}
	}

	for _, id := range plan.DeleteIDs {
		var dateStr string
		err := tx.QueryRow("SELECT tx_date FROM transactions WHERE id = ?", id).Scan(&dateStr)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("transaction %s not found", id)
		}
		if err != nil {
			return err
		}
		d, err := dateutil.ParseDate(dateStr)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM transactions WHERE id = ?", id); err != nil {
			return err
		}
		touch(d)
	}

	if plan.DeleteRecurrenceID != "" {
		if _, err := tx.Exec(
			"DELETE FROM transactions WHERE recurrence_id = ? AND tx_date >= ?",
			plan.DeleteRecurrenceID, plan.DeleteFrom.String(),
		); err != nil {
			return err
		}
		touch(plan.DeleteFrom)
	}

	for _, t := range plan.Inserts {
		if t.IsGhost {
			return ErrGhostWrite
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if err := insertTransaction(tx, t); err != nil {
			return err
		}
		touch(t.Date)
	}

	for _, t := range plan.Updates {
		if t.IsGhost {
			return ErrGhostWrite
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		var oldDate sql.NullString
		if err := tx.QueryRow("SELECT tx_date FROM transactions WHERE id = ?", t.ID).Scan(&oldDate); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if oldDate.Valid {
			d, err := dateutil.ParseDate(oldDate.String)
			if err != nil {
				return err
			}
			touch(d)
		}
		if err := insertTransaction(tx, t); err != nil {
			return err
		}
		touch(t.Date)
	}

	if touched {
		if err := invalidateFrom(tx, from); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// invalidateFrom deletes every cached snapshot for month m and later. Runs
// inside the mutating transaction so no read can observe a stale snapshot.
func invalidateFrom(tx *sql.Tx, m dateutil.Month) error {
	_, err := tx.Exec("DELETE FROM month_snapshots WHERE month >= ?", m.String())
	return err
}

// GetSnapshot returns the cached opening balance for a month, if present.
func (s *Store) GetSnapshot(m dateutil.Month) (float64, bool, error) {
	var balance float64
	err := s.db.QueryRow("SELECT balance FROM month_snapshots WHERE month = ?", m.String()).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

// SaveSnapshot caches the opening balance for a month.
func (s *Store) SaveSnapshot(m dateutil.Month, balance float64) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO month_snapshots (month, balance, computed_at) VALUES (?, ?, ?)",
		m.String(), balance, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// InvalidateSnapshotsFrom deletes cached snapshots for month m and later
// outside of a ledger write. Ledger mutations invalidate on their own; this
// is for callers that change balance-relevant state some other way.
func (s *Store) InvalidateSnapshotsFrom(m dateutil.Month) error {
	_, err := s.db.Exec("DELETE FROM month_snapshots WHERE month >= ?", m.String())
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
