package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"runway/internal/dateutil"
	"runway/internal/model"

	"github.com/google/uuid"
)

// ListBudgetGroups returns all groups with nested categories, both ordered
// by sort key then name.
func (s *Store) ListBudgetGroups() ([]model.BudgetGroup, error) {
	rows, err := s.db.Query("SELECT id, name, group_type, sort_key FROM budget_groups ORDER BY sort_key, name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var groups []model.BudgetGroup
	idx := make(map[string]int)
	for rows.Next() {
		var g model.BudgetGroup
		var gt string
		if err := rows.Scan(&g.ID, &g.Name, &gt, &g.SortKey); err != nil {
			return nil, err
		}
		g.Type = model.GroupType(gt)
		idx[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	catRows, err := s.db.Query(
		"SELECT id, group_id, name, planned_amount, is_fixed, sort_key FROM budget_categories ORDER BY sort_key, name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = catRows.Close() }()

	for catRows.Next() {
		var c model.BudgetCategory
		var groupID string
		var fixed int
		if err := catRows.Scan(&c.ID, &groupID, &c.Name, &c.PlannedAmount, &fixed, &c.SortKey); err != nil {
			return nil, err
		}
		c.IsFixed = fixed != 0
		if i, ok := idx[groupID]; ok {
			groups[i].Categories = append(groups[i].Categories, c)
		}
	}
	return groups, catRows.Err()
}

// UpsertBudgetGroup writes a group and its categories, assigning ids where
// missing, and returns the stored group.
func (s *Store) UpsertBudgetGroup(g model.BudgetGroup) (model.BudgetGroup, error) {
	if !model.ValidGroupType(g.Type) {
		return g, fmt.Errorf("unknown group type %q", g.Type)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return g, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO budget_groups (id, name, group_type, sort_key) VALUES (?, ?, ?, ?)",
		g.ID, g.Name, string(g.Type), g.SortKey,
	); err != nil {
		return g, err
	}

	for i := range g.Categories {
		c := &g.Categories[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO budget_categories
			 (id, group_id, name, planned_amount, is_fixed, sort_key)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, g.ID, c.Name, c.PlannedAmount, boolInt(c.IsFixed), c.SortKey,
		); err != nil {
			return g, err
		}
	}

	return g, tx.Commit()
}

// FindCategory resolves a category by id or case-insensitive name, returning
// its group without the sibling categories.
func (s *Store) FindCategory(nameOrID string) (model.BudgetCategory, model.BudgetGroup, error) {
	row := s.db.QueryRow(
		`SELECT c.id, c.name, c.planned_amount, c.is_fixed, c.sort_key, g.id, g.name, g.group_type
		 FROM budget_categories c JOIN budget_groups g ON g.id = c.group_id
		 WHERE c.id = ? OR lower(c.name) = ?`,
		nameOrID, strings.ToLower(nameOrID),
	)
	var c model.BudgetCategory
	var g model.BudgetGroup
	var fixed int
	var gt string
	err := row.Scan(&c.ID, &c.Name, &c.PlannedAmount, &fixed, &c.SortKey, &g.ID, &g.Name, &gt)
	if errors.Is(err, sql.ErrNoRows) {
		return c, g, fmt.Errorf("unknown category %q", nameOrID)
	}
	if err != nil {
		return c, g, err
	}
	c.IsFixed = fixed != 0
	g.Type = model.GroupType(gt)
	return c, g, nil
}

// SetPlannedAmount updates a category's base planned amount.
func (s *Store) SetPlannedAmount(categoryID string, amount float64) error {
	res, err := s.db.Exec("UPDATE budget_categories SET planned_amount = ? WHERE id = ?", amount, categoryID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unknown category %q", categoryID)
	}
	return nil
}

// ListOverrides returns overrides for months within the inclusive range.
func (s *Store) ListOverrides(from, to dateutil.Month) ([]model.BudgetOverride, error) {
	rows, err := s.db.Query(
		"SELECT category_id, month, amount FROM budget_overrides WHERE month >= ? AND month <= ? ORDER BY month, category_id",
		from.String(), to.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.BudgetOverride
	for rows.Next() {
		var o model.BudgetOverride
		var monthStr string
		if err := rows.Scan(&o.CategoryID, &monthStr, &o.Amount); err != nil {
			return nil, err
		}
		o.Month, err = dateutil.ParseMonth(monthStr)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpsertOverride writes the single override allowed for (category, month).
// The category must exist; an override referencing an unknown category is
// rejected.
func (s *Store) UpsertOverride(categoryID string, m dateutil.Month, amount float64) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM budget_categories WHERE id = ?", categoryID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("unknown category %q", categoryID)
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO budget_overrides (category_id, month, amount) VALUES (?, ?, ?)",
		categoryID, m.String(), amount,
	)
	return err
}

// DeleteOverridesFrom removes a category's overrides for month m and later,
// so a new base amount applies from m onward.
func (s *Store) DeleteOverridesFrom(categoryID string, m dateutil.Month) error {
	_, err := s.db.Exec(
		"DELETE FROM budget_overrides WHERE category_id = ? AND month >= ?",
		categoryID, m.String(),
	)
	return err
}
