package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id             TEXT PRIMARY KEY,
    description    TEXT NOT NULL DEFAULT '',
    amount         REAL NOT NULL,
    tx_date        TEXT NOT NULL,
    status         TEXT NOT NULL DEFAULT 'cleared',
    category_id    TEXT,
    group_id       TEXT,
    is_recurring   INTEGER NOT NULL DEFAULT 0,
    recurrence_id  TEXT,
    recur_freq     INTEGER NOT NULL DEFAULT 0,
    recur_period   TEXT NOT NULL DEFAULT '',
    recur_end_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS budget_groups (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    group_type TEXT NOT NULL,
    sort_key   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS budget_categories (
    id             TEXT PRIMARY KEY,
    group_id       TEXT NOT NULL REFERENCES budget_groups(id) ON DELETE CASCADE,
    name           TEXT NOT NULL,
    planned_amount REAL NOT NULL DEFAULT 0,
    is_fixed       INTEGER NOT NULL DEFAULT 0,
    sort_key       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS budget_overrides (
    category_id TEXT NOT NULL REFERENCES budget_categories(id) ON DELETE CASCADE,
    month       TEXT NOT NULL,
    amount      REAL NOT NULL,
    PRIMARY KEY (category_id, month)
);

CREATE TABLE IF NOT EXISTS month_snapshots (
    month       TEXT PRIMARY KEY,
    balance     REAL NOT NULL,
    computed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(tx_date);
CREATE INDEX IF NOT EXISTS idx_transactions_recurrence ON transactions(recurrence_id);
CREATE INDEX IF NOT EXISTS idx_categories_group ON budget_categories(group_id);
`
