package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so
// Migrate can run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Dates are stored as YYYY-MM-DD text, timestamps as RFC3339 text and money
// as decimal text.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		industry        TEXT NOT NULL DEFAULT '',
		segment         TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'active'
		                CHECK(status IN ('active','at_risk','churned','prospect')),
		monthly_revenue TEXT NOT NULL DEFAULT '0',
		currency        TEXT NOT NULL DEFAULT '',
		health_score    INTEGER CHECK(health_score IS NULL OR health_score BETWEEN 0 AND 100),
		open_tickets    INTEGER NOT NULL DEFAULT 0,
		last_contact_at TEXT,
		renewal_date    TEXT,
		notes           TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		id           TEXT PRIMARY KEY,
		customer_id  TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		billing_type TEXT NOT NULL
		             CHECK(billing_type IN ('fixed','time_and_materials','retainer')),
		total_value  TEXT NOT NULL DEFAULT '0',
		currency     TEXT NOT NULL DEFAULT '',
		hours_budget REAL NOT NULL DEFAULT 0,
		hours_used   REAL NOT NULL DEFAULT 0,
		start_date   TEXT NOT NULL,
		end_date     TEXT,
		status       TEXT NOT NULL DEFAULT 'active'
		             CHECK(status IN ('draft','active','expired','terminated')),
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contracts_customer ON contracts(customer_id)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		contract_id TEXT REFERENCES contracts(id) ON DELETE SET NULL,
		number      TEXT NOT NULL,
		amount      TEXT NOT NULL,
		currency    TEXT NOT NULL DEFAULT '',
		issued_on   TEXT NOT NULL,
		due_on      TEXT,
		status      TEXT NOT NULL DEFAULT 'draft'
		            CHECK(status IN ('draft','sent','paid','overdue','void')),
		line_items  TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_contract ON invoices(contract_id)`,

	`CREATE TABLE IF NOT EXISTS scorecards (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		organization TEXT NOT NULL DEFAULT '',
		period       TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS scorecard_metrics (
		id             TEXT PRIMARY KEY,
		scorecard_id   TEXT NOT NULL REFERENCES scorecards(id) ON DELETE CASCADE,
		perspective    TEXT NOT NULL
		               CHECK(perspective IN ('financial','customer','internal_process','learning_growth')),
		name           TEXT NOT NULL,
		unit           TEXT NOT NULL DEFAULT '',
		current_value  REAL NOT NULL DEFAULT 0,
		target_value   REAL NOT NULL DEFAULT 0,
		previous_value REAL,
		order_index    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scorecard_metrics_scorecard ON scorecard_metrics(scorecard_id)`,

	`CREATE TABLE IF NOT EXISTS change_initiatives (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		sponsor         TEXT NOT NULL DEFAULT '',
		stage           TEXT NOT NULL DEFAULT 'awareness'
		                CHECK(stage IN ('awareness','desire','knowledge','ability','reinforcement')),
		impacted_groups TEXT NOT NULL DEFAULT '[]',
		stage_scores    TEXT NOT NULL DEFAULT '{}',
		target_date     TEXT,
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS resource_allocations (
		id                      TEXT PRIMARY KEY,
		resource_name           TEXT NOT NULL,
		project_name            TEXT NOT NULL,
		start_date              TEXT NOT NULL,
		end_date                TEXT NOT NULL,
		hours_per_week          REAL NOT NULL CHECK(hours_per_week >= 0),
		capacity_hours_per_week REAL NOT NULL DEFAULT 40
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allocations_resource ON resource_allocations(resource_name, start_date)`,

	`CREATE TABLE IF NOT EXISTS canvases (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		blocks      TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS competitive_analyses (
		id          TEXT PRIMARY KEY,
		company     TEXT NOT NULL,
		industry    TEXT NOT NULL DEFAULT '',
		competitors TEXT NOT NULL DEFAULT '[]',
		forces      TEXT NOT NULL DEFAULT '{}',
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
}
