// ABOUTME: Schema definition, initialization, and additive column migrations.
// ABOUTME: Tables: users, food_waste, meals, goals, challenges, community_posts, user_stats.
package storage

import (
	"fmt"
	"strings"
)

// baseSchema holds the original table shapes. Columns added later are
// applied by columnMigrations so that older databases upgrade in place.
const baseSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id {{serial}},
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS food_waste (
		id {{serial}},
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		item TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meals (
		id {{serial}},
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		meal TEXT NOT NULL,
		nutrition TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goals (
		id {{serial}},
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		goal TEXT NOT NULL,
		recommendations TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT {{false}}
	);

	CREATE TABLE IF NOT EXISTS challenges (
		id {{serial}},
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		challenge TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT {{false}}
	);

	CREATE TABLE IF NOT EXISTS community_posts (
		id {{serial}},
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		post TEXT NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_stats (
		user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		last_login TEXT NOT NULL,
		streak INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_food_waste_user_date ON food_waste(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_meals_user_date ON meals(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_goals_user_date ON goals(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_challenges_user_end ON challenges(user_id, end_date DESC);
	CREATE INDEX IF NOT EXISTS idx_posts_date ON community_posts(date DESC);
`

// columnMigration adds a column to an existing table when it is missing.
type columnMigration struct {
	table  string
	column string
	ddl    string
}

var columnMigrations = []columnMigration{
	{"food_waste", "quantity_type", "TEXT NOT NULL DEFAULT 'solid'"},
	{"food_waste", "image", "{{blob}}"},
	{"food_waste", "image_ref", "TEXT NOT NULL DEFAULT ''"},
	{"meals", "image", "{{blob}}"},
	{"meals", "image_ref", "TEXT NOT NULL DEFAULT ''"},
	{"meals", "quantity", "INTEGER"},
	{"goals", "potential_savings", "TEXT NOT NULL DEFAULT ''"},
	{"challenges", "progress", "INTEGER NOT NULL DEFAULT 0"},
}

// expand fills the dialect-specific type placeholders.
func (d *DB) expand(ddl string) string {
	var r *strings.Replacer
	if d.dialect == DialectPostgres {
		r = strings.NewReplacer(
			"{{serial}}", "BIGSERIAL PRIMARY KEY",
			"{{blob}}", "BYTEA",
			"{{false}}", "FALSE",
		)
	} else {
		r = strings.NewReplacer(
			"{{serial}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{blob}}", "BLOB",
			"{{false}}", "0",
		)
	}
	return r.Replace(ddl)
}

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	if _, err := d.db.Exec(d.expand(baseSchema)); err != nil {
		return err
	}
	return d.migrateColumns()
}

// migrateColumns applies every column migration that has not run yet.
func (d *DB) migrateColumns() error {
	for _, m := range columnMigrations {
		if d.dialect == DialectPostgres {
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", m.table, m.column, d.expand(m.ddl))
			if _, err := d.db.Exec(stmt); err != nil {
				return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
			}
			continue
		}

		exists, err := d.hasColumn(m.table, m.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, d.expand(m.ddl))
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
		}
	}
	return nil
}

// hasColumn inspects PRAGMA table_info for a SQLite table.
func (d *DB) hasColumn(table, column string) (bool, error) {
	rows, err := d.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal interface{}
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("scan table info %s: %w", table, err)
		}
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, rows.Err()
}
