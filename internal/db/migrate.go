package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillPositions(db); err != nil {
		return fmt.Errorf("backfilling collection positions: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS people (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		role                TEXT NOT NULL DEFAULT '',
		company             TEXT NOT NULL DEFAULT '',
		email               TEXT NOT NULL DEFAULT '',
		phone               TEXT NOT NULL DEFAULT '',
		profile_image       TEXT NOT NULL DEFAULT '',
		reputation_score    INTEGER NOT NULL DEFAULT 50
		                    CHECK(reputation_score BETWEEN 0 AND 100),
		relationship_status TEXT NOT NULL DEFAULT 'New'
		                    CHECK(relationship_status IN ('New','Active','Inactive','Close')),
		last_contacted      TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_people_name ON people(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS social_profiles (
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		position  INTEGER NOT NULL,
		platform  TEXT NOT NULL,
		url       TEXT NOT NULL DEFAULT '',
		username  TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (person_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		id        TEXT NOT NULL,
		date      TEXT NOT NULL,
		title     TEXT NOT NULL,
		summary   TEXT NOT NULL DEFAULT '',
		sentiment TEXT NOT NULL DEFAULT 'neutral'
		          CHECK(sentiment IN ('positive','neutral','negative')),
		PRIMARY KEY (person_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		id        TEXT NOT NULL,
		title     TEXT NOT NULL,
		due_date  TEXT,
		status    TEXT NOT NULL DEFAULT 'pending'
		          CHECK(status IN ('pending','in-progress','completed','overdue')),
		priority  TEXT NOT NULL DEFAULT 'medium'
		          CHECK(priority IN ('low','medium','high')),
		PRIMARY KEY (person_id, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS finances (
		person_id   TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		amount      REAL NOT NULL,
		currency    TEXT NOT NULL DEFAULT 'USD',
		date        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL CHECK(type IN ('owed','paid','received')),
		PRIMARY KEY (person_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS timeline_entries (
		person_id   TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		date        TEXT NOT NULL,
		type        TEXT NOT NULL CHECK(type IN ('meeting','task','payment','contact')),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (person_id, id)
	)`,

	// Collection order is explicit rather than implied by dates.
	`ALTER TABLE meetings ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE tasks ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE finances ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE timeline_entries ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,

	`CREATE INDEX IF NOT EXISTS idx_meetings_person ON meetings(person_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_person ON tasks(person_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_finances_person ON finances(person_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_person ON timeline_entries(person_id, position)`,
}

// positionBackfill describes how rows written before the position column
// existed are ordered: newest first for dated collections, insertion order
// for tasks.
type positionBackfill struct {
	table   string
	orderBy string
}

var positionBackfills = []positionBackfill{
	{"meetings", "date DESC, rowid"},
	{"tasks", "rowid"},
	{"finances", "date DESC, rowid"},
	{"timeline_entries", "date DESC, rowid"},
}

// migrateBackfillPositions numbers every collection of a person that still
// has all-zero positions and more than one row. People whose rows already
// carry positions are left alone, so re-running is a no-op.
func migrateBackfillPositions(db *sql.DB) error {
	ctx := context.Background()
	for _, b := range positionBackfills {
		personIDs, err := peopleNeedingBackfill(ctx, db, b.table)
		if err != nil {
			return fmt.Errorf("%s: %w", b.table, err)
		}
		for _, pid := range personIDs {
			if err := backfillPersonPositions(ctx, db, b, pid); err != nil {
				return fmt.Errorf("%s for person %s: %w", b.table, pid, err)
			}
		}
	}
	return nil
}

func peopleNeedingBackfill(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT person_id FROM `+table+`
		GROUP BY person_id
		HAVING COUNT(*) > 1 AND MAX(position) = 0 AND MIN(position) = 0`)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning person id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func backfillPersonPositions(ctx context.Context, db *sql.DB, b positionBackfill, personID string) error {
	rows, err := db.QueryContext(ctx,
		`SELECT rowid FROM `+b.table+` WHERE person_id = ? ORDER BY `+b.orderBy, personID)
	if err != nil {
		return fmt.Errorf("listing rows: %w", err)
	}
	var rowIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		rowIDs = append(rowIDs, id)
	}
	rows.Close()

	for pos, id := range rowIDs {
		if _, err := db.ExecContext(ctx,
			`UPDATE `+b.table+` SET position = ? WHERE rowid = ?`, pos, id); err != nil {
			return fmt.Errorf("updating position: %w", err)
		}
	}
	return nil
}
