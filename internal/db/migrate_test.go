package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"people", "social_profiles", "meetings", "tasks", "finances", "timeline_entries"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_people_name",
		"idx_tasks_status",
		"idx_meetings_person",
		"idx_tasks_person",
		"idx_finances_person",
		"idx_timeline_person",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_PositionColumns(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"meetings", "tasks", "finances", "timeline_entries"} {
		assert.True(t, hasColumn(t, db, table, "position"), "%s should have position", table)
	}
}

func TestMigrate_CheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO people (id, name, created_at, updated_at)
		VALUES ('p1', 'Ada', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	cases := []struct {
		name string
		stmt string
	}{
		{"reputation above 100", `UPDATE people SET reputation_score = 101 WHERE id = 'p1'`},
		{"unknown relationship status", `UPDATE people SET relationship_status = 'Frenemy' WHERE id = 'p1'`},
		{"unknown task status", `INSERT INTO tasks (person_id, id, title, status) VALUES ('p1', 't1', 'x', 'blocked')`},
		{"unknown priority", `INSERT INTO tasks (person_id, id, title, priority) VALUES ('p1', 't1', 'x', 'urgent')`},
		{"unknown finance type", `INSERT INTO finances (person_id, id, amount, date, type) VALUES ('p1', 'f1', 1, '2025-01-01', 'gift')`},
		{"unknown sentiment", `INSERT INTO meetings (person_id, id, date, title, sentiment) VALUES ('p1', 'm1', '2025-01-01', 'x', 'ecstatic')`},
		{"orphan task", `INSERT INTO tasks (person_id, id, title) VALUES ('nobody', 't1', 'x')`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.Exec(tc.stmt)
			assert.Error(t, err)
		})
	}
}

func TestMigrate_CascadeDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO people (id, name, created_at, updated_at)
		VALUES ('p1', 'Ada', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (person_id, id, title) VALUES ('p1', 't1', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM people WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Equal(t, 0, n)
}

func hasColumn(t *testing.T, db *sql.DB, table, column string) bool {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		if name == column {
			return true
		}
	}
	return false
}
