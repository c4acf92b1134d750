package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
)

type SQLiteTimelineRepo struct {
	db db.DBTX
}

func NewSQLiteTimelineRepo(conn db.DBTX) *SQLiteTimelineRepo {
	return &SQLiteTimelineRepo{db: conn}
}

func (r *SQLiteTimelineRepo) ListByPerson(ctx context.Context, personID string) ([]domain.TimelineEntry, error) {
	entries, err := queryList(ctx, r.db,
		`SELECT id, date, type, title, description FROM timeline_entries
		WHERE person_id = ? ORDER BY position`,
		[]any{personID}, scanTimelineEntry)
	if err != nil {
		return nil, fmt.Errorf("listing timeline: %w", err)
	}
	return entries, nil
}

// Insert prepends e to the person's timeline.
func (r *SQLiteTimelineRepo) Insert(ctx context.Context, personID string, e domain.TimelineEntry) error {
	pos, err := nextPosition(ctx, r.db, "timeline_entries", personID, true)
	if err != nil {
		return err
	}
	return r.insertAt(ctx, personID, e, pos)
}

func (r *SQLiteTimelineRepo) insertAt(ctx context.Context, personID string, e domain.TimelineEntry, pos int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO timeline_entries (person_id, id, date, type, title, description, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		personID, e.ID, timeValue(e.Date), string(e.Type), e.Title, e.Description, pos)
	if err != nil {
		return fmt.Errorf("inserting timeline entry %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteTimelineRepo) UpdateDescription(ctx context.Context, personID, entryID, description string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE timeline_entries SET description = ? WHERE person_id = ? AND id = ?`,
		description, personID, entryID)
	if err != nil {
		return fmt.Errorf("updating timeline entry: %w", err)
	}
	return requireAffected(res, "timeline entry "+entryID)
}

func scanTimelineEntry(rows *sql.Rows) (domain.TimelineEntry, error) {
	var e domain.TimelineEntry
	var date, typ string
	if err := rows.Scan(&e.ID, &date, &typ, &e.Title, &e.Description); err != nil {
		return e, fmt.Errorf("scanning timeline entry: %w", err)
	}
	e.Type = domain.TimelineType(typ)

	var err error
	if e.Date, err = parseRequiredTime(date); err != nil {
		return e, fmt.Errorf("timeline entry %s date: %w", e.ID, err)
	}
	return e, nil
}
