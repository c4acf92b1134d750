package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// timeLayout is used for every stored instant. Values are written in UTC.
const timeLayout = time.RFC3339Nano

// timeValue converts t for storage. The zero time is stored as NULL.
func timeValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored instant. NULL and empty strings yield the zero
// time; bare calendar dates are accepted for rows written by hand.
func parseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(timeLayout, s.String); err == nil {
		return t, nil
	}
	t, err := time.Parse(domain.DateLayout, s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s.String, err)
	}
	return t, nil
}

func parseRequiredTime(s string) (time.Time, error) {
	return parseTime(sql.NullString{String: s, Valid: true})
}

// queryList runs query and scans every row with scan. Rows are closed
// before returning, so callers may issue further queries on a single
// connection.
func queryList[T any](ctx context.Context, conn db.DBTX, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// nextPosition returns the position for a new row in one of a person's
// collections: after the last row, or before the first when front is set.
func nextPosition(ctx context.Context, conn db.DBTX, table, personID string, front bool) (int, error) {
	query := `SELECT COALESCE(MAX(position) + 1, 0) FROM ` + table + ` WHERE person_id = ?`
	if front {
		query = `SELECT COALESCE(MIN(position) - 1, 0) FROM ` + table + ` WHERE person_id = ?`
	}
	var pos int
	if err := conn.QueryRowContext(ctx, query, personID).Scan(&pos); err != nil {
		return 0, fmt.Errorf("allocating %s position: %w", table, err)
	}
	return pos, nil
}

// requireAffected maps a zero-row update onto ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
