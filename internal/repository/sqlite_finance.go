package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
)

type SQLiteFinanceRepo struct {
	db db.DBTX
}

func NewSQLiteFinanceRepo(conn db.DBTX) *SQLiteFinanceRepo {
	return &SQLiteFinanceRepo{db: conn}
}

func (r *SQLiteFinanceRepo) ListByPerson(ctx context.Context, personID string) ([]domain.Finance, error) {
	records, err := queryList(ctx, r.db,
		`SELECT id, amount, currency, date, description, type FROM finances
		WHERE person_id = ? ORDER BY position`,
		[]any{personID}, scanFinance)
	if err != nil {
		return nil, fmt.Errorf("listing finances: %w", err)
	}
	return records, nil
}

// Insert records f as the most recent transaction.
func (r *SQLiteFinanceRepo) Insert(ctx context.Context, personID string, f domain.Finance) error {
	pos, err := nextPosition(ctx, r.db, "finances", personID, true)
	if err != nil {
		return err
	}
	return r.insertAt(ctx, personID, f, pos)
}

func (r *SQLiteFinanceRepo) insertAt(ctx context.Context, personID string, f domain.Finance, pos int) error {
	currency := domain.CoalesceStr(f.Currency, "USD")
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO finances (person_id, id, amount, currency, date, description, type, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		personID, f.ID, f.Amount, currency, timeValue(f.Date), f.Description, string(f.Type), pos)
	if err != nil {
		return fmt.Errorf("inserting finance %s: %w", f.ID, err)
	}
	return nil
}

func scanFinance(rows *sql.Rows) (domain.Finance, error) {
	var f domain.Finance
	var date, typ string
	if err := rows.Scan(&f.ID, &f.Amount, &f.Currency, &date, &f.Description, &typ); err != nil {
		return f, fmt.Errorf("scanning finance: %w", err)
	}
	f.Type = domain.FinanceType(typ)

	var err error
	if f.Date, err = parseRequiredTime(date); err != nil {
		return f, fmt.Errorf("finance %s date: %w", f.ID, err)
	}
	return f, nil
}
