package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/rapport/internal/db"
)

// FailingUoW injects Err into a transaction so rollback paths can be
// tested. With FailOn set, the FailOn-th ExecContext call fails (counting
// from 1). With FailWhen set, the first ExecContext whose statement
// contains FailWhen fails. Reads always pass through.
type FailingUoW struct {
	DB       *sql.DB
	FailOn   int32
	FailWhen string
	Err      error

	execs atomic.Int32
}

// Execs reports how many ExecContext calls the last transaction attempted.
func (u *FailingUoW) Execs() int {
	return int(u.execs.Load())
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.execs.Store(0)

	wrapped := &failingExec{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.execs.Add(1)
	if n == f.uow.FailOn || (f.uow.FailWhen != "" && strings.Contains(query, f.uow.FailWhen)) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
