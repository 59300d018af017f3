package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/compass/internal/db"
)

// FailOnExecUoW wraps a UnitOfWork and makes the Nth ExecContext inside each
// transaction return Err. Reads pass through. Counting starts at 1.
type FailOnExecUoW struct {
	Inner db.UnitOfWork
	N     int
	Err   error
}

func (u *FailOnExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, failOn: u.N, err: u.Err})
	})
}

type failingExec struct {
	db.DBTX
	calls  int
	failOn int
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
