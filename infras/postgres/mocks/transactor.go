package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/postgres"
)

type transactorImpl struct {
}

// Transact implements postgres.Transactor by running fn outside any real
// transaction. Repository mocks ignore the tx argument, so passing nil is
// safe. Commit hooks collected during fn run when fn succeeds, mirroring the
// real transactor's post-commit flush; a failing fn drops them like a
// rollback would.
func (t *transactorImpl) Transact(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	ctx, flush := postgres.WithCommitHooks(ctx)

	if err := fn(ctx, nil); err != nil {
		return err
	}

	flush(ctx)

	return nil
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
