package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"replyloop.app/engine/internal/model"
)

// TxBeginner runs a function inside one database transaction. *db.DB
// satisfies it.
type TxBeginner interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// AccountCreator inserts monitored accounts under a per-user cap. The count
// and the insert run in one transaction behind a per-user advisory lock, so
// concurrent creates cannot push a user past the cap.
type AccountCreator struct {
	db TxBeginner
}

func NewAccountCreator(db TxBeginner) *AccountCreator {
	return &AccountCreator{db: db}
}

// CreateWithinLimit inserts the account only if the user currently monitors
// fewer than maxAccounts. Returns ErrAccountLimit when the cap is reached.
func (c *AccountCreator) CreateWithinLimit(ctx context.Context, account *model.MonitoredAccount, maxAccounts int) error {
	return c.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, account.UserID); err != nil {
			return fmt.Errorf("locking user: %w", err)
		}

		accounts := NewStores(tx).Accounts()
		count, err := accounts.CountByUser(ctx, account.UserID)
		if err != nil {
			return err
		}
		if count >= maxAccounts {
			return ErrAccountLimit
		}
		return accounts.Create(ctx, account)
	})
}
