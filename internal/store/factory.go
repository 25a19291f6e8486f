package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx both *pgxpool.Pool and pgx.Tx satisfy, so the
// same store code runs inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores provides access to all store implementations.
//
// Usage with pool (non-transactional):
//
//	stores := store.NewStores(db.Pool())
//	accounts, err := stores.Accounts().ListByUser(ctx, userID)
//
// Usage with transaction:
//
//	err := db.WithTx(ctx, func(tx pgx.Tx) error {
//	    stores := store.NewStores(tx)
//	    return stores.SentPosts().Add(ctx, userID, ids, now)
//	})
type Stores struct {
	q Querier
}

func NewStores(q Querier) *Stores {
	return &Stores{q: q}
}

// Accounts returns the AccountStore
func (s *Stores) Accounts() AccountStore {
	return &accountStore{q: s.q}
}

// VoiceProfiles returns the VoiceProfileStore
func (s *Stores) VoiceProfiles() VoiceProfileStore {
	return &voiceProfileStore{q: s.q}
}

// SentPosts returns the SentPostStore
func (s *Stores) SentPosts() SentPostStore {
	return &sentPostStore{q: s.q}
}
