// Package store holds the postgres-backed persistence layer: monitored
// accounts, voice profiles, and the sent-post log.
package store

import (
	"context"
	"errors"
	"time"

	"replyloop.app/engine/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrAccountLimit is returned when a create would push a user past their
// plan's monitored-account cap.
var ErrAccountLimit = errors.New("account limit reached")

// AccountStore defines the contract for monitored-account data access
type AccountStore interface {
	Create(ctx context.Context, account *model.MonitoredAccount) error
	Delete(ctx context.Context, id, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.MonitoredAccount, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

// VoiceProfileStore defines the contract for voice-profile data access
type VoiceProfileStore interface {
	GetByUser(ctx context.Context, userID int64) (*model.VoiceProfile, error)
	Upsert(ctx context.Context, profile *model.VoiceProfile) error
}

// SentPostStore defines the contract for the append-only sent-post log
type SentPostStore interface {
	Add(ctx context.Context, userID int64, postIDs []string, sentAt time.Time) error
	ListRecentIDs(ctx context.Context, userID int64, since time.Time) ([]string, error)
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
