package store

import (
	"context"
	"time"
)

type sentPostStore struct {
	q Querier
}

// Add records the given post IDs as sent to the user in one batch.
// Re-recording an already-sent post is a no-op, so retried deliveries are safe.
func (s *sentPostStore) Add(ctx context.Context, userID int64, postIDs []string, sentAt time.Time) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO sent_posts (user_id, post_id, sent_at)
		SELECT $1, unnest($2::text[]), $3
		ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postIDs, sentAt)
	return err
}

func (s *sentPostStore) ListRecentIDs(ctx context.Context, userID int64, since time.Time) ([]string, error) {
	rows, err := s.q.Query(ctx, `
		SELECT post_id
		FROM sent_posts
		WHERE user_id = $1 AND sent_at >= $2`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *sentPostStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM sent_posts WHERE sent_at < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
