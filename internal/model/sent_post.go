package model

import "time"

// SentPostRecord marks a post as already surfaced to a user. Append-only;
// used solely to keep previously-sent posts out of future digests. Records
// older than the retention window are pruned by the worker.
type SentPostRecord struct {
	UserID int64
	PostID string
	SentAt time.Time
}
