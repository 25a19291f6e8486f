package digest

import (
	"context"
	"log/slog"

	"replyloop.app/engine/common/logger"
	"replyloop.app/engine/internal/model"
)

// Deliverer hands a finished digest to whatever actually reaches the user.
// Production wires an email provider here; development logs the digest.
type Deliverer interface {
	Deliver(ctx context.Context, digest model.Digest) error
}

// LogDeliverer prints each digest through slog. Used in development and in
// the one-shot CLI, where there is no email provider to talk to.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, digest model.Digest) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID: logger.Ptr(digest.UserID),
		RunID:  logger.Ptr(digest.RunID),
	})

	slog.InfoContext(ctx, "digest ready",
		"subject", digest.Subject,
		"opportunities", len(digest.Opportunities))

	for i, opp := range digest.Opportunities {
		args := []any{
			"rank", i + 1,
			"post_id", opp.PostID,
			"author", opp.Author.Handle,
			"url", opp.URL,
			"likes", opp.LikeCount,
			"retweets", opp.RetweetCount,
			"text", logger.Truncate(opp.Text, 120),
		}
		if opp.DraftReply != nil {
			args = append(args, "draft", *opp.DraftReply)
		}
		slog.InfoContext(ctx, "digest entry", args...)
	}
	return nil
}
