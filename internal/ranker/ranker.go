// Package ranker orchestrates the digest pipeline: fetch candidate posts per
// monitored account, filter out noise, score survivors, pick the global top
// set, and attach drafted replies.
package ranker

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"replyloop.app/engine/common/logger"
	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/quality"
	"replyloop.app/engine/internal/reply"
	"replyloop.app/engine/internal/scoring"
	"replyloop.app/engine/internal/source"
)

const (
	// MaxOpportunities is the global cap per run, across all accounts.
	MaxOpportunities = 10

	// draftConcurrency bounds parallel generation calls when drafting for
	// the top set. Tighter than the generator's default to respect the AI
	// provider's rate limit during full pipeline runs.
	draftConcurrency = 3

	maxPostAge = 24 * time.Hour
)

// DraftGenerator is the slice of reply.Generator the ranker needs.
type DraftGenerator interface {
	Batch(ctx context.Context, posts []model.Post, profile model.VoiceProfile, concurrency int) map[string]string
}

var _ DraftGenerator = (*reply.Generator)(nil)

type Ranker struct {
	fetcher   source.Fetcher
	generator DraftGenerator
	pacer     Pacer
	now       func() time.Time
}

type Config struct {
	Fetcher   source.Fetcher
	Generator DraftGenerator // optional; no drafts when nil
	Pacer     Pacer          // optional; defaults to no pacing
	Now       func() time.Time
}

func New(cfg Config) *Ranker {
	pacer := cfg.Pacer
	if pacer == nil {
		pacer = NopPacer{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Ranker{
		fetcher:   cfg.Fetcher,
		generator: cfg.Generator,
		pacer:     pacer,
		now:       now,
	}
}

// FindOpportunities runs the pipeline for one user and returns at most
// MaxOpportunities opportunities, sorted by score descending.
//
// Accounts are fetched sequentially behind the pacer. A per-account fetch
// failure is logged and skipped; drafting failures leave individual drafts
// unset. An empty result is a valid "nothing to send" outcome, never an
// error. If the context is cut short after scoring, the scored set is
// returned without drafts.
func (r *Ranker) FindOpportunities(
	ctx context.Context,
	accounts []model.MonitoredAccount,
	profile model.VoiceProfile,
	maxPerAccount int,
	skipPolitical bool,
	excludedPostIDs []string,
) []model.Opportunity {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "engine.ranker"})

	excluded := make(map[string]bool, len(excludedPostIDs))
	for _, id := range excludedPostIDs {
		excluded[id] = true
	}

	now := r.now()
	var pool []model.Opportunity

	for _, account := range accounts {
		if err := r.pacer.Wait(ctx); err != nil {
			slog.WarnContext(ctx, "pipeline cut short while pacing", "error", err)
			break
		}

		posts, err := r.fetcher.RecentPosts(ctx, account.Handle, maxPerAccount)
		if err != nil {
			slog.WarnContext(ctx, "account fetch failed, skipping",
				"error", err,
				"handle", account.Handle)
			continue
		}

		kept := 0
		for _, post := range posts {
			if post.Age(now) > maxPostAge {
				continue
			}
			if !quality.IsQualityPost(post, skipPolitical) {
				continue
			}
			if excluded[post.ID] {
				continue
			}

			pool = append(pool, model.Opportunity{
				PostID:       post.ID,
				Author:       post.Author,
				Text:         post.Text,
				URL:          post.URL,
				LikeCount:    post.LikeCount,
				RetweetCount: post.RetweetCount,
				Score:        scoring.Score(post, now),
			})
			kept++
		}

		slog.DebugContext(ctx, "account processed",
			"handle", account.Handle,
			"fetched", len(posts),
			"kept", kept)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	if len(pool) > MaxOpportunities {
		pool = pool[:MaxOpportunities]
	}

	if len(pool) == 0 {
		slog.InfoContext(ctx, "no opportunities found, nothing to send")
		return nil
	}

	r.attachDrafts(ctx, pool, profile)

	slog.InfoContext(ctx, "opportunities ranked",
		"count", len(pool),
		"accounts", len(accounts))
	return pool
}

// attachDrafts fills in DraftReply for the top set when the profile carries
// enough signal to write in the user's voice. Tolerates being cut short:
// with a cancelled context the drafts are simply absent.
func (r *Ranker) attachDrafts(ctx context.Context, pool []model.Opportunity, profile model.VoiceProfile) {
	if r.generator == nil || !profile.HasBio() {
		return
	}
	if ctx.Err() != nil {
		slog.WarnContext(ctx, "skipping draft generation, context already cancelled")
		return
	}

	posts := make([]model.Post, len(pool))
	for i, opp := range pool {
		posts[i] = model.Post{
			ID:     opp.PostID,
			Text:   opp.Text,
			URL:    opp.URL,
			Author: opp.Author,
		}
	}

	drafts := r.generator.Batch(ctx, posts, profile, draftConcurrency)

	for i := range pool {
		if draft, ok := drafts[pool[i].PostID]; ok {
			d := draft
			pool[i].DraftReply = &d
		}
	}
}
