// Package worker consumes digest-run tasks from the redis stream and drives
// the pipeline end to end for each one.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"replyloop.app/engine/common/logger"
	"replyloop.app/engine/internal/digest"
	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/queue"
	"replyloop.app/engine/internal/store"
)

// StoreProvider mirrors store.Stores. Defined here so the processor can be
// tested against fakes without a database.
type StoreProvider interface {
	Accounts() store.AccountStore
	VoiceProfiles() store.VoiceProfileStore
	SentPosts() store.SentPostStore
}

// OpportunityFinder mirrors ranker.Ranker.
type OpportunityFinder interface {
	FindOpportunities(ctx context.Context, accounts []model.MonitoredAccount, profile model.VoiceProfile, maxPerAccount int, skipPolitical bool, excludedPostIDs []string) []model.Opportunity
}

type ProcessorConfig struct {
	MaxPerAccount int
	SkipPolitical bool
	// RetentionWindow bounds both the sent-post exclusion query and pruning.
	RetentionWindow time.Duration
}

// Processor runs one digest for one user: load state, rank, assemble,
// deliver, record what was sent.
type Processor struct {
	stores    StoreProvider
	finder    OpportunityFinder
	deliverer digest.Deliverer
	cfg       ProcessorConfig
	now       func() time.Time
}

func NewProcessor(stores StoreProvider, finder OpportunityFinder, deliverer digest.Deliverer, cfg ProcessorConfig) *Processor {
	return &Processor{
		stores:    stores,
		finder:    finder,
		deliverer: deliverer,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (p *Processor) Process(ctx context.Context, task queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(task.UserID),
		RunID:     logger.Ptr(task.RunID),
		Component: "engine.worker.processor",
	})

	accounts, err := p.stores.Accounts().ListByUser(ctx, task.UserID)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}
	if len(accounts) == 0 {
		slog.InfoContext(ctx, "user has no monitored accounts, skipping run")
		return nil
	}

	profile, err := p.stores.VoiceProfiles().GetByUser(ctx, task.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("loading voice profile: %w", err)
		}
		// No profile yet: rank without drafts.
		profile = &model.VoiceProfile{UserID: task.UserID}
	}

	now := p.now()
	since := now.Add(-p.cfg.RetentionWindow)
	excluded, err := p.stores.SentPosts().ListRecentIDs(ctx, task.UserID, since)
	if err != nil {
		return fmt.Errorf("listing sent posts: %w", err)
	}

	opportunities := p.finder.FindOpportunities(ctx, accounts, *profile,
		p.cfg.MaxPerAccount, p.cfg.SkipPolitical, excluded)
	if len(opportunities) == 0 {
		slog.InfoContext(ctx, "run produced no opportunities, skipping digest")
		return nil
	}

	d := digest.Assemble(task.RunID, task.UserID, opportunities, now)
	if err := p.deliverer.Deliver(ctx, d); err != nil {
		return fmt.Errorf("delivering digest: %w", err)
	}

	if err := p.stores.SentPosts().Add(ctx, task.UserID, d.PostIDs(), now); err != nil {
		// The digest already went out. Failing the task here would retry the
		// whole run and send a duplicate, so log and move on.
		slog.ErrorContext(ctx, "failed to record sent posts after delivery",
			"error", err,
			"count", len(d.PostIDs()))
	}

	p.pruneSentLog(ctx, now)

	slog.InfoContext(ctx, "digest run complete", "opportunities", len(opportunities))
	return nil
}

// pruneSentLog opportunistically trims records past the retention window.
// Failures are logged only; pruning rides along on normal runs.
func (p *Processor) pruneSentLog(ctx context.Context, now time.Time) {
	pruned, err := p.stores.SentPosts().Prune(ctx, now.Add(-p.cfg.RetentionWindow))
	if err != nil {
		slog.WarnContext(ctx, "sent-post pruning failed", "error", err)
		return
	}
	if pruned > 0 {
		slog.InfoContext(ctx, "pruned sent-post records", "count", pruned)
	}
}
