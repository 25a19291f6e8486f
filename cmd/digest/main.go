// One-shot digest run for a single user, printing the result through the
// development deliverer. Useful for trying pipeline changes without redis
// streams or a scheduler in the loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"replyloop.app/engine/common/id"
	"replyloop.app/engine/common/llm"
	"replyloop.app/engine/common/logger"
	"replyloop.app/engine/core/config"
	"replyloop.app/engine/core/db"
	"replyloop.app/engine/internal/digest"
	"replyloop.app/engine/internal/queue"
	"replyloop.app/engine/internal/ranker"
	"replyloop.app/engine/internal/reply"
	"replyloop.app/engine/internal/source"
	"replyloop.app/engine/internal/store"
	"replyloop.app/engine/internal/worker"
)

func main() {
	userID := flag.Int64("user", 0, "user ID to run the digest for (required)")
	noCache := flag.Bool("no-cache", false, "bypass the redis post cache")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "usage: digest -user <id> [-no-cache]")
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeDigest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	if err := id.Init(id.NodeDigest); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	var cache source.PostCache
	if !*noCache {
		redisOpts, err := redis.ParseURL(cfg.Queue.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.WarnContext(ctx, "redis unavailable, fetching without cache", "error", err)
		} else {
			defer redisClient.Close()
			cache = source.NewRedisPostCache(redisClient, cfg.Social.CacheTTL)
		}
	}

	fetcher, err := source.NewClient(source.Config{
		APIKey:  cfg.Social.APIKey,
		BaseURL: cfg.Social.BaseURL,
	}, cache)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create social client", "error", err)
		os.Exit(1)
	}

	var generator ranker.DraftGenerator
	if cfg.LLM.Enabled() {
		llmClient, err := llm.New(llm.Config{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create llm client", "error", err)
			os.Exit(1)
		}
		generator = reply.NewGenerator(llmClient, cfg.LLM.MaxTokens)
	}

	pipeline := ranker.New(ranker.Config{
		Fetcher:   fetcher,
		Generator: generator,
		Pacer:     ranker.NewFixedIntervalPacer(cfg.Digest.FetchInterval),
	})

	processor := worker.NewProcessor(store.NewStores(database.Pool()), pipeline, digest.LogDeliverer{}, worker.ProcessorConfig{
		MaxPerAccount:   cfg.Digest.MaxPerAccount,
		SkipPolitical:   cfg.Digest.SkipPolitical,
		RetentionWindow: time.Duration(cfg.Digest.SentRetentionDays) * 24 * time.Hour,
	})

	task := queue.Message{RunID: id.New(), UserID: *userID, Attempt: 1}
	if err := processor.Process(ctx, task); err != nil {
		slog.ErrorContext(ctx, "digest run failed", "error", err)
		os.Exit(1)
	}
}
