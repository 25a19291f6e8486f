// Package reply drafts style-matched reply suggestions with a generative
// model. Each draft is one single-turn completion; batches run with bounded
// concurrency so an AI-provider rate limit is respected.
package reply

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"replyloop.app/engine/common/llm"
	"replyloop.app/engine/common/logger"
	"replyloop.app/engine/internal/model"
)

const (
	// DefaultBatchSize bounds concurrency for plain batch calls.
	DefaultBatchSize = 5

	maxReplyRunes    = 280
	defaultMaxTokens = 150
)

var temperature = llm.Temp(0.7)

type Generator struct {
	client    llm.Client
	maxTokens int
}

func NewGenerator(client llm.Client, maxTokens int) *Generator {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Generator{client: client, maxTokens: maxTokens}
}

// Generate drafts one reply to the post in the profile's voice.
// The result is trimmed to 280 characters.
func (g *Generator) Generate(ctx context.Context, post model.Post, profile model.VoiceProfile) (string, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		PostID:    logger.Ptr(post.ID),
		Component: "engine.reply",
	})

	text, err := g.client.Complete(ctx, llm.Request{
		SystemPrompt: BuildSystemPrompt(profile),
		UserPrompt:   BuildUserPrompt(post),
		MaxTokens:    g.maxTokens,
		Temperature:  temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}

	return clampReply(text), nil
}

// Batch drafts replies for all posts, running at most `concurrency` requests
// at a time (DefaultBatchSize when <= 0). A failed draft is logged and left
// out of the result; it never aborts the batch. The returned map holds
// postID -> draft for every success.
func (g *Generator) Batch(ctx context.Context, posts []model.Post, profile model.VoiceProfile, concurrency int) map[string]string {
	if concurrency <= 0 {
		concurrency = DefaultBatchSize
	}

	drafts := make(map[string]string, len(posts))
	var mu sync.Mutex

	for start := 0; start < len(posts); start += concurrency {
		end := start + concurrency
		if end > len(posts) {
			end = len(posts)
		}

		var wg sync.WaitGroup
		for _, post := range posts[start:end] {
			wg.Add(1)
			go func(post model.Post) {
				defer wg.Done()

				draft, err := g.Generate(ctx, post, profile)
				if err != nil {
					slog.WarnContext(ctx, "draft generation failed, skipping post",
						"error", err,
						"post_id", post.ID)
					return
				}

				mu.Lock()
				drafts[post.ID] = draft
				mu.Unlock()
			}(post)
		}
		wg.Wait()
	}

	return drafts
}

// clampReply trims whitespace and enforces the 280-character ceiling.
func clampReply(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxReplyRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:maxReplyRunes]))
}
