// Package scoring ranks posts by expected reply value. Pure arithmetic over
// engagement counts, recency, and a couple of heuristic bonuses; the caller
// injects the clock so scores are reproducible.
package scoring

import (
	"strings"
	"time"

	"replyloop.app/engine/internal/model"
)

const (
	likeWeight    = 0.5
	retweetWeight = 2.0
	replyWeight   = 1.0

	freshBonus  = 1.5 // under two hours old
	recentBonus = 1.2 // under six hours old

	questionBonus = 1.3
	reachBonus    = 1.2 // author above the follower threshold

	reachThreshold = 100_000
)

// Score computes the ranking score for a post at the given instant.
// Base engagement score with multiplicative modifiers, applied in a fixed
// order so floating-point results stay bit-stable across runs.
func Score(post model.Post, now time.Time) float64 {
	score := float64(post.LikeCount)*likeWeight +
		float64(post.RetweetCount)*retweetWeight +
		float64(post.ReplyCount)*replyWeight

	age := post.Age(now)
	switch {
	case age < 2*time.Hour:
		score *= freshBonus
	case age < 6*time.Hour:
		score *= recentBonus
	}

	if strings.Contains(post.Text, "?") {
		score *= questionBonus
	}

	if post.Author.FollowerCount > reachThreshold {
		score *= reachBonus
	}

	return score
}
