// Package quality decides whether a candidate post is worth replying to.
// The filter is a pure predicate: no I/O, no side effects, same answer for
// the same input every time.
package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"replyloop.app/engine/internal/model"
)

// minVisibleLength is the floor for a post's text once URLs are stripped.
// Anything shorter carries too little substance to reply to.
const minVisibleLength = 50

var urlPattern = regexp.MustCompile(`https?://\S+`)

// IsQualityPost reports whether a post is a reply candidate. A post is
// rejected if any rule matches: political content (when skipPolitical is
// set), too short once URLs are stripped, a reply to someone else, a
// retweet, or hashtag spam.
func IsQualityPost(post model.Post, skipPolitical bool) bool {
	text := post.Text

	if skipPolitical && containsPolitical(text) {
		return false
	}

	visible := strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
	if utf8.RuneCountInString(visible) < minVisibleLength {
		return false
	}

	if strings.HasPrefix(text, "@") {
		return false
	}

	if strings.HasPrefix(text, "RT @") {
		return false
	}

	if isHashtagSpam(text) {
		return false
	}

	return true
}

func containsPolitical(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range politicalKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// isHashtagSpam flags posts where hashtags outnumber half the words.
func isHashtagSpam(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}

	hashtags := 0
	for _, w := range words {
		if strings.HasPrefix(w, "#") {
			hashtags++
		}
	}

	return float64(hashtags) > float64(len(words))/2
}
