package model

import "time"

// PostAuthor identifies the account that published a post.
type PostAuthor struct {
	Handle        string `json:"handle"`
	DisplayName   string `json:"display_name"`
	FollowerCount int    `json:"follower_count"`
}

// Post is a single post fetched from the social-data API.
// Immutable once fetched; the pipeline never mutates it.
type Post struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	URL          string     `json:"url"`
	CreatedAt    time.Time  `json:"created_at"`
	LikeCount    int        `json:"like_count"`
	RetweetCount int        `json:"retweet_count"`
	ReplyCount   int        `json:"reply_count"`
	Author       PostAuthor `json:"author"`
}

// Age returns how old the post is relative to now.
func (p Post) Age(now time.Time) time.Duration {
	return now.Sub(p.CreatedAt)
}
