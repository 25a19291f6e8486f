package model

// Opportunity is one reply-worthy post surfaced by a digest run. Derived and
// ephemeral: built fresh each run, never persisted beyond the sent-post log.
// Score drives ranking inside the pipeline and is deliberately kept out of
// every serialized form.
type Opportunity struct {
	PostID       string     `json:"post_id"`
	Author       PostAuthor `json:"author"`
	Text         string     `json:"text"`
	URL          string     `json:"url"`
	LikeCount    int        `json:"like_count"`
	RetweetCount int        `json:"retweet_count"`
	Score        float64    `json:"-"`
	DraftReply   *string    `json:"draft_reply,omitempty"`
}
