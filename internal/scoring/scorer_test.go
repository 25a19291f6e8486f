package scoring_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/scoring"
)

var _ = Describe("Score", func() {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	It("combines engagement weights with all bonuses", func() {
		post := model.Post{
			Text:         "What would you build if hosting were free?",
			LikeCount:    100,
			RetweetCount: 10,
			ReplyCount:   5,
			CreatedAt:    now.Add(-1 * time.Hour),
			Author:       model.PostAuthor{FollowerCount: 200_000},
		}

		// (100*0.5 + 10*2 + 5*1) * 1.5 * 1.3 * 1.2
		Expect(scoring.Score(post, now)).To(BeNumerically("~", 339.3, 1e-9))
	})

	It("is stable across repeated calls", func() {
		post := model.Post{
			Text:         "Thoughts on this?",
			LikeCount:    42,
			RetweetCount: 7,
			ReplyCount:   3,
			CreatedAt:    now.Add(-90 * time.Minute),
			Author:       model.PostAuthor{FollowerCount: 5_000},
		}

		first := scoring.Score(post, now)
		for i := 0; i < 100; i++ {
			Expect(scoring.Score(post, now)).To(Equal(first))
		}
	})

	It("applies no age bonus past six hours", func() {
		post := model.Post{LikeCount: 10, CreatedAt: now.Add(-7 * time.Hour)}
		Expect(scoring.Score(post, now)).To(Equal(5.0))
	})

	It("applies the smaller age bonus between two and six hours", func() {
		post := model.Post{LikeCount: 10, CreatedAt: now.Add(-3 * time.Hour)}
		Expect(scoring.Score(post, now)).To(BeNumerically("~", 6.0, 1e-9))
	})

	It("never decreases when retweets increase", func() {
		base := model.Post{
			Text:         "A question? With reach.",
			LikeCount:    30,
			ReplyCount:   4,
			CreatedAt:    now.Add(-30 * time.Minute),
			Author:       model.PostAuthor{FollowerCount: 250_000},
		}

		prev := scoring.Score(base, now)
		for rt := 1; rt <= 50; rt++ {
			p := base
			p.RetweetCount = rt
			s := scoring.Score(p, now)
			Expect(s).To(BeNumerically(">=", prev))
			prev = s
		}
	})

	It("does not apply the reach bonus at exactly the threshold", func() {
		at := model.Post{LikeCount: 10, CreatedAt: now.Add(-8 * time.Hour), Author: model.PostAuthor{FollowerCount: 100_000}}
		above := at
		above.Author.FollowerCount = 100_001

		Expect(scoring.Score(at, now)).To(Equal(5.0))
		Expect(scoring.Score(above, now)).To(BeNumerically("~", 6.0, 1e-9))
	})
})
