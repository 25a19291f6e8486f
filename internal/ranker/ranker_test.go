package ranker_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/ranker"
)

type fakeFetcher struct {
	posts  map[string][]model.Post
	errs   map[string]error
	calls  []string
	counts []int
}

func (f *fakeFetcher) RecentPosts(ctx context.Context, handle string, count int) ([]model.Post, error) {
	f.calls = append(f.calls, handle)
	f.counts = append(f.counts, count)
	if err, ok := f.errs[handle]; ok {
		return nil, err
	}
	return f.posts[handle], nil
}

type fakeGenerator struct {
	drafts      map[string]string
	batchCalls  int
	lastPosts   []model.Post
	lastProfile model.VoiceProfile
	lastConc    int
}

func (g *fakeGenerator) Batch(ctx context.Context, posts []model.Post, profile model.VoiceProfile, concurrency int) map[string]string {
	g.batchCalls++
	g.lastPosts = posts
	g.lastProfile = profile
	g.lastConc = concurrency
	return g.drafts
}

var _ = Describe("Ranker", func() {
	var (
		fetcher   *fakeFetcher
		generator *fakeGenerator
		now       time.Time
		profile   model.VoiceProfile
	)

	post := func(id string, likes int, age time.Duration) model.Post {
		return model.Post{
			ID:        id,
			Text:      "Shipping incremental migrations is underrated, here is what we learned doing it.",
			URL:       "https://x.com/a/status/" + id,
			CreatedAt: now.Add(-age),
			LikeCount: likes,
			Author:    model.PostAuthor{Handle: "a", DisplayName: "A"},
		}
	}

	account := func(handle string) model.MonitoredAccount {
		return model.MonitoredAccount{ID: 1, UserID: 7, Handle: handle}
	}

	newRanker := func() *ranker.Ranker {
		return ranker.New(ranker.Config{
			Fetcher:   fetcher,
			Generator: generator,
			Now:       func() time.Time { return now },
		})
	}

	BeforeEach(func() {
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		fetcher = &fakeFetcher{posts: map[string][]model.Post{}, errs: map[string]error{}}
		generator = &fakeGenerator{drafts: map[string]string{}}
		profile = model.VoiceProfile{UserID: 7, Bio: "Staff engineer writing about infra."}
	})

	It("ranks surviving posts across accounts, highest score first", func() {
		fetcher.posts["alice"] = []model.Post{post("p1", 10, 12*time.Hour), post("p2", 500, 12*time.Hour)}
		fetcher.posts["bob"] = []model.Post{post("p3", 100, 12*time.Hour)}

		opps := newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice"), account("bob")},
			profile, 10, false, nil)

		Expect(opps).To(HaveLen(3))
		Expect(opps[0].PostID).To(Equal("p2"))
		Expect(opps[1].PostID).To(Equal("p3"))
		Expect(opps[2].PostID).To(Equal("p1"))
		Expect(opps[0].Score).To(BeNumerically(">", opps[1].Score))
	})

	It("skips a failing account and still processes the rest", func() {
		fetcher.posts["alice"] = []model.Post{post("p1", 10, time.Hour)}
		fetcher.errs["broken"] = errors.New("fetch posts: status 429")
		fetcher.posts["carol"] = []model.Post{post("p2", 20, time.Hour)}

		opps := newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice"), account("broken"), account("carol")},
			profile, 10, false, nil)

		Expect(opps).To(HaveLen(2))
		Expect(fetcher.calls).To(Equal([]string{"alice", "broken", "carol"}))
	})

	It("returns an empty result when every account fails", func() {
		fetcher.errs["alice"] = errors.New("boom")
		fetcher.errs["bob"] = errors.New("boom")

		opps := newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice"), account("bob")},
			profile, 10, false, nil)

		Expect(opps).To(BeEmpty())
		Expect(generator.batchCalls).To(BeZero())
	})

	It("drops posts older than 24 hours", func() {
		fetcher.posts["alice"] = []model.Post{
			post("fresh", 10, 23*time.Hour),
			post("stale", 1000, 25*time.Hour),
		}

		opps := newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice")}, profile, 10, false, nil)

		Expect(opps).To(HaveLen(1))
		Expect(opps[0].PostID).To(Equal("fresh"))
	})

	It("drops posts the user was already sent", func() {
		fetcher.posts["alice"] = []model.Post{post("seen", 100, time.Hour), post("new", 10, time.Hour)}

		opps := newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice")}, profile, 10, false, []string{"seen"})

		Expect(opps).To(HaveLen(1))
		Expect(opps[0].PostID).To(Equal("new"))
	})

	It("filters political posts when the profile opts out of them", func() {
		political := post("pol", 100, time.Hour)
		political.Text = "The upcoming election will decide everything about platform regulation this year."
		fetcher.posts["alice"] = []model.Post{political, post("ok", 10, time.Hour)}

		opps := newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice")}, profile, 10, true, nil)

		Expect(opps).To(HaveLen(1))
		Expect(opps[0].PostID).To(Equal("ok"))
	})

	It("caps the result at ten opportunities globally", func() {
		var posts []model.Post
		for i := 0; i < 15; i++ {
			posts = append(posts, post(fmt.Sprintf("p%02d", i), 10+i, time.Hour))
		}
		fetcher.posts["alice"] = posts

		opps := newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice")}, profile, 20, false, nil)

		Expect(opps).To(HaveLen(ranker.MaxOpportunities))
		Expect(opps[0].PostID).To(Equal("p14"))
	})

	Describe("draft generation", func() {
		It("attaches drafts from the generator to the ranked set", func() {
			fetcher.posts["alice"] = []model.Post{post("p1", 10, time.Hour), post("p2", 20, time.Hour)}
			generator.drafts = map[string]string{"p1": "Strong agree, we saw the same."}

			opps := newRanker().FindOpportunities(context.Background(),
				[]model.MonitoredAccount{account("alice")}, profile, 10, false, nil)

			Expect(generator.batchCalls).To(Equal(1))
			Expect(generator.lastConc).To(Equal(3))
			Expect(generator.lastPosts).To(HaveLen(2))

			byID := map[string]model.Opportunity{}
			for _, o := range opps {
				byID[o.PostID] = o
			}
			Expect(byID["p1"].DraftReply).NotTo(BeNil())
			Expect(*byID["p1"].DraftReply).To(Equal("Strong agree, we saw the same."))
			Expect(byID["p2"].DraftReply).To(BeNil())
		})

		It("skips drafting entirely when the profile has no bio", func() {
			fetcher.posts["alice"] = []model.Post{post("p1", 10, time.Hour)}
			profile.Bio = ""

			opps := newRanker().FindOpportunities(context.Background(),
				[]model.MonitoredAccount{account("alice")}, profile, 10, false, nil)

			Expect(opps).To(HaveLen(1))
			Expect(opps[0].DraftReply).To(BeNil())
			Expect(generator.batchCalls).To(BeZero())
		})
	})

	It("passes the per-account post count through to the fetcher", func() {
		fetcher.posts["alice"] = nil

		newRanker().FindOpportunities(context.Background(),
			[]model.MonitoredAccount{account("alice")}, profile, 25, false, nil)

		Expect(fetcher.counts).To(Equal([]int{25}))
	})
})
