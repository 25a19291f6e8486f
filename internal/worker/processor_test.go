package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/queue"
	"replyloop.app/engine/internal/store"
	"replyloop.app/engine/internal/worker"
)

type fakeAccountStore struct {
	accounts []model.MonitoredAccount
	err      error
}

func (f *fakeAccountStore) Create(ctx context.Context, a *model.MonitoredAccount) error { return nil }
func (f *fakeAccountStore) Delete(ctx context.Context, id, userID int64) error          { return nil }
func (f *fakeAccountStore) ListByUser(ctx context.Context, userID int64) ([]model.MonitoredAccount, error) {
	return f.accounts, f.err
}
func (f *fakeAccountStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	return len(f.accounts), nil
}

type fakeProfileStore struct {
	profile *model.VoiceProfile
	err     error
}

func (f *fakeProfileStore) GetByUser(ctx context.Context, userID int64) (*model.VoiceProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}
func (f *fakeProfileStore) Upsert(ctx context.Context, p *model.VoiceProfile) error { return nil }

type fakeSentStore struct {
	recent    []string
	added     []string
	addedAt   time.Time
	addErr    error
	pruned    bool
	prunedCut time.Time
}

func (f *fakeSentStore) Add(ctx context.Context, userID int64, postIDs []string, sentAt time.Time) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, postIDs...)
	f.addedAt = sentAt
	return nil
}
func (f *fakeSentStore) ListRecentIDs(ctx context.Context, userID int64, since time.Time) ([]string, error) {
	return f.recent, nil
}
func (f *fakeSentStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	f.pruned = true
	f.prunedCut = olderThan
	return 0, nil
}

type fakeStores struct {
	accounts *fakeAccountStore
	profiles *fakeProfileStore
	sent     *fakeSentStore
}

func (f *fakeStores) Accounts() store.AccountStore           { return f.accounts }
func (f *fakeStores) VoiceProfiles() store.VoiceProfileStore { return f.profiles }
func (f *fakeStores) SentPosts() store.SentPostStore         { return f.sent }

type fakeFinder struct {
	opportunities []model.Opportunity
	calls         int
	lastProfile   model.VoiceProfile
	lastExcluded  []string
}

func (f *fakeFinder) FindOpportunities(ctx context.Context, accounts []model.MonitoredAccount, profile model.VoiceProfile, maxPerAccount int, skipPolitical bool, excludedPostIDs []string) []model.Opportunity {
	f.calls++
	f.lastProfile = profile
	f.lastExcluded = excludedPostIDs
	return f.opportunities
}

type fakeDeliverer struct {
	delivered []model.Digest
	err       error
}

func (f *fakeDeliverer) Deliver(ctx context.Context, d model.Digest) error {
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, d)
	return nil
}

var _ = Describe("Processor", func() {
	var (
		stores    *fakeStores
		finder    *fakeFinder
		deliverer *fakeDeliverer
		processor *worker.Processor
		task      queue.Message
	)

	BeforeEach(func() {
		stores = &fakeStores{
			accounts: &fakeAccountStore{accounts: []model.MonitoredAccount{{ID: 1, UserID: 7, Handle: "alice"}}},
			profiles: &fakeProfileStore{profile: &model.VoiceProfile{UserID: 7, Bio: "Writes about infra."}},
			sent:     &fakeSentStore{recent: []string{"old1"}},
		}
		finder = &fakeFinder{opportunities: []model.Opportunity{{PostID: "p1"}, {PostID: "p2"}}}
		deliverer = &fakeDeliverer{}
		processor = worker.NewProcessor(stores, finder, deliverer, worker.ProcessorConfig{
			MaxPerAccount:   20,
			SkipPolitical:   true,
			RetentionWindow: 90 * 24 * time.Hour,
		})
		task = queue.Message{ID: "1-0", RunID: 42, UserID: 7, Attempt: 1}
	})

	It("delivers a digest and records the sent posts", func() {
		Expect(processor.Process(context.Background(), task)).To(Succeed())

		Expect(deliverer.delivered).To(HaveLen(1))
		Expect(deliverer.delivered[0].RunID).To(Equal(int64(42)))
		Expect(deliverer.delivered[0].Opportunities).To(HaveLen(2))
		Expect(stores.sent.added).To(Equal([]string{"p1", "p2"}))
		Expect(stores.sent.pruned).To(BeTrue())
	})

	It("passes previously sent ids to the finder", func() {
		Expect(processor.Process(context.Background(), task)).To(Succeed())

		Expect(finder.lastExcluded).To(Equal([]string{"old1"}))
	})

	It("skips users with no monitored accounts", func() {
		stores.accounts.accounts = nil

		Expect(processor.Process(context.Background(), task)).To(Succeed())

		Expect(finder.calls).To(BeZero())
		Expect(deliverer.delivered).To(BeEmpty())
	})

	It("runs without drafts when the user has no voice profile", func() {
		stores.profiles.err = store.ErrNotFound

		Expect(processor.Process(context.Background(), task)).To(Succeed())

		Expect(finder.calls).To(Equal(1))
		Expect(finder.lastProfile.HasBio()).To(BeFalse())
		Expect(deliverer.delivered).To(HaveLen(1))
	})

	It("treats an empty run as success and skips delivery", func() {
		finder.opportunities = nil

		Expect(processor.Process(context.Background(), task)).To(Succeed())

		Expect(deliverer.delivered).To(BeEmpty())
		Expect(stores.sent.added).To(BeEmpty())
	})

	It("fails the task when delivery fails", func() {
		deliverer.err = errors.New("smtp down")

		Expect(processor.Process(context.Background(), task)).NotTo(Succeed())

		Expect(stores.sent.added).To(BeEmpty())
	})

	It("does not fail the task when recording sent posts fails after delivery", func() {
		stores.sent.addErr = errors.New("pg down")

		Expect(processor.Process(context.Background(), task)).To(Succeed())

		Expect(deliverer.delivered).To(HaveLen(1))
	})

	It("surfaces store errors when loading accounts", func() {
		stores.accounts.err = errors.New("pg down")

		Expect(processor.Process(context.Background(), task)).NotTo(Succeed())
	})
})
