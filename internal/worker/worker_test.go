package worker_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"replyloop.app/engine/internal/queue"
	"replyloop.app/engine/internal/worker"
)

type fakeConsumer struct {
	mu      sync.Mutex
	pending []queue.Message

	acked    []queue.Message
	requeued []queue.Message
	dlq      []queue.Message
}

func (f *fakeConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	f.mu.Lock()
	msgs := f.pending
	f.pending = nil
	f.mu.Unlock()
	if len(msgs) == 0 {
		// Stand in for the blocking stream read so the loop doesn't spin.
		time.Sleep(time.Millisecond)
	}
	return msgs, nil
}

func (f *fakeConsumer) Ack(ctx context.Context, msg queue.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, msg)
	return nil
}

func (f *fakeConsumer) Requeue(ctx context.Context, msg queue.Message, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requeued = append(f.requeued, msg)
	return nil
}

func (f *fakeConsumer) SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dlq = append(f.dlq, msg)
	return nil
}

func (f *fakeConsumer) snapshot() (acked, requeued, dlq []queue.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]queue.Message(nil), f.acked...),
		append([]queue.Message(nil), f.requeued...),
		append([]queue.Message(nil), f.dlq...)
}

type stubProcessor struct {
	err   error
	panic bool
}

func (s *stubProcessor) Process(ctx context.Context, task queue.Message) error {
	if s.panic {
		panic("boom")
	}
	return s.err
}

var _ = Describe("Worker", func() {
	var consumer *fakeConsumer

	msg := func(attempt int) queue.Message {
		return queue.Message{ID: "1-0", RunID: 42, UserID: 7, Attempt: attempt}
	}

	runOne := func(processor worker.RunProcessor, m queue.Message, done func() bool) {
		consumer.pending = []queue.Message{m}
		w := worker.New(consumer, processor, worker.Config{MaxAttempts: 3})

		go w.Run(context.Background())
		Eventually(done, time.Second, 5*time.Millisecond).Should(BeTrue())
		w.Stop()
	}

	BeforeEach(func() {
		consumer = &fakeConsumer{}
	})

	It("acks a run that processes cleanly", func() {
		runOne(&stubProcessor{}, msg(1), func() bool {
			acked, _, _ := consumer.snapshot()
			return len(acked) == 1
		})

		acked, requeued, dlq := consumer.snapshot()
		Expect(acked).To(HaveLen(1))
		Expect(acked[0].RunID).To(Equal(int64(42)))
		Expect(requeued).To(BeEmpty())
		Expect(dlq).To(BeEmpty())
	})

	It("requeues a failed run below the attempt ceiling", func() {
		runOne(&stubProcessor{err: errors.New("delivery down")}, msg(1), func() bool {
			_, requeued, _ := consumer.snapshot()
			return len(requeued) == 1
		})

		acked, requeued, dlq := consumer.snapshot()
		Expect(acked).To(BeEmpty())
		Expect(requeued).To(HaveLen(1))
		Expect(requeued[0].Attempt).To(Equal(1))
		Expect(dlq).To(BeEmpty())
	})

	It("moves a run at the attempt ceiling to the DLQ", func() {
		runOne(&stubProcessor{err: errors.New("delivery down")}, msg(3), func() bool {
			_, _, dlq := consumer.snapshot()
			return len(dlq) == 1
		})

		acked, requeued, dlq := consumer.snapshot()
		Expect(acked).To(BeEmpty())
		Expect(requeued).To(BeEmpty())
		Expect(dlq).To(HaveLen(1))
		Expect(dlq[0].Attempt).To(Equal(3))
	})

	It("treats a processor panic as a failed attempt", func() {
		runOne(&stubProcessor{panic: true}, msg(1), func() bool {
			_, requeued, _ := consumer.snapshot()
			return len(requeued) == 1
		})

		_, requeued, dlq := consumer.snapshot()
		Expect(requeued).To(HaveLen(1))
		Expect(dlq).To(BeEmpty())
	})
})
