package ranker

import (
	"context"
	"time"
)

// Pacer spaces out consecutive account fetches. The social-data API meters
// requests, so the delay between accounts is a correctness requirement, not
// a tuning knob; tests swap in a no-op.
type Pacer interface {
	Wait(ctx context.Context) error
}

type fixedIntervalPacer struct {
	interval time.Duration
	started  bool
}

// NewFixedIntervalPacer returns a Pacer that sleeps for the interval between
// consecutive Wait calls. The first call returns immediately.
func NewFixedIntervalPacer(interval time.Duration) Pacer {
	return &fixedIntervalPacer{interval: interval}
}

func (p *fixedIntervalPacer) Wait(ctx context.Context) error {
	if !p.started {
		p.started = true
		return nil
	}

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer never waits. For tests and one-shot CLI runs against stub sources.
type NopPacer struct{}

func (NopPacer) Wait(context.Context) error { return nil }
