package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orplan/orplan/internal/domain/surgery"
)

// WindowFunc reports the window the poller should keep fresh.
type WindowFunc func() (hospitalID uuid.UUID, rng Range, active bool)

// Poller refetches the active window on a fixed interval so edits made
// by other users converge within one poll plus a round trip. This is the
// whole consistency story: no push invalidation.
type Poller struct {
	store    SurgeryStore
	rec      *Reconciler
	window   WindowFunc
	interval time.Duration
	log      zerolog.Logger
	notify   func([]*surgery.Surgery)
}

func NewPoller(store SurgeryStore, rec *Reconciler, window WindowFunc, interval time.Duration, log zerolog.Logger) *Poller {
	return &Poller{
		store:    store,
		rec:      rec,
		window:   window,
		interval: interval,
		log:      log,
	}
}

// OnRefresh registers a hook invoked with each successful fetch.
func (p *Poller) OnRefresh(fn func([]*surgery.Surgery)) { p.notify = fn }

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info().Dur("interval", p.interval).Msg("schedule poller started")
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("schedule poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	hospitalID, rng, active := p.window()
	if !active {
		return
	}
	surgeries, err := p.store.ListByRange(ctx, hospitalID, rng.Start, rng.End)
	if err != nil {
		// Transient store failures are expected; the next tick retries.
		p.log.Warn().Err(err).Msg("schedule poll failed")
		return
	}
	p.rec.Refresh(surgeries)
	if p.notify != nil {
		p.notify(surgeries)
	}
}
