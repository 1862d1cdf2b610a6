// Package refresher periodically re-synchronizes the session with the
// server: it asks the server to sweep for overdue checkouts and then reloads
// every collection.
package refresher

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/libtool/internal/api"
)

// Sweeper triggers the server-side overdue check. Satisfied by *api.Client.
type Sweeper interface {
	CheckOverdue(ctx context.Context) (*api.OverdueSweep, error)
}

// Reloader refreshes the session store. Satisfied by *controller.Controller.
type Reloader interface {
	ReloadAll(ctx context.Context) error
}

// Refresher runs the refresh cycle on a cron schedule.
type Refresher struct {
	sweeper  Sweeper
	reloader Reloader
	schedule string
	enabled  bool

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// New creates a refresher with the given cron schedule.
func New(sweeper Sweeper, reloader Reloader, schedule string, enabled bool) *Refresher {
	return &Refresher{
		sweeper:  sweeper,
		reloader: reloader,
		schedule: schedule,
		enabled:  enabled,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if refresh is enabled.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return nil
	}
	if !r.enabled {
		log.Info().Msg("periodic refresh disabled")
		return nil
	}

	entryID, err := r.cron.AddFunc(r.schedule, func() {
		r.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}
	r.entryID = entryID

	r.cron.Start()
	r.isRunning = true
	log.Info().Str("schedule", r.schedule).Msg("periodic refresh started")
	return nil
}

// Stop halts the scheduler. Safe to call when not running.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}
	r.cron.Stop()
	r.isRunning = false
	log.Info().Msg("periodic refresh stopped")
}

// RunOnce performs a single refresh cycle: overdue sweep, then full reload.
// A failed sweep does not block the reload; the session still converges to
// whatever the server has.
func (r *Refresher) RunOnce(ctx context.Context) {
	sweep, err := r.sweeper.CheckOverdue(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("overdue sweep failed")
	} else if sweep.UpdatedCount > 0 {
		log.Info().Int("updated", sweep.UpdatedCount).Msg("checkouts flagged overdue")
	}

	if err := r.reloader.ReloadAll(ctx); err != nil {
		log.Warn().Err(err).Msg("scheduled reload failed")
	}
}
