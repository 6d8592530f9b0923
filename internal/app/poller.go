package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
	"github.com/five82/foreman/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// Poller refreshes the employee and branch directory into a Store.
type Poller struct {
	Store     *state.Store
	Directory factory.Directory
	CompanyID string
	Interval  time.Duration
	Logger    zerolog.Logger
}

// Start launches the background refresh loop and returns immediately. After
// a failure the next attempt is delayed with exponential backoff.
func (p *Poller) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			p.Refresh(ctx)
			failures := p.Store.Snapshot().ConsecutiveFailures
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// Refresh fetches the directory once and records the outcome in the store.
func (p *Poller) Refresh(ctx context.Context) {
	employees, err := p.Directory.ListEmployees(ctx, p.CompanyID)
	if err != nil {
		p.Store.Update(nil, nil, err)
		p.Logger.Warn().Err(err).Msg("employee directory poll failed")
		return
	}
	branches, err := p.Directory.ListBranches(ctx, p.CompanyID)
	if err != nil {
		p.Store.Update(nil, nil, err)
		p.Logger.Warn().Err(err).Msg("branch directory poll failed")
		return
	}
	p.Store.Update(employees, branches, nil)
	p.Logger.Debug().Int("employees", len(employees)).Int("branches", len(branches)).Msg("directory refreshed")
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
