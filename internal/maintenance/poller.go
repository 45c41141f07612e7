// Package maintenance polls the backend's maintenance-mode status.
package maintenance

import (
	"context"
	"sync"
	"time"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/schedule"
)

// DefaultInterval is the time between two status checks.
const DefaultInterval = 30 * time.Second

// StatusFunc fetches the current maintenance status.
type StatusFunc func(ctx context.Context) (domain.Maintenance, error)

// Option configures a Poller.
type Option func(*Poller)

// WithScheduler sets the scheduler driving the polls.
func WithScheduler(s schedule.Scheduler) Option {
	return func(p *Poller) {
		if s != nil {
			p.scheduler = s
		}
	}
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTimeout bounds every fetch.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		p.timeout = d
	}
}

// WithOnChange registers a callback invoked after the first successful check
// and whenever the status changes afterwards.
func WithOnChange(fn func(domain.Maintenance)) Option {
	return func(p *Poller) {
		p.onChange = fn
	}
}

// Poller checks the maintenance status at a fixed interval. Failed checks
// keep the last known status.
type Poller struct {
	fetch     StatusFunc
	scheduler schedule.Scheduler
	interval  time.Duration
	timeout   time.Duration
	onChange  func(domain.Maintenance)

	mu      sync.Mutex
	status  domain.Maintenance
	checked bool
	cancel  schedule.Cancel
}

// New creates a stopped poller.
func New(fetch StatusFunc, opts ...Option) *Poller {
	p := &Poller{
		fetch:     fetch,
		scheduler: schedule.New(),
		interval:  DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start checks once and then every interval until Stop is called or ctx is done.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	p.cancel = p.scheduler.Every(p.interval, func() {
		if ctx.Err() != nil {
			p.Stop()
			return
		}
		_, _ = p.Check(ctx)
	})
	p.mu.Unlock()

	logging.Debug("maintenance: polling started", "interval", p.interval.String())
	_, _ = p.Check(ctx)
}

// Stop cancels future checks.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
		logging.Debug("maintenance: polling stopped")
	}
}

// Running reports whether checks are scheduled.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Check fetches the status now.
func (p *Poller) Check(ctx context.Context) (domain.Maintenance, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	status, err := p.fetch(ctx)
	if err != nil {
		logging.Warn("maintenance: status check failed", "error", err)
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.status, err
	}

	p.mu.Lock()
	changed := !p.checked || status != p.status
	p.status = status
	p.checked = true
	p.mu.Unlock()

	if changed {
		logging.Info("maintenance: status changed", "maintenance_mode", status.MaintenanceMode)
		if p.onChange != nil {
			p.onChange(status)
		}
	}
	return status, nil
}

// Status returns the last known status and whether any check succeeded yet.
func (p *Poller) Status() (domain.Maintenance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.checked
}

// Active reports whether the site is known to be in maintenance mode.
func (p *Poller) Active() bool {
	status, checked := p.Status()
	return checked && status.MaintenanceMode
}
