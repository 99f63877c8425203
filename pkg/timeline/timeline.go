// Package timeline turns disk queries into dated widget entries and drives
// their periodic refresh.
package timeline

import (
	"time"

	"diskinfo/pkg/diskstat"
)

// DefaultRefreshInterval matches the shortest reload interval a desktop
// widget host grants.
const DefaultRefreshInterval = 15 * time.Minute

// Entry is one data point shown by a widget.
type Entry struct {
	Date  time.Time
	Stats diskstat.DiskStats
}

// ValidUntil returns when the entry should be replaced.
func (e Entry) ValidUntil(interval time.Duration) time.Time {
	return e.Date.Add(interval)
}

// Timeline is a batch of entries with the time the host should ask again.
type Timeline struct {
	Entries    []Entry
	NextUpdate time.Time
}

// Provider builds entries from a diskstat.Provider.
type Provider struct {
	stats    diskstat.Provider
	interval time.Duration
	now      func() time.Time
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// NewProvider returns a Provider refreshing every interval.
// A non-positive interval selects DefaultRefreshInterval.
func NewProvider(stats diskstat.Provider, interval time.Duration, opts ...Option) *Provider {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	p := &Provider{
		stats:    stats,
		interval: interval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the refresh cadence.
func (p *Provider) Interval() time.Duration {
	return p.interval
}

// Placeholder returns an entry holding diskstat.Placeholder, for hosts that
// need something to draw before the first query.
func (p *Provider) Placeholder() Entry {
	return Entry{Date: p.now(), Stats: diskstat.Placeholder}
}

// Snapshot returns an entry holding a fresh query.
func (p *Provider) Snapshot() Entry {
	return Entry{Date: p.now(), Stats: p.stats.Query()}
}

// Timeline returns a single fresh entry and asks to be reloaded one interval later.
func (p *Provider) Timeline() Timeline {
	entry := p.Snapshot()
	return Timeline{
		Entries:    []Entry{entry},
		NextUpdate: entry.ValidUntil(p.interval),
	}
}
