package timeline

import (
	"sync"

	"github.com/robfig/cron/v3"

	"diskinfo/pkg/log"
)

// Refresher calls Provider.Snapshot on the provider's cadence and hands each
// entry to its subscribers. The provider itself never schedules anything.
type Refresher struct {
	provider *Provider
	cron     *cron.Cron

	mu          sync.RWMutex
	subscribers []func(Entry)
	started     bool
}

// NewRefresher returns a stopped Refresher for provider.
func NewRefresher(provider *Provider) *Refresher {
	r := &Refresher{
		provider: provider,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{}),
			cron.SkipIfStillRunning(cronLogger{}),
		)),
	}
	r.cron.Schedule(cron.Every(provider.Interval()), cron.FuncJob(func() { r.RunOnce() }))
	return r
}

// Subscribe registers fn to receive every refreshed entry.
func (r *Refresher) Subscribe(fn func(Entry)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// RunOnce refreshes immediately and returns the published entry.
func (r *Refresher) RunOnce() Entry {
	entry := r.provider.Snapshot()

	r.mu.RLock()
	subscribers := make([]func(Entry), len(r.subscribers))
	copy(subscribers, r.subscribers)
	r.mu.RUnlock()

	for _, fn := range subscribers {
		fn(entry)
	}

	log.Debug().
		Time("date", entry.Date).
		Float64("usage_percent", entry.Stats.UsagePercent).
		Int("subscribers", len(subscribers)).
		Msg("Timeline refreshed")

	return entry
}

// Start publishes one entry right away, then one per interval.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	r.RunOnce()
	r.cron.Start()

	log.Info().Dur("interval", r.provider.Interval()).Msg("Timeline refresher started")
}

// Stop halts scheduling and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	r.mu.Unlock()

	<-r.cron.Stop().Done()
	log.Info().Msg("Timeline refresher stopped")
}

// cronLogger routes cron's own messages through pkg/log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
