package timeline

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"diskinfo/pkg/diskstat"
)

// countingProvider returns fixed stats and counts queries
type countingProvider struct {
	mu    sync.Mutex
	stats diskstat.DiskStats
	calls int
}

func (c *countingProvider) Query() diskstat.DiskStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.stats
}

func (c *countingProvider) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// TimelineTestSuite tests Provider with a fixed clock
type TimelineTestSuite struct {
	suite.Suite
	now      time.Time
	stats    *countingProvider
	provider *Provider
}

// SetupTest builds a provider over a 1 TB volume at a fixed instant
func (s *TimelineTestSuite) SetupTest() {
	s.now = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	s.stats = &countingProvider{stats: diskstat.New(1_000_000_000_000, 400_000_000_000)}
	s.provider = NewProvider(s.stats, 0, WithClock(func() time.Time { return s.now }))
}

// TestDefaultInterval tests that a zero interval selects 15 minutes
func (s *TimelineTestSuite) TestDefaultInterval() {
	s.Equal(15*time.Minute, s.provider.Interval())
	s.Equal(time.Hour, NewProvider(s.stats, time.Hour).Interval())
}

// TestPlaceholder tests that the placeholder entry does not query the disk
func (s *TimelineTestSuite) TestPlaceholder() {
	entry := s.provider.Placeholder()

	s.Equal(s.now, entry.Date)
	s.Equal(diskstat.Placeholder, entry.Stats)
	s.Equal(0, s.stats.Calls())
}

// TestSnapshot tests that a snapshot queries once
func (s *TimelineTestSuite) TestSnapshot() {
	entry := s.provider.Snapshot()

	s.Equal(s.now, entry.Date)
	s.Equal(int64(600_000_000_000), entry.Stats.UsedBytes)
	s.Equal(1, s.stats.Calls())
}

// TestTimeline tests the single-entry timeline and its reload time
func (s *TimelineTestSuite) TestTimeline() {
	tl := s.provider.Timeline()

	s.Require().Len(tl.Entries, 1)
	s.Equal(s.now, tl.Entries[0].Date)
	s.Equal(s.now.Add(15*time.Minute), tl.NextUpdate)
	s.Equal(tl.NextUpdate, tl.Entries[0].ValidUntil(s.provider.Interval()))
	s.Equal(1, s.stats.Calls())
}

// TestEachCallQueriesAgain tests that nothing is cached between calls
func (s *TimelineTestSuite) TestEachCallQueriesAgain() {
	s.provider.Snapshot()
	s.provider.Timeline()
	s.provider.Snapshot()
	s.Equal(3, s.stats.Calls())
}

func TestTimelineSuite(t *testing.T) {
	suite.Run(t, new(TimelineTestSuite))
}
