package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/timeline"
)

// DiskModelTestSuite tests conversions between domain and wire types
type DiskModelTestSuite struct {
	suite.Suite
}

// TestNewDiskInfo tests derived and formatted fields
func (s *DiskModelTestSuite) TestNewDiskInfo() {
	info := NewDiskInfo("/", diskstat.New(1_000_000_000_000, 50_000_000_000))

	s.Equal("/", info.MountPoint)
	s.Equal(int64(950_000_000_000), info.UsedBytes)
	s.InDelta(95.0, info.UsagePercent, 1e-9)
	s.Equal("1.0 TB", info.TotalFormatted)
	s.Equal("50 GB", info.FreeFormatted)
	s.Equal("950 GB", info.UsedFormatted)
	s.Equal(diskstat.SeverityCritical, info.Severity)
	s.False(info.Placeholder)
}

// TestJSONShape tests the field names served to clients
func (s *DiskModelTestSuite) TestJSONShape() {
	data, err := json.Marshal(NewDiskInfo("/", diskstat.Placeholder))
	s.Require().NoError(err)

	s.JSONEq(`{
		"mount_point": "/",
		"total_bytes": 500000000000,
		"free_bytes": 200000000000,
		"used_bytes": 300000000000,
		"usage_percent": 60,
		"total_formatted": "500 GB",
		"free_formatted": "200 GB",
		"used_formatted": "300 GB",
		"severity": "normal",
		"placeholder": true
	}`, string(data))
}

// TestStatsRecomputes tests that derived values on the wire are not trusted
func (s *DiskModelTestSuite) TestStatsRecomputes() {
	info := DiskInfo{TotalBytes: 1_000, FreeBytes: 250, UsedBytes: 1, UsagePercent: 1}

	stats := info.Stats()
	s.Equal(int64(750), stats.UsedBytes)
	s.InDelta(75.0, stats.UsagePercent, 1e-9)

	s.Equal(diskstat.Placeholder, DiskInfo{Placeholder: true}.Stats())
}

// TestTimelineConversion tests entries and next update survive conversion
func (s *DiskModelTestSuite) TestTimelineConversion() {
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	tl := timeline.Timeline{
		Entries:    []timeline.Entry{{Date: now, Stats: diskstat.New(1_000, 400)}},
		NextUpdate: now.Add(15 * time.Minute),
	}

	wire := NewTimeline("/", tl)
	s.Require().Len(wire.Entries, 1)
	s.Equal(now.Add(15*time.Minute), wire.NextUpdate)
	s.Equal(tl.Entries[0], wire.Entries[0].TimelineEntry())
}

func TestDiskModelSuite(t *testing.T) {
	suite.Run(t, new(DiskModelTestSuite))
}
