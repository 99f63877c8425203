package models

import (
	"time"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/timeline"
)

// DiskInfo represents one disk query as served over HTTP.
type DiskInfo struct {
	MountPoint     string            `json:"mount_point,omitempty"`
	TotalBytes     int64             `json:"total_bytes"`
	FreeBytes      int64             `json:"free_bytes"`
	UsedBytes      int64             `json:"used_bytes"`
	UsagePercent   float64           `json:"usage_percent"`
	TotalFormatted string            `json:"total_formatted"`
	FreeFormatted  string            `json:"free_formatted"`
	UsedFormatted  string            `json:"used_formatted"`
	Severity       diskstat.Severity `json:"severity"`
	Placeholder    bool              `json:"placeholder"`
}

// NewDiskInfo converts stats into their wire form.
func NewDiskInfo(mountPoint string, stats diskstat.DiskStats) DiskInfo {
	return DiskInfo{
		MountPoint:     mountPoint,
		TotalBytes:     stats.TotalBytes,
		FreeBytes:      stats.FreeBytes,
		UsedBytes:      stats.UsedBytes,
		UsagePercent:   stats.UsagePercent,
		TotalFormatted: stats.TotalFormatted(),
		FreeFormatted:  stats.FreeFormatted(),
		UsedFormatted:  stats.UsedFormatted(),
		Severity:       stats.Severity(),
		Placeholder:    stats.IsPlaceholder(),
	}
}

// Stats rebuilds the stats from the byte counts, recomputing derived values
// rather than trusting the ones on the wire.
func (d DiskInfo) Stats() diskstat.DiskStats {
	if d.Placeholder {
		return diskstat.Placeholder
	}
	return diskstat.New(d.TotalBytes, d.FreeBytes)
}

// Entry represents a dated widget data point.
type Entry struct {
	Date time.Time `json:"date"`
	Disk DiskInfo  `json:"disk"`
}

// NewEntry converts a timeline entry into its wire form.
func NewEntry(mountPoint string, e timeline.Entry) Entry {
	return Entry{Date: e.Date, Disk: NewDiskInfo(mountPoint, e.Stats)}
}

// TimelineEntry converts back into a timeline entry.
func (e Entry) TimelineEntry() timeline.Entry {
	return timeline.Entry{Date: e.Date, Stats: e.Disk.Stats()}
}

// Timeline represents a widget timeline with its reload time.
type Timeline struct {
	Entries    []Entry   `json:"entries"`
	NextUpdate time.Time `json:"next_update"`
}

// NewTimeline converts a timeline into its wire form.
func NewTimeline(mountPoint string, tl timeline.Timeline) Timeline {
	entries := make([]Entry, 0, len(tl.Entries))
	for _, e := range tl.Entries {
		entries = append(entries, NewEntry(mountPoint, e))
	}
	return Timeline{Entries: entries, NextUpdate: tl.NextUpdate}
}
