// Package diskstat queries a mounted filesystem for its capacity and derives
// the usage figures shown by the window and widget views.
package diskstat

import (
	"github.com/dustin/go-humanize"
)

// DiskStats is an immutable snapshot of one filesystem query.
// Build it with New so the derived fields always agree with the byte counts.
type DiskStats struct {
	TotalBytes   int64
	FreeBytes    int64
	UsedBytes    int64
	UsagePercent float64
}

// Placeholder stands in whenever the filesystem cannot be queried.
var Placeholder = DiskStats{
	TotalBytes:   500_000_000_000,
	FreeBytes:    200_000_000_000,
	UsedBytes:    300_000_000_000,
	UsagePercent: 60.0,
}

// New derives used bytes and the usage percentage from total and free bytes.
// The percentage is not clamped. A zero total yields 0 percent.
func New(total, free int64) DiskStats {
	used := total - free

	var percent float64
	if total != 0 {
		percent = float64(used) / float64(total) * 100.0
	}

	return DiskStats{
		TotalBytes:   total,
		FreeBytes:    free,
		UsedBytes:    used,
		UsagePercent: percent,
	}
}

// IsPlaceholder reports whether s is the fallback value.
func (s DiskStats) IsPlaceholder() bool {
	return s == Placeholder
}

// Severity classifies the usage percentage.
func (s DiskStats) Severity() Severity {
	return Classify(s.UsagePercent)
}

// WholePercent is the usage percentage truncated toward zero, as displayed.
func (s DiskStats) WholePercent() int {
	return int(s.UsagePercent)
}

func (s DiskStats) TotalFormatted() string { return Format(s.TotalBytes) }
func (s DiskStats) UsedFormatted() string  { return Format(s.UsedBytes) }
func (s DiskStats) FreeFormatted() string  { return Format(s.FreeBytes) }

// Format renders a byte count with decimal file-size units, e.g. "300 GB".
func Format(bytes int64) string {
	if bytes < 0 {
		// -MinInt64 overflows back to itself; uint64 of it is still the magnitude.
		return "-" + humanize.Bytes(uint64(-bytes)) //nolint:gosec // magnitude of a negative int64
	}
	return humanize.Bytes(uint64(bytes))
}
