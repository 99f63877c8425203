package diskstat

import (
	"github.com/shirou/gopsutil/v3/disk"
)

// PsutilSource reads usage through gopsutil, which covers every platform it
// supports (statfs on unix, GetDiskFreeSpaceEx on windows).
type PsutilSource struct{}

// Usage returns total and free bytes for path.
// Free bytes are those available to unprivileged users.
func (PsutilSource) Usage(path string) (Usage, error) {
	stat, err := disk.Usage(path)
	if err != nil {
		return Usage{}, err
	}

	total, err := toBytes("total", stat.Total)
	if err != nil {
		return Usage{}, err
	}
	free, err := toBytes("free", stat.Free)
	if err != nil {
		return Usage{}, err
	}

	return Usage{TotalBytes: total, FreeBytes: free}, nil
}
