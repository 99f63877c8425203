//go:build linux || darwin

package diskstat

import (
	"golang.org/x/sys/unix"
)

// StatfsSource calls statfs(2) directly.
type StatfsSource struct{}

// Usage returns total and free bytes for path.
// Free is derived from the blocks available to unprivileged users.
func (StatfsSource) Usage(path string) (Usage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Usage{}, err
	}

	// Bsize is int64 on linux and uint32 on darwin.
	bsize := int64(stat.Bsize) //nolint:unconvert // platform dependent type

	total, err := blockBytes("total", stat.Blocks, bsize)
	if err != nil {
		return Usage{}, err
	}
	free, err := blockBytes("free", stat.Bavail, bsize)
	if err != nil {
		return Usage{}, err
	}

	return Usage{TotalBytes: total, FreeBytes: free}, nil
}
