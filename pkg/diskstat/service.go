package diskstat

import (
	"fmt"

	"diskinfo/pkg/log"
)

// Provider yields disk statistics and never fails.
type Provider interface {
	Query() DiskStats
}

// QueryError is returned when the filesystem at Path could not be queried.
type QueryError struct {
	Path string
	Err  error
}

func (e *QueryError) Error() string {
	return "query " + e.Path + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Service queries one mount point through a Source. It holds no state
// between calls, so a single value can be shared by every caller.
type Service struct {
	source Source
	path   string
}

// NewService returns a Service reading path through source.
// A nil source selects PsutilSource and an empty path the root volume.
func NewService(source Source, path string) *Service {
	if source == nil {
		source = PsutilSource{}
	}
	if path == "" {
		path = DefaultMountPoint
	}
	return &Service{source: source, path: path}
}

// Path returns the mount point being queried.
func (s *Service) Path() string {
	return s.path
}

// TryQuery queries the filesystem and reports any failure.
func (s *Service) TryQuery() (DiskStats, error) {
	usage, err := s.source.Usage(s.path)
	if err != nil {
		return DiskStats{}, &QueryError{Path: s.path, Err: err}
	}

	if usage.TotalBytes < 0 || usage.FreeBytes < 0 {
		return DiskStats{}, &QueryError{
			Path: s.path,
			Err:  fmt.Errorf("%w: total %d, free %d", ErrInvalidUsage, usage.TotalBytes, usage.FreeBytes),
		}
	}

	return New(usage.TotalBytes, usage.FreeBytes), nil
}

// Query queries the filesystem, substituting Placeholder on failure.
func (s *Service) Query() DiskStats {
	stats, err := s.TryQuery()
	if err != nil {
		log.Debug().Err(err).Str("mount_point", s.path).Msg("Disk query failed, using placeholder")
		return Placeholder
	}

	log.Debug().
		Str("mount_point", s.path).
		Int64("total", stats.TotalBytes).
		Int64("free", stats.FreeBytes).
		Float64("usage_percent", stats.UsagePercent).
		Msg("Disk stats")

	return stats
}
