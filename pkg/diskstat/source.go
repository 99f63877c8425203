package diskstat

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// DefaultMountPoint is the volume queried when none is configured.
const DefaultMountPoint = "/"

var (
	// ErrInvalidUsage is returned when the filesystem reports values that are
	// not usable byte counts.
	ErrInvalidUsage = errors.New("invalid filesystem usage")

	// ErrUnsupported is returned by sources that cannot run on this platform.
	ErrUnsupported = errors.New("filesystem usage unsupported on this platform")

	// ErrUnknownSource is returned by SourceByName for unrecognised names.
	ErrUnknownSource = errors.New("unknown usage source")
)

// Usage holds the raw byte counts reported for a mount point.
type Usage struct {
	TotalBytes int64
	FreeBytes  int64
}

// Source is the fallible filesystem query behind a Service.
type Source interface {
	// Usage returns total and free bytes of the filesystem mounted at path.
	Usage(path string) (Usage, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(path string) (Usage, error)

// Usage calls f(path).
func (f SourceFunc) Usage(path string) (Usage, error) {
	return f(path)
}

// Source names accepted by SourceByName.
const (
	SourcePsutil = "psutil"
	SourceStatfs = "statfs"
)

// SourceByName returns the source registered under name.
func SourceByName(name string) (Source, error) {
	switch name {
	case SourcePsutil, "":
		return PsutilSource{}, nil
	case SourceStatfs:
		return StatfsSource{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}

// toBytes converts an unsigned count reported by the OS into int64.
func toBytes(field string, v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s %d overflows int64", ErrInvalidUsage, field, v)
	}
	return int64(v), nil
}

// blockBytes multiplies a block count by the block size without overflowing.
func blockBytes(field string, blocks uint64, bsize int64) (int64, error) {
	if bsize < 0 {
		return 0, fmt.Errorf("%w: negative block size %d", ErrInvalidUsage, bsize)
	}
	hi, lo := bits.Mul64(blocks, uint64(bsize))
	if hi != 0 {
		return 0, fmt.Errorf("%w: %s overflows uint64", ErrInvalidUsage, field)
	}
	return toBytes(field, lo)
}
