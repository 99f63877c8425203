//go:build !linux && !darwin

package diskstat

// StatfsSource is not available on this platform.
type StatfsSource struct{}

// Usage always fails with ErrUnsupported.
func (StatfsSource) Usage(string) (Usage, error) {
	return Usage{}, ErrUnsupported
}
