package client

import (
	"context"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/log"
)

// RemoteProvider answers Query from a daemon. Like the local service it
// never fails: every error is absorbed into the placeholder.
type RemoteProvider struct {
	client *Client
}

// NewRemoteProvider wraps c as a diskstat.Provider.
func NewRemoteProvider(c *Client) *RemoteProvider {
	return &RemoteProvider{client: c}
}

// TryQuery fetches and rebuilds the daemon's stats, surfacing failures.
func (p *RemoteProvider) TryQuery(ctx context.Context) (diskstat.DiskStats, error) {
	info, err := p.client.Info(ctx)
	if err != nil {
		return diskstat.DiskStats{}, err
	}
	if info.TotalBytes < 0 || info.FreeBytes < 0 {
		return diskstat.DiskStats{}, diskstat.ErrInvalidUsage
	}
	return info.Stats(), nil
}

// Query implements diskstat.Provider.
func (p *RemoteProvider) Query() diskstat.DiskStats {
	stats, err := p.TryQuery(context.Background())
	if err != nil {
		log.Debug().Err(err).Str("url", p.client.BaseURL()).Msg("Remote disk query failed, using placeholder")
		return diskstat.Placeholder
	}
	return stats
}
