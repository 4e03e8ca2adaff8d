// Package redis caches active campaign queries in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

var _ port.CampaignReader = (*CampaignCache)(nil)

const keyPrefix = "ads:active:"

// Client is the subset of *goredis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// CampaignCache is a read-through cache in front of QueryActiveCampaigns.
// GetCampaign always reaches the wrapped reader: selection uses it to
// re-check a pick against the live budget. Cache failures degrade to the
// wrapped reader.
type CampaignCache struct {
	next   port.CampaignReader
	client Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewCampaignCache(next port.CampaignReader, client Client, ttl time.Duration, log *slog.Logger) *CampaignCache {
	return &CampaignCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *CampaignCache) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return c.next.GetCampaign(ctx, id)
}

func (c *CampaignCache) QueryActiveCampaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	key := cacheKey(filter)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []domain.Campaign
		if err = json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		c.log.WarnContext(ctx, "dropping undecodable cache entry", slog.String("key", key), slog.Any("error", err))
	case !errors.Is(err, goredis.Nil):
		c.log.WarnContext(ctx, "campaign cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	out, err := c.next.QueryActiveCampaigns(ctx, filter)
	if err != nil {
		return nil, err
	}
	if raw, err = json.Marshal(out); err == nil {
		err = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	if err != nil {
		c.log.WarnContext(ctx, "campaign cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return out, nil
}

// cacheKey is stable for filters that differ only in ID order.
func cacheKey(filter domain.CampaignFilter) string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	if filter.PlacementType == "" {
		b.WriteString("*")
	} else {
		b.WriteString(string(filter.PlacementType))
	}
	if len(filter.IDs) > 0 {
		ids := slices.Clone(filter.IDs)
		slices.Sort(ids)
		b.WriteString(":")
		b.WriteString(strings.Join(slices.Compact(ids), ","))
	}
	return b.String()
}
