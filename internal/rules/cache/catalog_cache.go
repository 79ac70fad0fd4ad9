package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

const (
	catalogKeyPrefix = "rules:catalog:" // rules:catalog:{area}:{tab}:{with|without}
)

// CatalogCache keeps per-scope catalog listings in Redis so repeated
// section switches don't hit postgres every time. Writes to a scope
// invalidate both the with-templates and without-templates entries.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) key(scope domain.Scope, includeTemplates bool) string {
	suffix := "without"
	if includeTemplates {
		suffix = "with"
	}
	return fmt.Sprintf("%s%s:%s:%s", catalogKeyPrefix, scope.AreaID, scope.TabID, suffix)
}

// Get returns the cached catalog for a scope, or ok=false on miss.
func (c *CatalogCache) Get(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, bool, error) {
	data, err := c.client.Get(ctx, c.key(scope, includeTemplates)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var rules []domain.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return rules, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, scope domain.Scope, includeTemplates bool, rules []domain.Rule) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(scope, includeTemplates), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops both cached variants for a scope.
func (c *CatalogCache) Invalidate(ctx context.Context, scope domain.Scope) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.key(scope, true))
	pipe.Del(ctx, c.key(scope, false))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Sweep deletes every catalog entry. The cron scheduler runs this so
// out-of-band template changes eventually reach cached listings.
func (c *CatalogCache) Sweep(ctx context.Context) (int, error) {
	var deleted int
	iter := c.client.Scan(ctx, 0, catalogKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("cache sweep: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache sweep scan: %w", err)
	}
	return deleted, nil
}
