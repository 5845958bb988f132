// Package repository holds the caller-side storage for DRC reports: a redis
// cache keyed by diagram hash and a Postgres history table. The engine
// stays storage-free; these exist for the HTTP surface.
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

const (
	reportCachePrefix = "drc:report:" // drc:report:{diagram_hash} -> DRCResult JSON
	reportCacheTTL    = 24 * time.Hour
)

// ReportCache caches the latest report per diagram hash so re-checking an
// unchanged diagram skips the engine entirely.
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a ReportCache.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// DiagramHash computes the cache key for a raw diagram document.
func DiagramHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached report for a diagram hash, or ErrReportNotFound.
func (c *ReportCache) Get(ctx context.Context, diagramHash string) (*domain.DRCResult, error) {
	data, err := c.client.Get(ctx, reportCachePrefix+diagramHash).Result()
	if err == redis.Nil {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached report: %w", err)
	}
	var result domain.DRCResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached report: %w", err)
	}
	return &result, nil
}

// Set stores a report under its diagram hash with the cache TTL.
func (c *ReportCache) Set(ctx context.Context, diagramHash string, result *domain.DRCResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := c.client.Set(ctx, reportCachePrefix+diagramHash, data, reportCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}
