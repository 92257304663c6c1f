package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rollhouse/salesdash/internal/config"
	"github.com/rollhouse/salesdash/internal/domain"
)

const (
	dashboardKeyPrefix  = "dashboard:view"
	scanBatchSize       = 100
	defaultDashboardTTL = 5 * time.Minute
)

// DashboardCache memoizes computed dashboards. Recomputation is pure, so
// a (record-set fingerprint, filters) pair always maps to the same
// result and entries never go stale while the snapshot is loaded.
type DashboardCache interface {
	Get(ctx context.Context, fingerprint string, f domain.Filters) (*domain.Dashboard, bool, error)
	Set(ctx context.Context, fingerprint string, f domain.Filters, d *domain.Dashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, fingerprint string, f domain.Filters) (*domain.Dashboard, bool, error) {
	payload, err := c.client.Get(ctx, buildDashboardKey(fingerprint, f)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}
	return &dashboard, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, fingerprint string, f domain.Filters, d *domain.Dashboard) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, buildDashboardKey(fingerprint, f), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, dashboardKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (n *noopDashboardCache) Get(ctx context.Context, fingerprint string, f domain.Filters) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, fingerprint string, f domain.Filters, d *domain.Dashboard) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// buildDashboardKey canonicalizes a Filters value so equivalent filters
// (same categories in any order) share a cache entry.
func buildDashboardKey(fingerprint string, f domain.Filters) string {
	parts := []string{"snapshot=" + fingerprint}
	if f.Department != "" && f.Department != domain.DepartmentAll {
		parts = append(parts, "department="+f.Department)
	}
	if f.DateRange != nil {
		parts = append(parts, "range="+f.DateRange.Start+".."+f.DateRange.End)
	}
	if len(f.Categories) > 0 {
		categories := make([]string, len(f.Categories))
		copy(categories, f.Categories)
		sort.Strings(categories)
		parts = append(parts, "categories="+strings.Join(categories, ","))
	}
	if f.SearchTerm != "" {
		parts = append(parts, "search="+strings.ToLower(f.SearchTerm))
	}

	hash := sha1.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, hex.EncodeToString(hash[:]))
}
