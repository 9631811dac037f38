package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openmuseum/museum-map-backend/internal/platform/envutil"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
)

// RedisCache keeps the term cache in redis, one key per term, for
// deployments where several pipeline runs share a host.
type RedisCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewRedisCache(log *logger.Logger) (*RedisCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(envutil.String("AAT_CACHE_PREFIX", "aat:"))

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		log:    log.With("service", "RedisVocabCache"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, term string) ([][]string, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+term).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %q: %w", term, err)
	}
	var hs [][]string
	if err := json.Unmarshal(raw, &hs); err != nil {
		return nil, false, fmt.Errorf("decode cached hierarchies for %q: %w", term, err)
	}
	return hs, true, nil
}

func (c *RedisCache) Put(ctx context.Context, term string, hierarchies [][]string) error {
	if hierarchies == nil {
		hierarchies = [][]string{}
	}
	raw, err := json.Marshal(hierarchies)
	if err != nil {
		return fmt.Errorf("encode hierarchies for %q: %w", term, err)
	}
	if err := c.rdb.Set(ctx, c.prefix+term, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", term, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
