package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// TagCache caches the distinct tag list, the only feed query that scans
// every post. A nil *TagCache is valid and turns every operation into a
// no-op, so the API behaves identically without redis.
type TagCache struct {
	inner *redis.Client
}

const (
	tagCacheKey = "posts__distinct_tags"
	tagCacheTTL = 10 * time.Minute
)

var ctx = context.Background()

// GetTagCache returns a redis backed cache, or nil when REDIS_HOST is unset
// or redis is unreachable.
func GetTagCache() *TagCache {
	if os.Getenv("REDIS_HOST") == "" {
		return nil
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil
	}
	return &TagCache{inner: redisClient}
}

func (t *TagCache) Get() ([]string, bool) {
	if t == nil {
		return nil, false
	}
	raw, err := t.inner.Get(ctx, tagCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, false
	}
	return tags, true
}

func (t *TagCache) Set(tags []string) {
	if t == nil {
		return
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return
	}
	t.inner.Set(ctx, tagCacheKey, string(raw), tagCacheTTL)
}

// Invalidate drops the cached list. Called on every post mutation since any
// of them can change the tag set.
func (t *TagCache) Invalidate() {
	if t == nil {
		return
	}
	t.inner.Del(ctx, tagCacheKey)
}
