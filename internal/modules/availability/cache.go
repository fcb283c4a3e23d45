package availability

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"cleanbook/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a short-TTL read cache for availability responses. Availability
// is advisory snapshot data, so serving a few-seconds-old answer is always
// safe; the commit procedure stays the single authority. A nil *Cache is a
// valid no-op.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string) (*Result, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Str("key", key).Msg("availability cache get failed")
		}
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (c *Cache) Set(ctx context.Context, key string, res *Result) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("availability cache set failed")
	}
}

// CacheKey folds the cart into the key so different carts never share an
// answer.
func CacheKey(storeID int64, date string, items []domain.CartItem) string {
	raw, _ := json.Marshal(items)
	sum := sha1.Sum(raw)
	return fmt.Sprintf("avail:%d:%s:%s", storeID, date, hex.EncodeToString(sum[:]))
}
