package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/infra/memory"
)

// PoolLoader assembles a question pool from a set of files (see internal/pool).
type PoolLoader interface {
	LoadPool(ctx context.Context, files []string) (domain.Pool, error)
}

// PoolRepository caches loaded pools in Redis as a JSON blob per file set
// (key pool:{sorted files}) and falls back to the loader on cache miss, so
// multiple instances share one parsed copy of each selection.
type PoolRepository struct {
	client *redis.Client
	loader PoolLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewPoolRepository(client *redis.Client, loader PoolLoader, ttl time.Duration) *PoolRepository {
	return &PoolRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *PoolRepository) GetPool(ctx context.Context, files []string) (domain.Pool, error) {
	key := r.key(files)

	if pool, ok := r.cached(ctx, key); ok {
		return pool, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := r.cached(ctx, key); ok {
			return pool, nil
		}

		pool, err := r.loader.LoadPool(ctx, files)
		if err != nil {
			return domain.Pool{}, err
		}

		if data, err := json.Marshal(pool); err == nil {
			// best-effort: a failed cache write must not fail the load
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return pool, nil
	})
	if err != nil {
		return domain.Pool{}, err
	}
	return result.(domain.Pool), nil
}

func (r *PoolRepository) cached(ctx context.Context, key string) (domain.Pool, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(data) == 0 {
		return domain.Pool{}, false
	}
	var pool domain.Pool
	if err := json.Unmarshal(data, &pool); err != nil {
		return domain.Pool{}, false
	}
	return pool, true
}

func (r *PoolRepository) key(files []string) string {
	return "pool:" + memory.CacheKey(files)
}

func (r *PoolRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
