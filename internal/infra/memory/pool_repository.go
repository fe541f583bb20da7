package memory

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-practice-service/internal/domain"
)

// PoolLoader assembles a question pool from a set of files (see internal/pool).
type PoolLoader interface {
	LoadPool(ctx context.Context, files []string) (domain.Pool, error)
}

// PoolRepository caches loaded pools with TTL to avoid re-parsing the same
// file set on every quiz creation. The cache is a convenience only; entries
// are keyed by the sorted file set, so the same selection always maps to the
// same entry regardless of argument order.
type PoolRepository struct {
	loader PoolLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedPool
}

type cachedPool struct {
	pool      domain.Pool
	expiresAt time.Time
}

func NewPoolRepository(loader PoolLoader, ttl time.Duration) *PoolRepository {
	return &PoolRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedPool),
	}
}

func (r *PoolRepository) GetPool(ctx context.Context, files []string) (domain.Pool, error) {
	key := CacheKey(files)
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.pool, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.pool, nil
		}
		r.mu.RUnlock()

		pool, err := r.loader.LoadPool(ctx, files)
		if err != nil {
			return domain.Pool{}, err
		}

		r.mu.Lock()
		r.cache[key] = cachedPool{
			pool:      pool,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return pool, nil
	})
	if err != nil {
		return domain.Pool{}, err
	}
	return result.(domain.Pool), nil
}

// StaticPoolLoader serves a fixed pool regardless of the requested files
// (useful for tests/demos).
type StaticPoolLoader struct {
	pool domain.Pool
}

func NewStaticPoolLoader(pool domain.Pool) *StaticPoolLoader {
	return &StaticPoolLoader{pool: pool}
}

func (l *StaticPoolLoader) LoadPool(_ context.Context, _ []string) (domain.Pool, error) {
	return l.pool, nil
}

// CacheKey canonicalizes a file selection: sorted and comma-joined, so
// ["b","a"] and ["a","b"] share one cache entry.
func CacheKey(files []string) string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func (r *PoolRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
