// Package service contains the business logic of the grind calculator.
package service

import (
	"container/list"
	"hash/maphash"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/grind-calculator/internal/metrics"
	"github.com/guttosm/grind-calculator/internal/service/cache"
)

const defaultCacheShards = 16

// ShardedCache is a bounded LRU cache whose entries expire after a fixed TTL.
// Keys are hashed onto independently locked shards.
type ShardedCache[K comparable, V any] struct {
	shards []*lruShard[K, V]
	mask   uint64
	seed   maphash.Seed
	ttl    time.Duration
	now    func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewShardedCache creates a cache holding about capacity entries in total.
// numShards is rounded up to a power of two; zero or less means 16.
// A janitor goroutine drops expired entries until Stop is called.
func NewShardedCache[K comparable, V any](capacity int, ttl time.Duration, numShards int) *ShardedCache[K, V] {
	if numShards <= 0 {
		numShards = defaultCacheShards
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	sc := &ShardedCache[K, V]{
		shards: make([]*lruShard[K, V], n),
		mask:   uint64(n - 1),
		seed:   maphash.MakeSeed(),
		ttl:    ttl,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	for i := range sc.shards {
		sc.shards[i] = &lruShard[K, V]{
			capacity: perShard,
			order:    list.New(),
			items:    make(map[K]*list.Element, perShard),
		}
	}

	go sc.janitor(janitorInterval(ttl))
	return sc
}

func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > time.Minute {
		return time.Minute
	}
	return ttl
}

func (sc *ShardedCache[K, V]) shard(key K) *lruShard[K, V] {
	return sc.shards[maphash.Comparable(sc.seed, key)&sc.mask]
}

// Get returns the value stored under key unless it has expired.
func (sc *ShardedCache[K, V]) Get(key K) (V, bool) {
	value, result := sc.shard(key).get(key, sc.now())
	metrics.RecordCacheOperation("get", result)
	return value, result == "hit"
}

// Set stores value under key, evicting the least recently used entry of a full shard.
func (sc *ShardedCache[K, V]) Set(key K, value V) {
	if sc.shard(key).set(key, value, sc.now().Add(sc.ttl)) {
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes key.
func (sc *ShardedCache[K, V]) Invalidate(key K) {
	if sc.shard(key).remove(key) {
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every entry and resets the counters.
func (sc *ShardedCache[K, V]) Clear() {
	for _, s := range sc.shards {
		s.reset()
	}
	metrics.RecordCacheOperation("clear", "success")
}

// Stop ends the janitor. Calling it more than once is fine.
func (sc *ShardedCache[K, V]) Stop() {
	sc.stopOnce.Do(func() { close(sc.stop) })
}

// Metrics sums the counters of all shards.
func (sc *ShardedCache[K, V]) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		s.mu.Lock()
		total.Size += len(s.items)
		total.Capacity += s.capacity
		s.mu.Unlock()
		total.Hits += s.hits.Load()
		total.Misses += s.misses.Load()
		total.Evictions += s.evictions.Load()
	}
	return total
}

// purgeExpired drops expired entries from every shard and returns how many went.
func (sc *ShardedCache[K, V]) purgeExpired() int {
	now := sc.now()
	removed := 0
	for _, s := range sc.shards {
		removed += s.purge(now)
	}
	return removed
}

func (sc *ShardedCache[K, V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sc.purgeExpired()
		case <-sc.stop:
			return
		}
	}
}

// lruShard keeps its most recently used entry at the front of order.
type lruShard[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[K]*list.Element

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type lruItem[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

func (s *lruShard[K, V]) get(key K, now time.Time) (V, string) {
	var zero V

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		s.misses.Add(1)
		return zero, "miss"
	}
	item := el.Value.(*lruItem[K, V])
	if now.After(item.expiresAt) {
		s.unlink(el)
		s.misses.Add(1)
		return zero, "expired"
	}
	s.order.MoveToFront(el)
	s.hits.Add(1)
	return item.value, "hit"
}

// set reports whether an entry had to be evicted to make room.
func (s *lruShard[K, V]) set(key K, value V, expiresAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		item := el.Value.(*lruItem[K, V])
		item.value = value
		item.expiresAt = expiresAt
		s.order.MoveToFront(el)
		return false
	}

	s.items[key] = s.order.PushFront(&lruItem[K, V]{key: key, value: value, expiresAt: expiresAt})
	if len(s.items) <= s.capacity {
		return false
	}
	s.unlink(s.order.Back())
	s.evictions.Add(1)
	return true
}

func (s *lruShard[K, V]) remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if ok {
		s.unlink(el)
	}
	return ok
}

func (s *lruShard[K, V]) purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*lruItem[K, V]).expiresAt) {
			s.unlink(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (s *lruShard[K, V]) reset() {
	s.mu.Lock()
	s.order.Init()
	s.items = make(map[K]*list.Element, s.capacity)
	s.mu.Unlock()

	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
}

func (s *lruShard[K, V]) unlink(el *list.Element) {
	delete(s.items, el.Value.(*lruItem[K, V]).key)
	s.order.Remove(el)
}
