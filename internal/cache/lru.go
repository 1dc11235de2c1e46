package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache keeps at most maxSize entries, dropping the least recently used
// one on overflow. Entries older than ttl are dropped on read or cleanup;
// a ttl of zero keeps them until evicted.
type LRUCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	index   map[string]*list.Element
	order   *list.List // front is most recently used
	now     func() time.Time
	stats   Stats
}

// Stats counts lookups since the cache was created.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Expired   int64
}

type entry[T any] struct {
	key     string
	value   T
	expires time.Time
}

var _ Cache[int] = (*LRUCache[int])(nil)

func NewLRUCache[T any](maxSize int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		maxSize: max(maxSize, 1),
		ttl:     ttl,
		index:   make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		e := el.Value.(*entry[T])
		if !c.expired(e, c.now()) {
			c.order.MoveToFront(el)
			c.stats.Hits++
			return e.value, true
		}
		c.drop(el)
		c.stats.Expired++
	}
	c.stats.Misses++
	var zero T
	return zero, false
}

// Set stores value under key, refreshing its age and recency.
func (c *LRUCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{key: key, value: value}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	if el, ok := c.index[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(e)
	for c.order.Len() > c.maxSize {
		c.drop(c.order.Back())
		c.stats.Evictions++
	}
}

func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.drop(el)
	}
}

// CleanExpired drops every expired entry and reports how many it dropped.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if c.expired(el.Value.(*entry[T]), now) {
			c.drop(el)
			removed++
		}
		el = next
	}
	c.stats.Expired += int64(removed)
	return removed
}

func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

func (c *LRUCache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *LRUCache[T]) expired(e *entry[T], now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

func (c *LRUCache[T]) drop(el *list.Element) {
	delete(c.index, el.Value.(*entry[T]).key)
	c.order.Remove(el)
}
