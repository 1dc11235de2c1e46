package cache

import (
	"testing"
	"time"
)

func newTestCache[T any](maxSize int, ttl time.Duration) (*LRUCache[T], *time.Time) {
	c := NewLRUCache[T](maxSize, ttl)
	now := time.Date(2026, 1, 24, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestLRUCacheEviction(t *testing.T) {
	c, _ := newTestCache[string](3, time.Hour)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")
	c.Get("key1")           // key2 becomes least recently used
	c.Set("key4", "value4") // evicts key2

	if _, found := c.Get("key2"); found {
		t.Error("key2 should have been evicted")
	}
	for _, k := range []string{"key1", "key3", "key4"} {
		if _, found := c.Get(k); !found {
			t.Errorf("%s should still exist", k)
		}
	}
	if c.Size() != 3 {
		t.Errorf("Size() = %d, want 3", c.Size())
	}
}

func TestLRUCacheUpdateExisting(t *testing.T) {
	c, _ := newTestCache[int](2, time.Hour)
	c.Set("a", 1)
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 || c.Size() != 1 {
		t.Errorf("Get(a) = %d, Size() = %d", v, c.Size())
	}
}

func TestLRUCacheTTLExpiration(t *testing.T) {
	c, now := newTestCache[string](100, 50*time.Millisecond)

	c.Set("key1", "value1")
	if _, found := c.Get("key1"); !found {
		t.Fatal("key1 should exist immediately")
	}

	*now = now.Add(60 * time.Millisecond)
	if _, found := c.Get("key1"); found {
		t.Error("key1 should have expired")
	}
	if c.Size() != 0 {
		t.Error("expired entry should be removed on read")
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c, now := newTestCache[string](100, time.Minute)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	*now = now.Add(30 * time.Second)
	c.Set("key3", "value3")

	*now = now.Add(45 * time.Second)
	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if _, found := c.Get("key3"); !found {
		t.Error("key3 should survive")
	}
}

func TestLRUCacheDelete(t *testing.T) {
	c, _ := newTestCache[string](3, time.Hour)
	c.Set("k", "v")
	c.Delete("k")
	c.Delete("missing")
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestManagerCleanNowAndStop(t *testing.T) {
	c, now := newTestCache[string](10, time.Second)
	c.Set("a", "1")
	*now = now.Add(2 * time.Second)

	m := NewManager(nil)
	m.Register(c)
	m.StartCleanup(time.Hour)
	m.StartCleanup(time.Hour)

	if n := m.CleanNow(); n != 1 {
		t.Errorf("CleanNow() = %d, want 1", n)
	}
	m.Stop()
	m.Stop()
}

func TestManagerStopWithoutStart(t *testing.T) {
	m := NewManager(nil)
	m.Stop()
}

func BenchmarkLRUCache(b *testing.B) {
	c := NewLRUCache[[]string](1000, time.Hour)
	val := []string{"Sandton", "Rosebank"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%10 == 0 {
			c.Set("sections", val)
		} else {
			c.Get("sections")
		}
	}
}

func TestLRUCacheZeroTTLNeverExpires(t *testing.T) {
	c, now := newTestCache[string](2, 0)
	c.Set("k", "v")
	*now = now.Add(24 * 365 * time.Hour)
	if _, found := c.Get("k"); !found {
		t.Error("entry without ttl should not expire")
	}
	if n := c.CleanExpired(); n != 0 {
		t.Errorf("CleanExpired() = %d, want 0", n)
	}
}

func TestLRUCacheStats(t *testing.T) {
	c, now := newTestCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Get("missing")
	c.Set("c", 3) // evicts b
	*now = now.Add(2 * time.Minute)
	c.Get("a")

	got := c.Stats()
	want := Stats{Hits: 1, Misses: 2, Evictions: 1, Expired: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
