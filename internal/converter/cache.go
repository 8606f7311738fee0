package converter

import (
	"container/list"
	"sync"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
)

// resultCache holds successful conversions keyed by cacheKey.
type resultCache = lruCache[string, domain.Result]

// cacheKey identifies a normalized request. Only successful results are cached.
func cacheKey(req domain.Request) string {
	return string(req.Category) + "|" + req.FromUnit + "|" + req.ToUnit + "|" + req.RawValue
}

// lruCache is a mutex-guarded LRU map. The list front is the most recently
// used element; each element holds a *cacheEntry.
type lruCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[K]*list.Element
}

type cacheEntry[K comparable, V any] struct {
	key   K
	value V
}

// newLRUCache panics on a non-positive capacity; WithCache filters those out.
func newLRUCache[K comparable, V any](capacity int) *lruCache[K, V] {
	if capacity <= 0 {
		panic("converter: cache capacity must be positive")
	}
	return &lruCache[K, V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[K]*list.Element, capacity),
	}
}

func (c *lruCache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry[K, V]).value, true
}

func (c *lruCache[K, V]) put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry[K, V]).key)
	}
}

func (c *lruCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
