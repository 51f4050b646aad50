package workbook

import (
	"io"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/entity"
)

// DefaultCapacity bounds the number of cached shuffles when no capacity is given.
const DefaultCapacity = 600

// ShuffleCache remembers the shuffled option order of workbook items so the same item
// shows the same layout for the whole day. It is safe for concurrent use.
type ShuffleCache struct {
	mu sync.Mutex
	// lru.Cache has no side-effect free lookup, so keys mirrors its contents.
	entries   *lru.Cache
	keys      map[string]struct{}
	scheduled map[string]struct{}

	idle   IdleScheduler
	logger logrus.FieldLogger
}

// CacheOption customises a ShuffleCache.
type CacheOption func(*ShuffleCache)

// WithIdleScheduler sets the scheduler used by Warmup.
func WithIdleScheduler(idle IdleScheduler) CacheOption {
	return func(c *ShuffleCache) {
		if idle != nil {
			c.idle = idle
		}
	}
}

// WithLogger sets the logger used for eviction and warm-up diagnostics.
func WithLogger(logger logrus.FieldLogger) CacheOption {
	return func(c *ShuffleCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewShuffleCache builds a cache holding at most capacity shuffles.
func NewShuffleCache(capacity int, opts ...CacheOption) *ShuffleCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &ShuffleCache{
		entries:   lru.New(capacity),
		keys:      make(map[string]struct{}, capacity),
		scheduled: make(map[string]struct{}),
		idle:      NewTimerScheduler(0, 0),
		logger:    discard,
	}
	c.entries.OnEvicted = func(key lru.Key, _ interface{}) {
		k := key.(string)
		delete(c.keys, k)
		c.logger.WithField("key", k).Debug("shuffle evicted")
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey identifies a shuffle by day, item and the original option set, so edited
// options never reuse a stale order.
func CacheKey(dayKey string, item entity.WorkbookItem) string {
	return dayKey + ":" + item.ID + ":" + strings.Join(item.Options, "|")
}

// Get returns the cached order for key and marks it most recently used.
func (c *ShuffleCache) Get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

// Set stores order under key as the most recently used entry, evicting the least
// recently used one when full.
func (c *ShuffleCache) Set(key string, order []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, order)
}

// Contains reports whether key is cached without changing its recency.
func (c *ShuffleCache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.keys[key]
	return ok
}

// Len returns the number of cached shuffles.
func (c *ShuffleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Scheduled reports whether a warm-up task for key is still pending.
func (c *ShuffleCache) Scheduled(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.scheduled[key]
	return ok
}

func (c *ShuffleCache) getLocked(key string) ([]string, bool) {
	value, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return value.([]string), true
}

func (c *ShuffleCache) setLocked(key string, order []string) {
	stored := make([]string, len(order))
	copy(stored, order)
	c.entries.Add(key, stored)
	c.keys[key] = struct{}{}
}

// GetShuffledItem returns item with its options in the day's shuffled order. Items with
// fewer than two options are returned untouched. The correct answer fields are always
// rebuilt from the item itself; the cache only holds option order.
func (c *ShuffleCache) GetShuffledItem(item entity.WorkbookItem, dayKey string, shuffle ShuffleFunc) entity.WorkbookItem {
	if len(item.Options) <= 1 {
		return item
	}
	if shuffle == nil {
		shuffle = ShuffleWithSeed
	}

	key := CacheKey(dayKey, item)
	c.mu.Lock()
	order, ok := c.getLocked(key)
	if !ok {
		order = shuffle(item.Options, key)
		c.setLocked(key, order)
	}
	c.mu.Unlock()

	return withOrder(item, order)
}

func withOrder(item entity.WorkbookItem, order []string) entity.WorkbookItem {
	correct := item.Correct()
	item.Options = append([]string(nil), order...)
	item.CorrectAnswer = correct
	item.Answer = correct
	return item
}
