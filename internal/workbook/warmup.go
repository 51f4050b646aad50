package workbook

import (
	"sync"
	"time"

	"github.com/eslsoft/lingodeck/internal/entity"
)

// minIdleSlice is the remaining idle time below which a warm-up yields to the host.
const minIdleSlice = 2 * time.Millisecond

// CancelFunc aborts a warm-up. Calling it more than once is harmless.
type CancelFunc func()

type warmTask struct {
	key  string
	item entity.WorkbookItem
}

type warmup struct {
	cache   *ShuffleCache
	shuffle ShuffleFunc

	mu        sync.Mutex
	queue     []warmTask
	pending   func()
	cancelled bool
}

// Warmup precomputes shuffles for the items within radius of currentIndex during idle
// time, so neighbouring questions are ready before the learner reaches them. Keys that
// are already cached or queued by another warm-up are skipped.
func (c *ShuffleCache) Warmup(items []entity.WorkbookItem, dayKey string, currentIndex, radius int, shuffle ShuffleFunc) CancelFunc {
	if shuffle == nil {
		shuffle = ShuffleWithSeed
	}
	start := max(0, currentIndex-radius)
	end := min(len(items), currentIndex+radius+1)

	w := &warmup{cache: c, shuffle: shuffle}
	c.mu.Lock()
	for i := start; i < end; i++ {
		item := items[i]
		if len(item.Options) <= 1 {
			continue
		}
		key := CacheKey(dayKey, item)
		if _, cached := c.keys[key]; cached {
			continue
		}
		if _, queued := c.scheduled[key]; queued {
			continue
		}
		c.scheduled[key] = struct{}{}
		w.queue = append(w.queue, warmTask{key: key, item: item})
	}
	c.mu.Unlock()

	if len(w.queue) == 0 {
		return func() {}
	}

	c.logger.WithField("day", dayKey).WithField("tasks", len(w.queue)).Debug("shuffle warmup scheduled")
	w.mu.Lock()
	w.pending = c.idle.ScheduleIdle(w.run)
	w.mu.Unlock()
	return w.cancel
}

func (w *warmup) run(deadline IdleDeadline) {
	for {
		w.mu.Lock()
		if w.cancelled {
			w.mu.Unlock()
			return
		}
		if len(w.queue) == 0 {
			w.pending = nil
			w.mu.Unlock()
			return
		}
		if deadline.TimeRemaining() < minIdleSlice {
			w.pending = w.cache.idle.ScheduleIdle(w.run)
			w.mu.Unlock()
			return
		}
		task := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.cache.warm(task, w.shuffle)
	}
}

func (c *ShuffleCache) warm(task warmTask, shuffle ShuffleFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, cached := c.keys[task.key]; !cached {
		c.setLocked(task.key, shuffle(task.item.Options, task.key))
	}
	delete(c.scheduled, task.key)
}

func (w *warmup) cancel() {
	w.mu.Lock()
	if w.cancelled {
		w.mu.Unlock()
		return
	}
	w.cancelled = true
	if w.pending != nil {
		w.pending()
		w.pending = nil
	}
	remaining := w.queue
	w.queue = nil
	w.mu.Unlock()

	if len(remaining) == 0 {
		return
	}
	w.cache.mu.Lock()
	for _, task := range remaining {
		delete(w.cache.scheduled, task.key)
	}
	w.cache.mu.Unlock()
	w.cache.logger.WithField("tasks", len(remaining)).Debug("shuffle warmup cancelled")
}
