package workbook

import (
	"sync"
	"time"
)

// IdleDeadline reports how much of the current idle slice is left.
type IdleDeadline interface {
	TimeRemaining() time.Duration
}

// IdleScheduler runs callbacks when the host has spare time. fn must be invoked
// asynchronously, never from inside ScheduleIdle. The returned function cancels the
// callback if it has not started yet.
type IdleScheduler interface {
	ScheduleIdle(fn func(IdleDeadline)) (cancel func())
}

const (
	defaultIdleDelay  = time.Millisecond
	defaultIdleBudget = 50 * time.Millisecond
)

// TimerScheduler approximates idle callbacks with timers: each callback fires after
// Delay and is granted Budget of work time.
type TimerScheduler struct {
	Delay  time.Duration
	Budget time.Duration
}

// NewTimerScheduler fills zero values with a 1ms delay and a 50ms budget.
func NewTimerScheduler(delay, budget time.Duration) *TimerScheduler {
	if delay <= 0 {
		delay = defaultIdleDelay
	}
	if budget <= 0 {
		budget = defaultIdleBudget
	}
	return &TimerScheduler{Delay: delay, Budget: budget}
}

// ScheduleIdle implements IdleScheduler.
func (s *TimerScheduler) ScheduleIdle(fn func(IdleDeadline)) func() {
	budget := s.Budget
	timer := time.AfterFunc(s.Delay, func() {
		fn(timerDeadline{start: time.Now(), budget: budget})
	})
	var once sync.Once
	return func() {
		once.Do(func() { timer.Stop() })
	}
}

type timerDeadline struct {
	start  time.Time
	budget time.Duration
}

func (d timerDeadline) TimeRemaining() time.Duration {
	return max(0, d.budget-time.Since(d.start))
}
