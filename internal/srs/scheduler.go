// Package srs implements the red/yellow/green spaced-repetition schedule used for
// sentence drills.
package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/lingodeck/internal/entity"
)

// Clock returns the current time. Its location decides what "today" means.
type Clock func() time.Time

// Scheduler decides which sentences are due and moves them between mastery tiers.
type Scheduler struct {
	clock Clock
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewScheduler returns a scheduler backed by time.Now unless overridden.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now reads the scheduler's clock.
func (s *Scheduler) Now() time.Time {
	return s.clock()
}

// Today returns the current date as YYYY-MM-DD in the clock's location.
func (s *Scheduler) Today() string {
	return s.clock().Format(entity.DateLayout)
}

// NewSentence applies the creation rules: red, never practiced, due today.
func (s *Scheduler) NewSentence(id, text string) entity.Sentence {
	now := s.clock()
	sentence := entity.Sentence{
		ID:     id,
		Text:   text,
		Status: entity.StatusRed,
	}
	sentence.Normalize(now)
	sentence.NextDue = now.Format(entity.DateLayout)
	return sentence
}

// GenerateDailyQueue keeps every sentence that is not yet mastered plus the mastered
// ones whose due date has arrived. Input order and duplicates are preserved.
func (s *Scheduler) GenerateDailyQueue(sentences []entity.Sentence) []entity.Sentence {
	today := s.Today()
	return lo.Filter(sentences, func(item entity.Sentence, _ int) bool {
		return isDue(item, today)
	})
}

func isDue(sentence entity.Sentence, today string) bool {
	// YYYY-MM-DD compares correctly as a string.
	return sentence.Status != entity.StatusGreen || sentence.NextDue <= today
}

// CalculateNextDue adds the tier's interval to today.
func (s *Scheduler) CalculateNextDue(status entity.Status, interval entity.ReviewInterval) (string, error) {
	days, ok := interval.Days(status)
	if !ok {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidSentenceStatus, string(status))
	}
	now := s.clock()
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, now.Location()).Format(entity.DateLayout), nil
}

// NextStatus is the mastery state machine: a correct answer moves one tier up
// (green stays green), a wrong answer always drops back to red.
func NextStatus(current entity.Status, correct bool) (entity.Status, error) {
	if !current.Valid() {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidSentenceStatus, string(current))
	}
	if !correct {
		return entity.StatusRed, nil
	}
	switch current {
	case entity.StatusRed:
		return entity.StatusYellow, nil
	default:
		return entity.StatusGreen, nil
	}
}

// UpdateSentenceStatus records a review attempt and returns the updated copy.
// The input sentence is never modified.
func (s *Scheduler) UpdateSentenceStatus(sentence entity.Sentence, correct bool, interval entity.ReviewInterval) (entity.Sentence, error) {
	next, err := NextStatus(sentence.Status, correct)
	if err != nil {
		return sentence, err
	}

	due, err := s.CalculateNextDue(next, interval)
	if err != nil {
		return sentence, err
	}

	now := s.clock()
	updated := sentence.Clone()
	updated.Status = next
	updated.PracticeCount++
	updated.LastPracticed = &now
	updated.NextDue = due
	return updated, nil
}

// GetReviewStats aggregates tier counts, today's queue size and the mastery rate.
func (s *Scheduler) GetReviewStats(sentences []entity.Sentence) entity.ReviewStats {
	byStatus := lo.GroupBy(sentences, func(item entity.Sentence) entity.Status {
		return item.Status
	})
	stats := entity.ReviewStats{
		Total:    len(sentences),
		Red:      len(byStatus[entity.StatusRed]),
		Yellow:   len(byStatus[entity.StatusYellow]),
		Green:    len(byStatus[entity.StatusGreen]),
		DueToday: len(s.GenerateDailyQueue(sentences)),
	}
	stats.MasteryRate = masteryRate(stats.Green, stats.Total)
	return stats
}

func masteryRate(green, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(green) / float64(total)))
}
