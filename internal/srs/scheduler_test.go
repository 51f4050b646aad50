package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/lingodeck/internal/entity"
)

var testInterval = entity.ReviewInterval{Red: 1, Yellow: 3, Green: 7}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestScheduler(day string) *Scheduler {
	now, err := time.ParseInLocation("2006-01-02 15:04", day+" 10:30", time.UTC)
	if err != nil {
		panic(err)
	}
	return NewScheduler(WithClock(fixedClock(now)))
}

func TestUpdateSentenceStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    entity.Status
		correct bool
		to      entity.Status
		nextDue string
	}{
		{entity.StatusRed, true, entity.StatusYellow, "2024-01-08"},
		{entity.StatusRed, false, entity.StatusRed, "2024-01-06"},
		{entity.StatusYellow, true, entity.StatusGreen, "2024-01-12"},
		{entity.StatusYellow, false, entity.StatusRed, "2024-01-06"},
		{entity.StatusGreen, true, entity.StatusGreen, "2024-01-12"},
		{entity.StatusGreen, false, entity.StatusRed, "2024-01-06"},
	}

	s := newTestScheduler("2024-01-05")
	for _, c := range cases {
		in := entity.Sentence{ID: "s1", Text: "Guten Morgen", Status: c.from, PracticeCount: 4, NextDue: "2024-01-01"}
		got, err := s.UpdateSentenceStatus(in, c.correct, testInterval)
		if err != nil {
			t.Fatalf("%s/%v: unexpected error %v", c.from, c.correct, err)
		}
		if got.Status != c.to {
			t.Fatalf("%s/%v: status got %s want %s", c.from, c.correct, got.Status, c.to)
		}
		if got.NextDue != c.nextDue {
			t.Fatalf("%s/%v: nextDue got %s want %s", c.from, c.correct, got.NextDue, c.nextDue)
		}
		if got.PracticeCount != 5 {
			t.Fatalf("%s/%v: practiceCount got %d want 5", c.from, c.correct, got.PracticeCount)
		}
		if in.Status != c.from || in.PracticeCount != 4 || in.LastPracticed != nil {
			t.Fatalf("input mutated: %+v", in)
		}
	}
}

func TestUpdateSentenceStatus_ExampleScenario(t *testing.T) {
	s := newTestScheduler("2024-01-05")
	in := entity.Sentence{ID: "s1", Status: entity.StatusRed, NextDue: "2024-01-01", PracticeCount: 0}

	got, err := s.UpdateSentenceStatus(in, true, testInterval)
	if err != nil {
		t.Fatal(err)
	}
	want := entity.Sentence{
		ID:            "s1",
		Status:        entity.StatusYellow,
		PracticeCount: 1,
		LastPracticed: got.LastPracticed,
		NextDue:       "2024-01-08",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected sentence (-want +got):\n%s", diff)
	}
	if got.LastPracticed == nil || !got.LastPracticed.Equal(s.clock()) {
		t.Fatalf("lastPracticed not stamped: %v", got.LastPracticed)
	}
}

func TestUpdateSentenceStatus_LastPracticedMonotonic(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewScheduler(WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))

	sentence := entity.Sentence{ID: "s1", Status: entity.StatusRed, NextDue: "2024-03-01"}
	var prev time.Time
	for i := 0; i < 5; i++ {
		next, err := s.UpdateSentenceStatus(sentence, i%2 == 0, testInterval)
		if err != nil {
			t.Fatal(err)
		}
		if next.PracticeCount != sentence.PracticeCount+1 {
			t.Fatalf("practiceCount did not increase by one: %d -> %d", sentence.PracticeCount, next.PracticeCount)
		}
		if next.LastPracticed.Before(prev) {
			t.Fatalf("lastPracticed went backwards: %v < %v", next.LastPracticed, prev)
		}
		prev = *next.LastPracticed
		sentence = next
	}
}

func TestUpdateSentenceStatus_RejectsUnknownStatus(t *testing.T) {
	s := newTestScheduler("2024-01-05")
	in := entity.Sentence{ID: "s1", Status: entity.Status("blue"), NextDue: "2024-01-01"}

	got, err := s.UpdateSentenceStatus(in, true, testInterval)
	if !errors.Is(err, entity.ErrInvalidSentenceStatus) {
		t.Fatalf("expected ErrInvalidSentenceStatus, got %v", err)
	}
	if got.PracticeCount != 0 || got.LastPracticed != nil {
		t.Fatalf("rejected review must not record an attempt: %+v", got)
	}
}

func TestGenerateDailyQueue(t *testing.T) {
	s := newTestScheduler("2024-01-05")
	sentences := []entity.Sentence{
		{ID: "future-green", Status: entity.StatusGreen, NextDue: "2099-01-01"},
		{ID: "future-red", Status: entity.StatusRed, NextDue: "2099-01-01"},
		{ID: "due-green", Status: entity.StatusGreen, NextDue: "2024-01-05"},
		{ID: "past-green", Status: entity.StatusGreen, NextDue: "2023-12-31"},
		{ID: "future-yellow", Status: entity.StatusYellow, NextDue: "2024-01-06"},
		{ID: "future-red", Status: entity.StatusRed, NextDue: "2099-01-01"},
		{ID: "tomorrow-green", Status: entity.StatusGreen, NextDue: "2024-01-06"},
	}

	got := s.GenerateDailyQueue(sentences)
	ids := make([]string, len(got))
	for i, item := range got {
		ids[i] = item.ID
	}
	want := []string{"future-red", "due-green", "past-green", "future-yellow", "future-red"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("queue mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateDailyQueue_RedAlwaysDue(t *testing.T) {
	s := newTestScheduler("2030-06-15")
	got := s.GenerateDailyQueue([]entity.Sentence{
		{ID: "a", Status: entity.StatusGreen, NextDue: "2099-01-01"},
		{ID: "b", Status: entity.StatusRed, NextDue: "2099-01-01"},
	})
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only the red sentence, got %+v", got)
	}
}

func TestCalculateNextDue(t *testing.T) {
	s := newTestScheduler("2024-02-27")
	cases := map[entity.Status]string{
		entity.StatusRed:    "2024-02-28",
		entity.StatusYellow: "2024-03-01",
		entity.StatusGreen:  "2024-03-05",
	}
	for status, want := range cases {
		got, err := s.CalculateNextDue(status, testInterval)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", status, err)
		}
		if got != want {
			t.Fatalf("%s: got %s want %s", status, got, want)
		}
	}
	if got, err := s.CalculateNextDue(entity.StatusGreen, entity.ReviewInterval{}); err != nil || got != "2024-02-27" {
		t.Fatalf("zero interval should be due today, got %s (%v)", got, err)
	}
}

func TestCalculateNextDue_RejectsUnknownStatus(t *testing.T) {
	s := newTestScheduler("2024-02-27")
	for _, status := range []entity.Status{"", "blue", "RED"} {
		got, err := s.CalculateNextDue(status, testInterval)
		if !errors.Is(err, entity.ErrInvalidSentenceStatus) {
			t.Fatalf("%q: expected ErrInvalidSentenceStatus, got %v", status, err)
		}
		if got != "" {
			t.Fatalf("%q: expected empty due date, got %s", status, got)
		}
	}
}

func TestCalculateNextDue_UsesClockLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-01-05 20:00 UTC is already 2024-01-06 in Tokyo.
	now := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC).In(tokyo)
	s := NewScheduler(WithClock(fixedClock(now)))
	if got := s.Today(); got != "2024-01-06" {
		t.Fatalf("today got %s want 2024-01-06", got)
	}
	if got, err := s.CalculateNextDue(entity.StatusRed, testInterval); err != nil || got != "2024-01-07" {
		t.Fatalf("next due got %s (%v) want 2024-01-07", got, err)
	}
}

func TestGetReviewStats(t *testing.T) {
	s := newTestScheduler("2024-01-05")

	empty := s.GetReviewStats(nil)
	if empty.MasteryRate != 0 || empty.Total != 0 || empty.DueToday != 0 {
		t.Fatalf("empty stats should be zero, got %+v", empty)
	}

	stats := s.GetReviewStats([]entity.Sentence{
		{Status: entity.StatusRed, NextDue: "2024-01-05"},
		{Status: entity.StatusYellow, NextDue: "2024-01-09"},
		{Status: entity.StatusGreen, NextDue: "2024-01-04"},
		{Status: entity.StatusGreen, NextDue: "2024-02-01"},
		{Status: entity.StatusGreen, NextDue: "2024-02-01"},
		{Status: entity.StatusGreen, NextDue: "2024-02-01"},
	})
	want := entity.ReviewStats{Total: 6, Red: 1, Yellow: 1, Green: 4, DueToday: 3, MasteryRate: 67}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSentence(t *testing.T) {
	s := newTestScheduler("2024-01-05")
	got := s.NewSentence("s9", "  Wie geht's?  ")
	if got.Status != entity.StatusRed || got.PracticeCount != 0 || got.NextDue != "2024-01-05" {
		t.Fatalf("unexpected new sentence: %+v", got)
	}
	if got.Text != "Wie geht's?" || got.LastPracticed != nil {
		t.Fatalf("unexpected new sentence: %+v", got)
	}
}
