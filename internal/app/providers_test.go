package app

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/entity"
	"github.com/eslsoft/lingodeck/internal/infrastructure/config"
)

func TestProvideShuffleCache(t *testing.T) {
	cfg := &config.Config{Shuffle: config.ShuffleConfig{Capacity: 2, IdleDelay: time.Millisecond, IdleBudget: 10 * time.Millisecond}}
	cache := provideShuffleCache(cfg, logrus.New())

	for _, id := range []string{"a", "b", "c"} {
		cache.GetShuffledItem(entity.WorkbookItem{ID: id, Options: []string{"x", "y"}}, "2024-01-05", nil)
	}
	if cache.Len() != 2 {
		t.Fatalf("configured capacity not applied, len=%d", cache.Len())
	}
}

func TestProvideSettings(t *testing.T) {
	cfg := &config.Config{Review: config.ReviewConfig{Interval: entity.ReviewInterval{Red: 2, Yellow: 4, Green: 10}}}
	if got := provideSettings(cfg).ReviewInterval; got != cfg.Review.Interval {
		t.Fatalf("got %+v", got)
	}
}
