package workbook

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/eslsoft/lingodeck/internal/entity"
)

func quizItem(id string, options ...string) entity.WorkbookItem {
	return entity.WorkbookItem{ID: id, Options: options, CorrectAnswer: options[0]}
}

func TestCacheKey(t *testing.T) {
	item := quizItem("q1", "der", "die", "das")
	if got := CacheKey("2024-01-05", item); got != "2024-01-05:q1:der|die|das" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestGetShuffledItem_CachesOrder(t *testing.T) {
	cache := NewShuffleCache(10)
	item := quizItem("q1", "a", "b", "c", "d", "e")

	// A stochastic shuffle proves the second call is served from the cache.
	rng := rand.New(rand.NewSource(42))
	calls := 0
	stochastic := func(options []string, _ string) []string {
		calls++
		out := slices.Clone(options)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	first := cache.GetShuffledItem(item, "2024-01-05", stochastic)
	second := cache.GetShuffledItem(item, "2024-01-05", stochastic)
	if !slices.Equal(first.Options, second.Options) {
		t.Fatalf("cached order changed: %v vs %v", first.Options, second.Options)
	}
	if calls != 1 {
		t.Fatalf("expected one shuffle computation, got %d", calls)
	}
	if !slices.Equal(item.Options, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("input options mutated: %v", item.Options)
	}
}

func TestGetShuffledItem_ReturnedOptionsAreIsolated(t *testing.T) {
	cache := NewShuffleCache(10)
	item := quizItem("q1", "a", "b", "c")

	first := cache.GetShuffledItem(item, "d1", ShuffleWithSeed)
	want := slices.Clone(first.Options)
	first.Options[0] = "tampered"

	second := cache.GetShuffledItem(item, "d1", ShuffleWithSeed)
	if !slices.Equal(second.Options, want) {
		t.Fatalf("cached entry was modified through a returned item: %v", second.Options)
	}
}

func TestGetShuffledItem_ShortCircuit(t *testing.T) {
	cache := NewShuffleCache(10)
	called := false
	shuffle := func(options []string, _ string) []string {
		called = true
		return options
	}

	for _, item := range []entity.WorkbookItem{
		{ID: "empty", Answer: "x"},
		{ID: "single", Options: []string{"only"}, Answer: "only"},
	} {
		got := cache.GetShuffledItem(item, "d1", shuffle)
		if got.ID != item.ID || got.CorrectAnswer != "" || got.Answer != item.Answer || !slices.Equal(got.Options, item.Options) {
			t.Fatalf("item changed: %+v", got)
		}
	}
	if called {
		t.Fatal("shuffle must not run for items with fewer than two options")
	}
	if cache.Len() != 0 {
		t.Fatalf("short-circuited items must not be cached, len=%d", cache.Len())
	}
}

func TestGetShuffledItem_SynchronisesAnswers(t *testing.T) {
	cache := NewShuffleCache(10)
	legacy := entity.WorkbookItem{ID: "q2", Options: []string{"x", "y", "z"}, Answer: "y"}

	got := cache.GetShuffledItem(legacy, "d1", ShuffleWithSeed)
	if got.CorrectAnswer != "y" || got.Answer != "y" {
		t.Fatalf("answers not synchronised: %+v", got)
	}

	// A cache hit still derives the answer from the item passed in.
	updated := legacy
	updated.CorrectAnswer = "z"
	hit := cache.GetShuffledItem(updated, "d1", ShuffleWithSeed)
	if hit.CorrectAnswer != "z" || hit.Answer != "z" {
		t.Fatalf("answer should come from the item, got %+v", hit)
	}
	if !slices.Equal(hit.Options, got.Options) {
		t.Fatalf("cache hit returned a different order: %v vs %v", hit.Options, got.Options)
	}
}

func TestGetShuffledItem_OptionChangeUsesNewKey(t *testing.T) {
	cache := NewShuffleCache(10)
	cache.GetShuffledItem(quizItem("q1", "a", "b", "c"), "d1", ShuffleWithSeed)
	cache.GetShuffledItem(quizItem("q1", "a", "b", "c", "d"), "d1", ShuffleWithSeed)

	if cache.Len() != 2 {
		t.Fatalf("expected separate entries per option set, got %d", cache.Len())
	}
	if !cache.Contains("d1:q1:a|b|c") || !cache.Contains("d1:q1:a|b|c|d") {
		t.Fatal("expected both keys to be cached")
	}
}

func TestShuffleCache_LRUEviction(t *testing.T) {
	cache := NewShuffleCache(3)
	cache.Set("a", []string{"1"})
	cache.Set("b", []string{"2"})
	cache.Set("c", []string{"3"})

	// Touch "a" so "b" becomes the least recently used entry.
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("expected a to be cached")
	}
	cache.Set("d", []string{"4"})

	if cache.Contains("b") {
		t.Fatal("b should have been evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if !cache.Contains(key) {
			t.Fatalf("%s should still be cached", key)
		}
	}

	cache.Set("e", []string{"5"})
	if cache.Contains("c") {
		t.Fatal("c should have been evicted next")
	}
	if cache.Len() != 3 {
		t.Fatalf("cache exceeded capacity: %d", cache.Len())
	}
}

func TestShuffleCache_ContainsDoesNotPromote(t *testing.T) {
	cache := NewShuffleCache(2)
	cache.Set("a", []string{"1"})
	cache.Set("b", []string{"2"})
	cache.Contains("a")
	cache.Set("c", []string{"3"})

	if cache.Contains("a") {
		t.Fatal("Contains must not protect an entry from eviction")
	}
}

func TestNewShuffleCache_DefaultCapacity(t *testing.T) {
	cache := NewShuffleCache(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		cache.Set(string(rune('a'+i%26))+string(rune(i)), []string{"x"})
	}
	if cache.Len() != DefaultCapacity {
		t.Fatalf("expected %d entries, got %d", DefaultCapacity, cache.Len())
	}
}
