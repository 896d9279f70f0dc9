package redis

import (
	"context"
	"testing"
	"time"

	"multiplayer-quiz/internal/bank"
	"multiplayer-quiz/internal/domain"
	"multiplayer-quiz/internal/infra/memory"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBankCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	loader := &countingLoader{
		Loader: memory.NewStaticSource(map[string][]domain.Question{
			"default": sampleSet(),
		}),
	}
	cache := NewBankCache(client, loader, time.Minute)

	questions, err := cache.LoadSet(context.Background(), "default")
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if len(questions) != 1 || questions[0].Answer != domain.ChoiceB {
		t.Fatalf("unexpected questions %+v", questions)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("bank:default") {
		t.Fatalf("expected redis key to be set")
	}

	// Second call should hit redis, loader not incremented.
	if _, err := cache.LoadSet(context.Background(), "default"); err != nil {
		t.Fatalf("load set 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestBankCacheMissPropagatesError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewBankCache(client, memory.NewStaticSource(nil), time.Minute)

	if _, err := cache.LoadSet(context.Background(), "missing"); err == nil {
		t.Fatalf("expected loader error to propagate")
	}
}

type countingLoader struct {
	bank.Loader
	calls int
}

func (l *countingLoader) LoadSet(ctx context.Context, setID string) ([]domain.Question, error) {
	l.calls++
	return l.Loader.LoadSet(ctx, setID)
}

func sampleSet() []domain.Question {
	return []domain.Question{
		{
			Text:    "What is 2 + 2?",
			OptionA: "3",
			OptionB: "4",
			OptionC: "5",
			Answer:  domain.ChoiceB,
		},
	}
}
