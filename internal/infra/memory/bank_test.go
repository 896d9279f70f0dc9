package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"multiplayer-quiz/internal/bank"
	"multiplayer-quiz/internal/domain"
)

func TestStaticSource(t *testing.T) {
	src := NewStaticSource(map[string][]domain.Question{
		"default": sampleSet(),
	})

	questions, err := src.LoadSet(context.Background(), "default")
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	if _, err := src.LoadSet(context.Background(), "missing"); !errors.Is(err, domain.ErrSetNotFound) {
		t.Fatalf("expected set not found, got %v", err)
	}
}

func TestBankCacheCaches(t *testing.T) {
	loader := &countingLoader{
		Loader: NewStaticSource(map[string][]domain.Question{
			"default": sampleSet(),
		}),
	}
	cache := NewBankCache(loader, time.Minute)

	if _, err := cache.LoadSet(context.Background(), "default"); err != nil {
		t.Fatalf("load set: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.LoadSet(context.Background(), "default"); err != nil {
		t.Fatalf("load set 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
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
