package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"multiplayer-quiz/internal/bank"
	"multiplayer-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankCache caches question sets in Redis as JSON values and falls back
// to a loader on cache miss, so several game servers can share one bank.
// Sets are stored as: SET bank:{setID} {json} EX ttl
type BankCache struct {
	client *redis.Client
	loader bank.Loader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankCache(client *redis.Client, loader bank.Loader, ttl time.Duration) *BankCache {
	return &BankCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *BankCache) LoadSet(ctx context.Context, setID string) ([]domain.Question, error) {
	key := c.key(setID)

	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		return decodeSet(raw)
	}

	result, err, _ := c.sf.Do(setID, func() (interface{}, error) {
		// Re-check the cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Result(); err == nil {
			return decodeSet(raw)
		}

		questions, err := c.loader.LoadSet(ctx, setID)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("marshal question set: %w", err)
		}
		// best-effort: a failed SET only costs the next caller a reload
		_ = c.client.Set(ctx, key, string(data), c.ttlWithJitter()).Err()

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *BankCache) key(setID string) string {
	return "bank:" + setID
}

func decodeSet(raw string) ([]domain.Question, error) {
	var questions []domain.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("unmarshal question set: %w", err)
	}
	return questions, nil
}

func (c *BankCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
