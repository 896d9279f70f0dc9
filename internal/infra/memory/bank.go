package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"multiplayer-quiz/internal/bank"
	"multiplayer-quiz/internal/domain"

	"golang.org/x/sync/singleflight"
)

// StaticSource serves question sets from an in-memory map; useful for
// tests and for the built-in sample bank.
type StaticSource struct {
	sets map[string][]domain.Question
}

func NewStaticSource(sets map[string][]domain.Question) *StaticSource {
	return &StaticSource{sets: sets}
}

func (s *StaticSource) LoadSet(_ context.Context, setID string) ([]domain.Question, error) {
	if qs, ok := s.sets[setID]; ok {
		return qs, nil
	}
	return nil, domain.ErrSetNotFound
}

// BankCache caches question sets with a TTL so repeated game starts do
// not re-hit the backing store. Concurrent misses for the same set are
// coalesced.
type BankCache struct {
	loader bank.Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewBankCache(loader bank.Loader, ttl time.Duration) *BankCache {
	return &BankCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSet),
	}
}

func (c *BankCache) LoadSet(ctx context.Context, setID string) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[setID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(setID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[setID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadSet(ctx, setID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[setID] = cachedSet{
			questions: questions,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *BankCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
