package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ecodesafios-backend/internal/domain"
)

// QuizLoader fetches the full quiz catalog from a backing store.
type QuizLoader interface {
	LoadQuizzes(ctx context.Context) ([]domain.Quiz, error)
}

// Catalog serves the read-only quiz collection, caching the loader's result
// with TTL to avoid repeated backing-store hits.
type Catalog struct {
	loader QuizLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Quiz
	expiresAt time.Time
}

func NewCatalog(loader QuizLoader, ttl time.Duration) *Catalog {
	return &Catalog{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ListQuizzes returns every quiz in seed order.
func (c *Catalog) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return c.load(ctx)
}

// GetQuiz looks up one quiz by id.
func (c *Catalog) GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error) {
	quizzes, err := c.load(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	for _, quiz := range quizzes {
		if quiz.ID == quizID {
			return quiz, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

// PickRandom selects one quiz uniformly from the catalog.
func (c *Catalog) PickRandom(ctx context.Context) (domain.Quiz, error) {
	quizzes, err := c.load(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	if len(quizzes) == 0 {
		return domain.Quiz{}, domain.ErrEmptyCatalog
	}
	c.rndMu.Lock()
	idx := c.rnd.Intn(len(quizzes))
	c.rndMu.Unlock()
	return quizzes[idx], nil
}

func (c *Catalog) load(ctx context.Context) ([]domain.Quiz, error) {
	now := c.clock()

	c.mu.RLock()
	if c.cached != nil && c.expiresAt.After(now) {
		quizzes := c.cached
		c.mu.RUnlock()
		return quizzes, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.cached != nil && c.expiresAt.After(now) {
			quizzes := c.cached
			c.mu.RUnlock()
			return quizzes, nil
		}
		c.mu.RUnlock()

		quizzes, err := c.loader.LoadQuizzes(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cached = quizzes
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return quizzes, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Quiz), nil
}

func (c *Catalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticQuizLoader serves a fixed slice, used for the built-in seed and in
// tests.
type StaticQuizLoader struct {
	quizzes []domain.Quiz
}

func NewStaticQuizLoader(quizzes []domain.Quiz) *StaticQuizLoader {
	return &StaticQuizLoader{quizzes: quizzes}
}

func (l *StaticQuizLoader) LoadQuizzes(_ context.Context) ([]domain.Quiz, error) {
	return l.quizzes, nil
}
