package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"ecodesafios-backend/internal/domain"
	"ecodesafios-backend/internal/infra/memory"
)

const catalogKey = "quiz:catalog"

// Catalog caches the quiz collection in a Redis hash (one JSON document per
// quiz id) and falls back to a loader on cache miss. Unlike the in-memory
// catalog the cache survives process restarts and is shared across
// instances.
type Catalog struct {
	client *redis.Client
	loader memory.QuizLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewCatalog(client *redis.Client, loader memory.QuizLoader, ttl time.Duration) *Catalog {
	return &Catalog{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Catalog) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	fields, err := c.client.HGetAll(ctx, catalogKey).Result()
	if err == nil && len(fields) > 0 {
		return decodeCatalog(fields)
	}
	return c.fill(ctx)
}

func (c *Catalog) GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error) {
	raw, err := c.client.HGet(ctx, catalogKey, strconv.Itoa(quizID)).Result()
	if err == nil {
		var quiz domain.Quiz
		if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
			return domain.Quiz{}, fmt.Errorf("decode cached quiz %d: %w", quizID, err)
		}
		return quiz, nil
	}

	quizzes, err := c.fill(ctx)
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

func (c *Catalog) PickRandom(ctx context.Context) (domain.Quiz, error) {
	quizzes, err := c.ListQuizzes(ctx)
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

// fill loads the catalog from the backing store and writes it through to
// Redis. Singleflight keeps concurrent misses down to one loader call.
func (c *Catalog) fill(ctx context.Context) ([]domain.Quiz, error) {
	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check in case another goroutine filled the hash.
		fields, err := c.client.HGetAll(ctx, catalogKey).Result()
		if err == nil && len(fields) > 0 {
			return decodeCatalogAny(fields)
		}

		quizzes, err := c.loader.LoadQuizzes(ctx)
		if err != nil {
			return nil, err
		}

		pipe := c.client.Pipeline()
		for _, quiz := range quizzes {
			data, err := json.Marshal(quiz)
			if err != nil {
				return nil, fmt.Errorf("encode quiz %d: %w", quiz.ID, err)
			}
			pipe.HSet(ctx, catalogKey, strconv.Itoa(quiz.ID), data)
		}
		if c.ttl > 0 {
			pipe.Expire(ctx, catalogKey, c.ttlWithJitter())
		}
		_, _ = pipe.Exec(ctx)

		return quizzes, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Quiz), nil
}

func decodeCatalog(fields map[string]string) ([]domain.Quiz, error) {
	quizzes := make([]domain.Quiz, 0, len(fields))
	for id, raw := range fields {
		var quiz domain.Quiz
		if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
			return nil, fmt.Errorf("decode cached quiz %s: %w", id, err)
		}
		quizzes = append(quizzes, quiz)
	}
	// Hash iteration is unordered; seed order follows the ids.
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes, nil
}

func decodeCatalogAny(fields map[string]string) (interface{}, error) {
	return decodeCatalog(fields)
}

func (c *Catalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
