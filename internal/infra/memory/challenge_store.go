package memory

import (
	"context"
	"sync"
	"time"

	"ecodesafios-backend/internal/domain"
)

// ChallengeStore keeps challenges in process memory.
type ChallengeStore struct {
	mu         sync.RWMutex
	challenges map[int]domain.Challenge
	order      []int
	nextID     int
	clock      func() time.Time
}

func NewChallengeStore(seed []domain.Challenge) *ChallengeStore {
	s := &ChallengeStore{
		challenges: make(map[int]domain.Challenge),
		nextID:     1,
		clock:      time.Now,
	}
	for _, challenge := range seed {
		challenge.ID = s.nextID
		s.nextID++
		s.challenges[challenge.ID] = challenge
		s.order = append(s.order, challenge.ID)
	}
	return s
}

func (s *ChallengeStore) ListChallenges(_ context.Context) ([]domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Challenge, 0, len(s.order))
	for _, id := range s.order {
		if challenge, ok := s.challenges[id]; ok {
			out = append(out, challenge)
		}
	}
	return out, nil
}

func (s *ChallengeStore) GetChallenge(_ context.Context, id int) (domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[id]
	if !ok {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *ChallengeStore) CreateChallenge(_ context.Context, challenge domain.Challenge) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock().UTC().Format(time.RFC3339)
	challenge.ID = s.nextID
	s.nextID++
	challenge.CreatedAt = now
	challenge.UpdatedAt = now
	s.challenges[challenge.ID] = challenge
	s.order = append(s.order, challenge.ID)
	return challenge, nil
}

func (s *ChallengeStore) UpdateChallenge(_ context.Context, id int, update domain.Challenge) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.challenges[id]
	if !ok {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	existing.Title = update.Title
	existing.Description = update.Description
	existing.Difficulty = update.Difficulty
	existing.Category = update.Category
	existing.MaxPoints = update.MaxPoints
	existing.EstimatedDays = update.EstimatedDays
	existing.UpdatedAt = s.clock().UTC().Format(time.RFC3339)
	s.challenges[id] = existing
	return existing, nil
}

func (s *ChallengeStore) DeleteChallenge(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[id]; !ok {
		return domain.ErrChallengeNotFound
	}
	delete(s.challenges, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
