package memory

import (
	"context"
	"sync"

	"ecodesafios-backend/internal/domain"
)

// UserStore keeps accounts and the point ledger in process memory. Point
// awards are a read-modify-write under one mutex, so concurrent submissions
// from the same account never lose an update.
type UserStore struct {
	mu         sync.RWMutex
	users      map[int]*domain.User
	byUsername map[string]int
	nextID     int
}

func NewUserStore() *UserStore {
	s := &UserStore{
		users:      make(map[int]*domain.User),
		byUsername: make(map[string]int),
		nextID:     1,
	}
	// Demo account, mirrored from the seeded frontend fixtures.
	s.add(&domain.User{Username: "demo", Email: "demo@exemplo.com"})
	return s
}

func (s *UserStore) add(user *domain.User) *domain.User {
	user.ID = s.nextID
	s.nextID++
	if user.CompletedChallenges == nil {
		user.CompletedChallenges = []int{}
	}
	s.users[user.ID] = user
	s.byUsername[user.Username] = user.ID
	return user
}

func (s *UserStore) GetUser(_ context.Context, userID int) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (s *UserStore) GetUserByUsername(_ context.Context, username string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return domain.User{}, false, nil
	}
	return copyUser(s.users[id]), true, nil
}

func (s *UserStore) CreateUser(_ context.Context, username, email, passwordHash string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byUsername[username]; exists {
		return domain.User{}, domain.ErrUsernameTaken
	}
	user := s.add(&domain.User{Username: username, Email: email, Password: passwordHash})
	return copyUser(user), nil
}

func (s *UserStore) AwardPoints(_ context.Context, userID, points int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	user.Points += points
	return user.Points, nil
}

func (s *UserStore) RecordChallengeCompletion(_ context.Context, userID, challengeID, points int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	for _, id := range user.CompletedChallenges {
		if id == challengeID {
			return user.Points, domain.ErrChallengeCompleted
		}
	}
	user.CompletedChallenges = append(user.CompletedChallenges, challengeID)
	user.Points += points
	return user.Points, nil
}

func copyUser(user *domain.User) domain.User {
	out := *user
	out.CompletedChallenges = append([]int(nil), user.CompletedChallenges...)
	return out
}
