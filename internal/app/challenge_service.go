package app

import (
	"context"
	"fmt"

	"ecodesafios-backend/internal/domain"
)

// ChallengeRepository stores the completable challenges.
type ChallengeRepository interface {
	ListChallenges(ctx context.Context) ([]domain.Challenge, error)
	GetChallenge(ctx context.Context, id int) (domain.Challenge, error)
	CreateChallenge(ctx context.Context, challenge domain.Challenge) (domain.Challenge, error)
	UpdateChallenge(ctx context.Context, id int, challenge domain.Challenge) (domain.Challenge, error)
	DeleteChallenge(ctx context.Context, id int) error
}

// ChallengeService covers challenge CRUD and completion. Completion shares
// the point ledger with quiz grading.
type ChallengeService struct {
	challenges ChallengeRepository
	users      UserRepository
}

func NewChallengeService(challenges ChallengeRepository, users UserRepository) *ChallengeService {
	return &ChallengeService{challenges: challenges, users: users}
}

func (s *ChallengeService) List(ctx context.Context) ([]domain.Challenge, error) {
	return s.challenges.ListChallenges(ctx)
}

func (s *ChallengeService) Get(ctx context.Context, id int) (domain.Challenge, error) {
	return s.challenges.GetChallenge(ctx, id)
}

func (s *ChallengeService) Create(ctx context.Context, challenge domain.Challenge) (domain.Challenge, error) {
	challenge.Active = true
	return s.challenges.CreateChallenge(ctx, challenge)
}

func (s *ChallengeService) Update(ctx context.Context, id int, challenge domain.Challenge) (domain.Challenge, error) {
	return s.challenges.UpdateChallenge(ctx, id, challenge)
}

func (s *ChallengeService) Delete(ctx context.Context, id int) error {
	return s.challenges.DeleteChallenge(ctx, id)
}

// Complete awards the challenge's point value to the user exactly once and
// returns the points earned.
func (s *ChallengeService) Complete(ctx context.Context, userID, challengeID int) (int, error) {
	challenge, err := s.challenges.GetChallenge(ctx, challengeID)
	if err != nil {
		return 0, err
	}
	if _, err := s.users.RecordChallengeCompletion(ctx, userID, challengeID, challenge.MaxPoints); err != nil {
		return 0, fmt.Errorf("complete challenge %d: %w", challengeID, err)
	}
	return challenge.MaxPoints, nil
}
