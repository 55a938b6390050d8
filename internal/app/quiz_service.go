package app

import (
	"context"
	"fmt"

	"ecodesafios-backend/internal/domain"
)

// QuizRepository provides read access to the quiz catalog. The catalog is
// seeded once at startup and never mutated.
type QuizRepository interface {
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error)
	PickRandom(ctx context.Context) (domain.Quiz, error)
}

// UserRepository stores accounts and the cumulative point ledger.
type UserRepository interface {
	GetUser(ctx context.Context, userID int) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, bool, error)
	CreateUser(ctx context.Context, username, email, passwordHash string) (domain.User, error)
	// AwardPoints atomically adds points to the user's total and returns
	// the new total. Fails with domain.ErrUserNotFound without touching
	// any state.
	AwardPoints(ctx context.Context, userID, points int) (int, error)
	// RecordChallengeCompletion marks the challenge completed and awards
	// its points in one step. Fails with domain.ErrChallengeCompleted if
	// the user already completed it.
	RecordChallengeCompletion(ctx context.Context, userID, challengeID, points int) (int, error)
}

// QuizService serves quizzes and grades submissions.
type QuizService struct {
	quizzes QuizRepository
	users   UserRepository
}

func NewQuizService(quizzes QuizRepository, users UserRepository) *QuizService {
	return &QuizService{quizzes: quizzes, users: users}
}

// RandomQuiz returns one quiz picked uniformly from the catalog, answer key
// included. The quiz id must round-trip back in the submission so grading
// runs against the same quiz the client was shown.
func (s *QuizService) RandomQuiz(ctx context.Context) (domain.Quiz, error) {
	return s.quizzes.PickRandom(ctx)
}

// Submit grades the submission against the pinned quiz and applies the
// earned points to the user before returning. A failed point award fails
// the whole submission; no partial result is ever reported.
func (s *QuizService) Submit(ctx context.Context, userID int, sub domain.QuizSubmission) (domain.QuizResult, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, sub.QuizID)
	if err != nil {
		return domain.QuizResult{}, err
	}

	result, err := Grade(quiz, sub.Answers)
	if err != nil {
		return domain.QuizResult{}, err
	}

	if _, err := s.users.AwardPoints(ctx, userID, result.PointsEarned); err != nil {
		return domain.QuizResult{}, fmt.Errorf("award quiz points: %w", err)
	}
	return result, nil
}

// Grade counts strict matches between answers and the quiz's answer key.
// The answers slice must hold exactly one entry per question; unset
// (domain.UnansweredIndex) or out-of-range entries never match.
func Grade(quiz domain.Quiz, answers []int) (domain.QuizResult, error) {
	if len(answers) != len(quiz.Questions) {
		return domain.QuizResult{}, domain.ErrMalformedSubmission
	}

	score := 0
	for i, question := range quiz.Questions {
		if answers[i] == question.CorrectAnswer {
			score++
		}
	}
	return domain.QuizResult{
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		PointsEarned:   score * domain.PointsPerCorrectAnswer,
	}, nil
}
