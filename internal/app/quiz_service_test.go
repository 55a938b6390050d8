package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/domain"
	"ecodesafios-backend/internal/infra/memory"
)

func TestSeededQuestionsAreValid(t *testing.T) {
	for _, quiz := range memory.SeedQuizzes() {
		if len(quiz.Questions) == 0 {
			t.Fatalf("quiz %d has no questions", quiz.ID)
		}
		for _, question := range quiz.Questions {
			if !question.Valid() {
				t.Fatalf("quiz %d question %d: correctAnswer %d out of range for %d options",
					quiz.ID, question.ID, question.CorrectAnswer, len(question.Options))
			}
		}
	}
}

func TestGradeAllCorrect(t *testing.T) {
	quiz := sustainabilityQuiz(t)

	answers := make([]int, len(quiz.Questions))
	for i, question := range quiz.Questions {
		answers[i] = question.CorrectAnswer
	}

	result, err := app.Grade(quiz, answers)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != len(quiz.Questions) {
		t.Fatalf("expected perfect score %d, got %d", len(quiz.Questions), result.Score)
	}
	if result.PointsEarned != len(quiz.Questions)*domain.PointsPerCorrectAnswer {
		t.Fatalf("expected %d points, got %d", len(quiz.Questions)*100, result.PointsEarned)
	}
}

func TestGradeNoMatches(t *testing.T) {
	quiz := sustainabilityQuiz(t)

	answers := make([]int, len(quiz.Questions))
	for i := range answers {
		answers[i] = domain.UnansweredIndex
	}

	result, err := app.Grade(quiz, answers)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != 0 || result.PointsEarned != 0 {
		t.Fatalf("expected zero score, got %+v", result)
	}
	if result.TotalQuestions != len(quiz.Questions) {
		t.Fatalf("expected total %d, got %d", len(quiz.Questions), result.TotalQuestions)
	}
}

func TestGradeRejectsShortSubmission(t *testing.T) {
	quiz := sustainabilityQuiz(t)

	_, err := app.Grade(quiz, []int{0, 1})
	if !errors.Is(err, domain.ErrMalformedSubmission) {
		t.Fatalf("expected malformed submission error, got %v", err)
	}
}

func TestSubmitAwardsPointsBeforeResponding(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	service := app.NewQuizService(newTestCatalog(), users)

	quiz := sustainabilityQuiz(t)
	answers := make([]int, len(quiz.Questions))
	for i, question := range quiz.Questions {
		answers[i] = question.CorrectAnswer
	}

	result, err := service.Submit(ctx, 1, domain.QuizSubmission{QuizID: quiz.ID, Answers: answers})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 5 || result.TotalQuestions != 5 || result.PointsEarned != 500 {
		t.Fatalf("expected {5 5 500}, got %+v", result)
	}

	user, err := users.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Points != 500 {
		t.Fatalf("expected 500 points applied, got %d", user.Points)
	}
}

func TestSubmitRejectsStaleQuizID(t *testing.T) {
	service := app.NewQuizService(newTestCatalog(), memory.NewUserStore())

	_, err := service.Submit(context.Background(), 1, domain.QuizSubmission{QuizID: 999, Answers: []int{0}})
	if !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestSubmitFailsWhenAwardFails(t *testing.T) {
	service := app.NewQuizService(newTestCatalog(), memory.NewUserStore())

	quiz := sustainabilityQuiz(t)
	answers := make([]int, len(quiz.Questions))
	for i, question := range quiz.Questions {
		answers[i] = question.CorrectAnswer
	}

	// User 42 does not exist; the whole submission must fail, not report
	// a graded result without the award.
	_, err := service.Submit(context.Background(), 42, domain.QuizSubmission{QuizID: quiz.ID, Answers: answers})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func newTestCatalog() *memory.Catalog {
	return memory.NewCatalog(memory.NewStaticQuizLoader(memory.SeedQuizzes()), 5*time.Minute)
}

func sustainabilityQuiz(t *testing.T) domain.Quiz {
	t.Helper()
	for _, quiz := range memory.SeedQuizzes() {
		if quiz.Title == "Sustentabilidade Básica" {
			return quiz
		}
	}
	t.Fatal("seed quiz missing")
	return domain.Quiz{}
}
