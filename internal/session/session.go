package session

import (
	"context"
	"errors"
	"sync"

	"ecodesafios-backend/internal/domain"
)

// State enumerates the phases of one quiz run.
type State int

const (
	StateInProgress State = iota
	StateSubmitting
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotInProgress rejects mutations once the quiz left InProgress.
	ErrNotInProgress = errors.New("quiz session is not in progress")
	// ErrSubmissionInFlight rejects a second Submit while one is pending.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrAtLastQuestion rejects Advance on the final question.
	ErrAtLastQuestion = errors.New("already at the last question")
	// ErrAtFirstQuestion rejects Retreat on the first question.
	ErrAtFirstQuestion = errors.New("already at the first question")
	// ErrUnansweredQuestions blocks Submit until every slot is answered.
	ErrUnansweredQuestions = errors.New("not every question is answered")
	// ErrInvalidQuestion rejects an out-of-range question index.
	ErrInvalidQuestion = errors.New("question index out of range")
	// ErrInvalidOption rejects an out-of-range option choice.
	ErrInvalidOption = errors.New("option choice out of range")
	// ErrEmptyQuiz rejects starting a session without questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
)

// Grader submits the collected answers for scoring. Transports plug in an
// HTTP client, a websocket round-trip or the in-process service.
type Grader func(ctx context.Context, sub domain.QuizSubmission) (domain.QuizResult, error)

// Session walks a user through one quiz: one answer slot per question,
// back-and-forth navigation, then a single all-or-nothing submission.
// Safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	quiz    domain.Quiz
	current int
	answers []int
	state   State
	result  domain.QuizResult
	err     error
}

// New starts a session at the first question with every slot unanswered.
func New(quiz domain.Quiz) (*Session, error) {
	if len(quiz.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	s := &Session{}
	s.init(quiz)
	return s, nil
}

func (s *Session) init(quiz domain.Quiz) {
	answers := make([]int, len(quiz.Questions))
	for i := range answers {
		answers[i] = domain.UnansweredIndex
	}
	s.quiz = quiz
	s.current = 0
	s.answers = answers
	s.state = StateInProgress
	s.result = domain.QuizResult{}
	s.err = nil
}

// SelectAnswer records (or overwrites) the choice for a question. It never
// auto-advances.
func (s *Session) SelectAnswer(questionIndex, choice int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if questionIndex < 0 || questionIndex >= len(s.quiz.Questions) {
		return ErrInvalidQuestion
	}
	if choice < 0 || choice >= len(s.quiz.Questions[questionIndex].Options) {
		return ErrInvalidOption
	}
	s.answers[questionIndex] = choice
	return nil
}

// Advance moves to the next question. Rejected on the last one.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if s.current >= len(s.quiz.Questions)-1 {
		return ErrAtLastQuestion
	}
	s.current++
	return nil
}

// Retreat moves to the previous question. Rejected on the first one.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if s.current <= 0 {
		return ErrAtFirstQuestion
	}
	s.current--
	return nil
}

// Submit sends the answers through the grader. It only runs when every
// question is answered, and a second call while one is pending is rejected.
func (s *Session) Submit(ctx context.Context, grade Grader) (domain.QuizResult, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return domain.QuizResult{}, ErrSubmissionInFlight
	}
	if s.state != StateInProgress {
		s.mu.Unlock()
		return domain.QuizResult{}, ErrNotInProgress
	}
	for _, a := range s.answers {
		if a == domain.UnansweredIndex {
			s.mu.Unlock()
			return domain.QuizResult{}, ErrUnansweredQuestions
		}
	}
	s.state = StateSubmitting
	sub := domain.QuizSubmission{
		QuizID:  s.quiz.ID,
		Answers: append([]int(nil), s.answers...),
	}
	s.mu.Unlock()

	result, err := grade(ctx, sub)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.err = err
		return domain.QuizResult{}, err
	}
	s.state = StateCompleted
	s.result = result
	return result, nil
}

// Reset discards all progress and starts over with a fresh quiz. Allowed
// from any state except mid-submission; the original UI offers a new quiz
// both after completion and in the middle of one.
func (s *Session) Reset(quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	if len(quiz.Questions) == 0 {
		return ErrEmptyQuiz
	}
	s.init(quiz)
	return nil
}

// Current returns the index and question being viewed.
func (s *Session) Current() (int, domain.QuizQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.quiz.Questions[s.current]
}

// Answer returns the recorded choice for a question, or
// domain.UnansweredIndex when unset.
func (s *Session) Answer(questionIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if questionIndex < 0 || questionIndex >= len(s.answers) {
		return domain.UnansweredIndex
	}
	return s.answers[questionIndex]
}

// AnsweredCount reports how many slots hold a choice.
func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.answers {
		if a != domain.UnansweredIndex {
			count++
		}
	}
	return count
}

// AllAnswered reports whether the session is ready to submit.
func (s *Session) AllAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.answers {
		if a == domain.UnansweredIndex {
			return false
		}
	}
	return true
}

// Quiz returns the quiz this session runs against.
func (s *Session) Quiz() domain.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// State reports the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the grading outcome once Completed.
func (s *Session) Result() (domain.QuizResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.state == StateCompleted
}

// Err returns the failure once Failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
