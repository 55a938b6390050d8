package domain

// PointsPerCorrectAnswer is the fixed award for each correctly answered
// quiz question.
const PointsPerCorrectAnswer = 100

// UnansweredIndex marks a question slot the user has not answered yet.
// It never matches a correct-answer index.
const UnansweredIndex = -1

// QuizQuestion is a prompt with an ordered list of choices and the index of
// the correct one.
type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Valid reports whether the question has at least two options and the
// correct-answer index points inside them.
func (q QuizQuestion) Valid() bool {
	return len(q.Options) >= 2 && q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}

// Quiz is an ordered, fixed set of questions. Immutable after seeding.
type Quiz struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizResult summarizes one graded submission. It is computed per request
// and never persisted.
type QuizResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	PointsEarned   int `json:"pointsEarned"`
}

// QuizSubmission carries the quiz the client was shown and one answer slot
// per question, in question order. UnansweredIndex means the slot is unset.
type QuizSubmission struct {
	QuizID  int   `json:"quizId"`
	Answers []int `json:"answers"`
}

// User is an account with a cumulative point counter and the set of
// completed challenge ids. Password holds a bcrypt hash.
type User struct {
	ID                  int    `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	Password            string `json:"-"`
	Points              int    `json:"points"`
	CompletedChallenges []int  `json:"completedChallenges"`
}

// Challenge is a completable environmental task with its own point value.
// JSON field names follow the public API (Portuguese, as served to the
// frontend).
type Challenge struct {
	ID            int    `json:"id"`
	Title         string `json:"titulo"`
	Description   string `json:"descricao"`
	Difficulty    string `json:"nivelDificuldade"`
	Category      string `json:"categoria"`
	MaxPoints     int    `json:"pontuacaoMaxima"`
	EstimatedDays int    `json:"tempoEstimado"`
	Active        bool   `json:"statusAtivo"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// Profile is the view of a user returned by the profile endpoint.
type Profile struct {
	ID                  int    `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	Points              int    `json:"points"`
	CompletedChallenges int    `json:"completedChallenges"`
}
