package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/domain"
)

// QuizHandler serves random quiz delivery and submission grading.
type QuizHandler struct {
	quizzes *app.QuizService
	log     *zap.Logger
}

func NewQuizHandler(quizzes *app.QuizService, log *zap.Logger) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, log: log}
}

// Random returns one quiz, answer key included. The id pins the quiz for
// the follow-up submission.
func (h *QuizHandler) Random(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.RandomQuiz(r.Context())
	if err != nil {
		h.log.Error("fetch random quiz failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error fetching quiz")
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// Submit grades the answers against the quiz named in the body and awards
// the earned points before responding.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var sub domain.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil || sub.QuizID <= 0 || sub.Answers == nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	result, err := h.quizzes.Submit(r.Context(), userID, sub)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error("quiz submission failed", zap.Int("userId", userID), zap.Int("quizId", sub.QuizID), zap.Error(err))
			writeError(w, status, "Error submitting quiz")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
