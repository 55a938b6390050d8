package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/domain"
)

// ChallengeHandler serves challenge CRUD and completion.
type ChallengeHandler struct {
	challenges *app.ChallengeService
	log        *zap.Logger
}

func NewChallengeHandler(challenges *app.ChallengeService, log *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges, log: log}
}

type challengeRequest struct {
	Title         string `json:"titulo"`
	Description   string `json:"descricao"`
	Difficulty    string `json:"nivelDificuldade"`
	Category      string `json:"categoria"`
	MaxPoints     int    `json:"pontuacaoMaxima"`
	EstimatedDays int    `json:"tempoEstimado"`
}

func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challenges.List(r.Context())
	if err != nil {
		h.log.Error("list challenges failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error fetching challenges")
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := challengeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	challenge, err := h.challenges.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			writeError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		h.log.Error("fetch challenge failed", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error fetching challenge")
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	challenge, err := h.challenges.Create(r.Context(), domain.Challenge{
		Title:         req.Title,
		Description:   req.Description,
		Difficulty:    req.Difficulty,
		Category:      req.Category,
		MaxPoints:     req.MaxPoints,
		EstimatedDays: req.EstimatedDays,
	})
	if err != nil {
		h.log.Error("create challenge failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	writeJSON(w, http.StatusCreated, challenge)
}

func (h *ChallengeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := challengeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	challenge, err := h.challenges.Update(r.Context(), id, domain.Challenge{
		Title:         req.Title,
		Description:   req.Description,
		Difficulty:    req.Difficulty,
		Category:      req.Category,
		MaxPoints:     req.MaxPoints,
		EstimatedDays: req.EstimatedDays,
	})
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			writeError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		h.log.Error("update challenge failed", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := challengeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if err := h.challenges.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			writeError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		h.log.Error("delete challenge failed", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error deleting challenge")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChallengeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	id, err := challengeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	points, err := h.challenges.Complete(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChallengeNotFound), errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "Challenge or user not found")
		case errors.Is(err, domain.ErrChallengeCompleted):
			writeError(w, http.StatusBadRequest, "Challenge already completed")
		default:
			h.log.Error("complete challenge failed", zap.Int("id", id), zap.Int("userId", userID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Error completing challenge")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Challenge completed successfully",
		"pointsEarned": points,
	})
}

func challengeID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
