package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/domain"
)

// UserHandler serves the profile view.
type UserHandler struct {
	users *app.UserService
	log   *zap.Logger
}

func NewUserHandler(users *app.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	profile, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("fetch profile failed", zap.Int("userId", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error fetching user profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
