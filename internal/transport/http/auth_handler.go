package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/domain"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users *app.UserService
	log   *zap.Logger
}

func NewAuthHandler(users *app.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	token, user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		h.log.Error("register failed", zap.String("username", req.Username), zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, Username: user.Username, Message: "User registered successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, Username: user.Username, Message: "Login successful"})
}
