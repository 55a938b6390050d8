package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ecodesafios-backend/internal/auth"
	"ecodesafios-backend/internal/domain"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// AuthMiddleware validates the bearer token and attaches its claims to the
// request context. Every protected route trusts the resolved user id.
func AuthMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Access token required")
				return
			}
			claims, err := tokens.Parse(token)
			if err != nil {
				writeError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	// The websocket endpoint cannot set headers from browsers.
	return r.URL.Query().Get("token")
}

// UserID extracts the authenticated user id from the request context.
func UserID(ctx context.Context) (int, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// errorStatus maps domain errors onto HTTP statuses; messages surface
// verbatim to the client.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedSubmission),
		errors.Is(err, domain.ErrChallengeCompleted),
		errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
