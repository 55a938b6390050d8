package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/auth"
)

// Services bundles what the router needs from the application layer.
type Services struct {
	Quizzes    *app.QuizService
	Users      *app.UserService
	Challenges *app.ChallengeService
}

// NewRouter wires every route of the service.
func NewRouter(services Services, tokens *auth.TokenManager, log *zap.Logger) http.Handler {
	authHandler := NewAuthHandler(services.Users, log)
	quizHandler := NewQuizHandler(services.Quizzes, log)
	challengeHandler := NewChallengeHandler(services.Challenges, log)
	userHandler := NewUserHandler(services.Users, log)
	wsHandler := NewWSHandler(services.Quizzes, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", MetricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))

			r.Get("/quiz/random", quizHandler.Random)
			r.Post("/quiz/submit", quizHandler.Submit)

			r.Get("/desafios", challengeHandler.List)
			r.Post("/desafios", challengeHandler.Create)
			r.Get("/desafios/{id}", challengeHandler.Get)
			r.Put("/desafios/{id}", challengeHandler.Update)
			r.Delete("/desafios/{id}", challengeHandler.Delete)
			r.Post("/desafios/{id}/complete", challengeHandler.Complete)

			r.Get("/user/profile", userHandler.Profile)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(tokens))
		r.Get("/ws/quiz", wsHandler.ServeWS)
	})

	return r
}
