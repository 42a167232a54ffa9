package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventpro/internal/delivery/http/controllers"
	"eventpro/internal/delivery/http/middleware"
	"eventpro/internal/domain"

	_ "eventpro/docs"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, authController *controllers.AuthController, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Events: listing is public, creation requires a signed-in user.
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
