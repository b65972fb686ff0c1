package wire

import (
	"reviews-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth configures the public sign-up and token exchange routes
func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp) // POST /api/v1/auth/signup
		r.Post("/token", authHandler.Token)   // POST /api/v1/auth/token
	})
}
