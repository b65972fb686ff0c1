package wire

import (
	"reviews-api/internal/adaptor"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/middleware"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control.
// The static /me segment takes precedence over the {username} param routes.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	authenticate := middleware.Authenticate(repo.User, config.JWT.Secret, log)
	adminOnly := middleware.RequireAdmin(log)

	// ==================== SELF-SERVICE ROUTES ====================
	// Any authenticated user manages their own profile; role stays read-only here
	r.With(authenticate).Get("/api/v1/users/me", userHandler.GetMe)      // GET /api/v1/users/me
	r.With(authenticate).Patch("/api/v1/users/me", userHandler.UpdateMe) // PATCH /api/v1/users/me

	// ==================== ADMIN ROUTES ====================
	// Full user administration - requires both authentication AND admin role
	r.With(authenticate, adminOnly).Get("/api/v1/users", userHandler.GetUsers)                 // GET /api/v1/users?page=1&per_page=10&search=
	r.With(authenticate, adminOnly).Post("/api/v1/users", userHandler.CreateUser)              // POST /api/v1/users
	r.With(authenticate, adminOnly).Get("/api/v1/users/{username}", userHandler.GetUser)       // GET /api/v1/users/{username}
	r.With(authenticate, adminOnly).Patch("/api/v1/users/{username}", userHandler.UpdateUser)  // PATCH /api/v1/users/{username}
	r.With(authenticate, adminOnly).Delete("/api/v1/users/{username}", userHandler.DeleteUser) // DELETE /api/v1/users/{username}
}
