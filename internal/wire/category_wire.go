package wire

import (
	"reviews-api/internal/adaptor"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/middleware"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCategory configures category routes: public reads, admin writes
func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	authenticate := middleware.Authenticate(repo.User, config.JWT.Secret, log)
	adminOnly := middleware.RequireAdmin(log)

	r.Route("/api/v1/categories", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", categoryHandler.GetCategories) // GET /api/v1/categories?search=

		// ==================== ADMIN ROUTES ====================
		r.With(authenticate, adminOnly).Post("/", categoryHandler.CreateCategory)         // POST /api/v1/categories
		r.With(authenticate, adminOnly).Delete("/{slug}", categoryHandler.DeleteCategory) // DELETE /api/v1/categories/{slug}
	})
}
