package wire

import (
	"reviews-api/internal/adaptor"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/middleware"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireGenre configures genre routes: public reads, admin writes
func wireGenre(
	r chi.Router,
	genreHandler *adaptor.GenreHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	authenticate := middleware.Authenticate(repo.User, config.JWT.Secret, log)
	adminOnly := middleware.RequireAdmin(log)

	r.Route("/api/v1/genres", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", genreHandler.GetGenres) // GET /api/v1/genres?search=

		// ==================== ADMIN ROUTES ====================
		r.With(authenticate, adminOnly).Post("/", genreHandler.CreateGenre)         // POST /api/v1/genres
		r.With(authenticate, adminOnly).Delete("/{slug}", genreHandler.DeleteGenre) // DELETE /api/v1/genres/{slug}
	})
}
