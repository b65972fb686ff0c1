package wire

import (
	"reviews-api/internal/adaptor"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/middleware"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireTitle configures catalogue title routes: public reads, admin writes.
// Routes are registered flat so the nested review and comment paths can
// share the /api/v1/titles subtree without conflicting mounts.
func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	authenticate := middleware.Authenticate(repo.User, config.JWT.Secret, log)
	adminOnly := middleware.RequireAdmin(log)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/titles", titleHandler.GetTitles)         // GET /api/v1/titles?category=&genre=&name=&year=
	r.Get("/api/v1/titles/{titleID}", titleHandler.GetTitle) // GET /api/v1/titles/{title-id}

	// ==================== ADMIN ROUTES ====================
	r.With(authenticate, adminOnly).Post("/api/v1/titles", titleHandler.CreateTitle)              // POST /api/v1/titles
	r.With(authenticate, adminOnly).Patch("/api/v1/titles/{titleID}", titleHandler.UpdateTitle)   // PATCH /api/v1/titles/{title-id}
	r.With(authenticate, adminOnly).Delete("/api/v1/titles/{titleID}", titleHandler.DeleteTitle)  // DELETE /api/v1/titles/{title-id}
}
