package wire

import (
	"reviews-api/internal/adaptor"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/middleware"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReview configures review routes nested under their title
func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	authenticate := middleware.Authenticate(repo.User, config.JWT.Secret, log)

	const base = "/api/v1/titles/{titleID}/reviews"

	// ==================== PUBLIC ROUTES ====================
	r.Get(base, reviewHandler.GetReviews)               // GET .../reviews?page=1&per_page=10
	r.Get(base+"/{reviewID}", reviewHandler.GetReview)  // GET .../reviews/{review-id}

	// ==================== AUTHENTICATED ROUTES ====================
	// Author, moderator or admin checks happen in the service layer
	r.With(authenticate).Post(base, reviewHandler.CreateReview)                   // POST .../reviews
	r.With(authenticate).Patch(base+"/{reviewID}", reviewHandler.UpdateReview)    // PATCH .../reviews/{review-id}
	r.With(authenticate).Delete(base+"/{reviewID}", reviewHandler.DeleteReview)   // DELETE .../reviews/{review-id}
}
