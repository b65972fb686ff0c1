package wire

import (
	"reviews-api/internal/adaptor"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/middleware"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireComment configures comment routes nested under their review
func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	authenticate := middleware.Authenticate(repo.User, config.JWT.Secret, log)

	const base = "/api/v1/titles/{titleID}/reviews/{reviewID}/comments"

	// ==================== PUBLIC ROUTES ====================
	r.Get(base, commentHandler.GetComments)                // GET .../comments?page=1&per_page=10
	r.Get(base+"/{commentID}", commentHandler.GetComment)  // GET .../comments/{comment-id}

	// ==================== AUTHENTICATED ROUTES ====================
	r.With(authenticate).Post(base, commentHandler.CreateComment)                  // POST .../comments
	r.With(authenticate).Patch(base+"/{commentID}", commentHandler.UpdateComment)  // PATCH .../comments/{comment-id}
	r.With(authenticate).Delete(base+"/{commentID}", commentHandler.DeleteComment) // DELETE .../comments/{comment-id}
}
