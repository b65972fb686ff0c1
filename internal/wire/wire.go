package wire

import (
	"net/http"

	"reviews-api/internal/adaptor"
	"reviews-api/internal/data/repository"
	"reviews-api/internal/usecase"
	"reviews-api/pkg/email"
	"reviews-api/pkg/middleware"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, sender email.Sender, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, sender, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, repo, config, logger)
	wireCategory(r, handler.Category, repo, config, logger)
	wireGenre(r, handler.Genre, repo, config, logger)
	wireTitle(r, handler.Title, repo, config, logger)
	wireReview(r, handler.Review, repo, config, logger)
	wireComment(r, handler.Comment, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
