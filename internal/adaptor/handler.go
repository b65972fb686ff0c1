package adaptor

import (
	"net/http"

	"reviews-api/internal/dto/request"
	"reviews-api/internal/usecase"
	"reviews-api/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCategoryHandler(service.Category, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Title:    NewTitleHandler(service.Title, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
	}
}

// paginationFromQuery reads page/per_page query params with defaults
func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}
}

// actorFromContext rebuilds the authenticated caller set by the auth middleware
func actorFromContext(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}

	username, _ := utils.GetUsernameFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())

	return usecase.Actor{
		ID:       userID,
		Username: username,
		Role:     role,
	}, true
}
