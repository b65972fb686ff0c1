package adaptor

import (
	"encoding/json"
	"net/http"

	"reviews-api/internal/dto/request"
	"reviews-api/internal/usecase"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log,
	}
}

// GetComments handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	req := paginationFromQuery(r)

	response, err := h.service.GetComments(r.Context(), titleID, reviewID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved", response)
}

// GetComment handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	response, err := h.service.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved", response)
}

// CreateComment handles POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateComment(r.Context(), titleID, reviewID, actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created", response)
}

// UpdateComment handles PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateComment(r.Context(), titleID, reviewID, commentID, actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated", response)
}

// DeleteComment handles DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	if err := h.service.DeleteComment(r.Context(), titleID, reviewID, commentID, actor); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
