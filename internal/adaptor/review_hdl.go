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

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

// GetReviews handles GET /api/v1/titles/{titleID}/reviews
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	req := paginationFromQuery(r)

	response, err := h.service.GetReviews(r.Context(), titleID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved", response)
}

// GetReview handles GET /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	response, err := h.service.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "Review retrieved", response)
}

// CreateReview handles POST /api/v1/titles/{titleID}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateReview(r.Context(), titleID, actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created", response)
}

// UpdateReview handles PATCH /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateReview(r.Context(), titleID, reviewID, actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated", response)
}

// DeleteReview handles DELETE /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	if err := h.service.DeleteReview(r.Context(), titleID, reviewID, actor); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
