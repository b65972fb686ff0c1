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

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)
	search := r.URL.Query().Get("search")

	response, err := h.service.GetCategories(r.Context(), req, search)
	if err != nil {
		handleServiceError(w, h.log, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved", response)
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created", response)
}

// DeleteCategory handles DELETE /api/v1/categories/{slug}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeleteCategory(r.Context(), slug); err != nil {
		handleServiceError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseNoContent(w)
}
