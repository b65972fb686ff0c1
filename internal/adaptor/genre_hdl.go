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

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log,
	}
}

// GetGenres handles GET /api/v1/genres
func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)
	search := r.URL.Query().Get("search")

	response, err := h.service.GetGenres(r.Context(), req, search)
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved", response)
}

// CreateGenre handles POST /api/v1/genres
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateGenre(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}

	utils.ResponseCreated(w, "Genre created", response)
}

// DeleteGenre handles DELETE /api/v1/genres/{slug}
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.DeleteGenre(r.Context(), slug); err != nil {
		handleServiceError(w, h.log, err, "delete genre")
		return
	}

	utils.ResponseNoContent(w)
}
