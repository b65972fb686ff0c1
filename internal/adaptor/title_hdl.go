package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"reviews-api/internal/data/repository"
	"reviews-api/internal/dto/request"
	"reviews-api/internal/usecase"
	"reviews-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log,
	}
}

// GetTitles handles GET /api/v1/titles
func (h *TitleHandler) GetTitles(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)
	filter := titleFilterFromQuery(r)

	response, err := h.service.GetTitles(r.Context(), req, filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get titles")
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved", response)
}

// GetTitle handles GET /api/v1/titles/{titleID}
func (h *TitleHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")

	response, err := h.service.GetTitleByID(r.Context(), titleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "Title retrieved", response)
}

// CreateTitle handles POST /api/v1/titles
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateTitle(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "Title created", response)
}

// UpdateTitle handles PATCH /api/v1/titles/{titleID}
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")

	var req request.TitleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateTitle(r.Context(), titleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "Title updated", response)
}

// DeleteTitle handles DELETE /api/v1/titles/{titleID}
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")

	if err := h.service.DeleteTitle(r.Context(), titleID); err != nil {
		handleServiceError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}

// titleFilterFromQuery reads the catalogue filter params
func titleFilterFromQuery(r *http.Request) repository.TitleFilter {
	query := r.URL.Query()

	filter := repository.TitleFilter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}

	if raw := query.Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = &year
		}
	}

	return filter
}
