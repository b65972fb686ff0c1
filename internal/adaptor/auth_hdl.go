package adaptor

import (
	"encoding/json"
	"net/http"

	"reviews-api/internal/dto/request"
	"reviews-api/internal/usecase"
	"reviews-api/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "sign up")
		return
	}

	utils.ResponseSuccess(w, "Confirmation code sent", response)
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Token(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "exchange token")
		return
	}

	utils.ResponseSuccess(w, "Token issued", response)
}
