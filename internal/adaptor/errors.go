package adaptor

import (
	"net/http"
	"strings"

	"reviews-api/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto the HTTP error taxonomy
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "forbidden"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "duplicate"):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "reserved"),
		strings.Contains(errMsg, "already"),
		strings.Contains(errMsg, "does not match"),
		strings.Contains(errMsg, "cannot be in the future"),
		strings.Contains(errMsg, "unknown"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
