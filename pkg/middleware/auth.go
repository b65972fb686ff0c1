package middleware

import (
	"net/http"
	"strings"

	"reviews-api/internal/data/entity"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate validates the bearer access token and loads the user into context
func Authenticate(userRepo repository.UserRepository, jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseToken(jwtSecret, parts[1])
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := utils.ParseUUID(claims.UserID)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token claims")
				return
			}

			// Load the user so role changes take effect immediately
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err), zap.String("user_id", claims.UserID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				utils.ResponseUnauthorized(w, "User no longer exists")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Username, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose authenticated role is not admin
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
