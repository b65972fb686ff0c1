package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reviews-api/internal/data/entity"
	"reviews-api/internal/data/repository"
	"reviews-api/internal/dto/request"
	"reviews-api/internal/dto/response"
	"reviews-api/pkg/email"
	"reviews-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error)
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	sender email.Sender
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	sender email.Sender,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		sender: sender,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// SignUp registers a user (or re-requests a code for an existing one) and
// emails a fresh confirmation code. Re-submitting the same username/email
// pair is idempotent; the code is regenerated each time.
func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Sign-up validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if strings.EqualFold(req.Username, "me") {
		return nil, fmt.Errorf("username %q is reserved", req.Username)
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username")
	}

	if user != nil {
		// Existing username: the email must match the registered record
		if user.Email != req.Email {
			s.log.Warn("Sign-up email mismatch", zap.String("username", req.Username))
			return nil, fmt.Errorf("email does not match the registered user")
		}
	} else {
		// Fresh username: the email must not belong to someone else
		existing, err := s.repo.User.FindByEmail(ctx, req.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to check email")
		}
		if existing != nil {
			return nil, fmt.Errorf("email already registered to another user")
		}

		now := time.Now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username: req.Username,
			Email:    req.Email,
			Role:     entity.RoleUser,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, fmt.Errorf("username or email already taken")
			}
			s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
			return nil, fmt.Errorf("failed to create account")
		}
	}

	code := utils.GenerateConfirmationCode(s.config.Code.Length)

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return nil, fmt.Errorf("failed to generate confirmation code")
	}

	hashStr := string(hash)
	user.ConfirmationCode = &hashStr
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store confirmation code",
			zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to store confirmation code")
	}

	// Synchronous, unretried: a delivery failure aborts the request
	if err := s.sender.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		return nil, fmt.Errorf("failed to send confirmation code")
	}

	s.log.Info("Confirmation code issued",
		zap.String("username", user.Username),
		zap.String("email", user.Email))

	return &response.SignUpResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Token exchanges a confirmation code for an access token. The code stays
// valid for further exchanges until the next sign-up replaces it.
func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token",
			zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Username)
	}

	if user.ConfirmationCode == nil {
		s.log.Warn("Token exchange without issued code", zap.String("username", req.Username))
		return nil, fmt.Errorf("forbidden: invalid confirmation code")
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(*user.ConfirmationCode), []byte(req.ConfirmationCode),
	); err != nil {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return nil, fmt.Errorf("forbidden: invalid confirmation code")
	}

	token, err := utils.GenerateToken(
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		user.ID,
		user.Username,
		string(user.Role),
	)
	if err != nil {
		s.log.Error("Failed to mint access token",
			zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to mint token")
	}

	s.log.Info("Access token issued", zap.String("username", user.Username))

	return &response.TokenResponse{Token: token}, nil
}
