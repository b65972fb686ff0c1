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
	"reviews-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetUsers(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.UserResponse], error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUser(ctx context.Context, username string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, username string) error
	UpdateMe(ctx context.Context, username string, req *request.UpdateMeRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.userRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := s.userRepo.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

func (s *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if strings.EqualFold(req.Username, "me") {
		return nil, fmt.Errorf("username %q is reserved", req.Username)
	}

	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username already taken")
	}

	existing, err = s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered to another user")
	}

	role := entity.RoleUser
	if req.Role != nil {
		role = entity.UserRole(*req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("username or email already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created by admin",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetUser(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", username)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", username)
	}

	applyUserPatch(user, req.Email, req.FirstName, req.LastName, req.Bio)

	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}

	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("email already registered to another user")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("User updated", zap.String("username", username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s not found", username)
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

// UpdateMe applies the self-service subset: role and username stay untouched
func (s *userService) UpdateMe(ctx context.Context, username string, req *request.UpdateMeRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", username)
	}

	applyUserPatch(user, req.Email, req.FirstName, req.LastName, req.Bio)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("email already registered to another user")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func applyUserPatch(user *entity.User, email, firstName, lastName, bio *string) {
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}
