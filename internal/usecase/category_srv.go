package usecase

import (
	"context"
	"fmt"
	"time"

	"reviews-api/internal/data/entity"
	"reviews-api/internal/data/repository"
	"reviews-api/internal/dto/request"
	"reviews-api/internal/dto/response"
	"reviews-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	GetCategories(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.CategoryResponse], error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		log:          log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) GetCategories(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.categoryRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	total, err := s.categoryRepo.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, req.Page, req.Limit(), total), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("duplicate category slug %s", req.Slug)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	deleted, err := s.categoryRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return fmt.Errorf("category %s not found", slug)
	}

	s.log.Info("Category deleted", zap.String("slug", slug))
	return nil
}
