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

type TitleService interface {
	GetTitles(ctx context.Context, req *request.PaginatedRequest, filter repository.TitleFilter) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitleByID(ctx context.Context, titleID string) (*response.TitleResponse, error)
	CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, titleID string, req *request.TitleUpdateRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) GetTitles(ctx context.Context, req *request.PaginatedRequest, filter repository.TitleFilter) (*response.PaginatedResponse[response.TitleResponse], error) {
	titles, err := s.repo.Title.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get titles: %w", err)
	}

	total, err := s.repo.Title.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.buildTitleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, req.Page, req.Limit(), total), nil
}

func (s *titleService) GetTitleByID(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Year > time.Now().Year() {
		return nil, fmt.Errorf("year %d cannot be in the future", req.Year)
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}

	if err := s.linkGenres(ctx, title.ID, genreIDs, now); err != nil {
		// Keep the store consistent if linking fails
		s.repo.Title.Delete(ctx, title.ID)
		return nil, err
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
		zap.Int("genre_count", len(genreIDs)),
	)

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) UpdateTitle(ctx context.Context, titleID string, req *request.TitleUpdateRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	if req.Name != nil {
		title.Name = *req.Name
	}

	if req.Year != nil {
		if *req.Year > time.Now().Year() {
			return nil, fmt.Errorf("year %d cannot be in the future", *req.Year)
		}
		title.Year = *req.Year
	}

	if req.Description != nil {
		title.Description = req.Description
	}

	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}

	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	// A genre list in the patch replaces the existing links
	if req.Genres != nil {
		genreIDs, err := s.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}

		if err := s.repo.TitleGenre.DeleteByTitleID(ctx, title.ID); err != nil {
			return nil, fmt.Errorf("replace title genres: %w", err)
		}

		if err := s.linkGenres(ctx, title.ID, genreIDs, time.Now()); err != nil {
			return nil, err
		}
	}

	s.log.Info("Title updated", zap.String("title_id", titleID))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) DeleteTitle(ctx context.Context, titleID string) error {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return fmt.Errorf("title %s not found", titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return fmt.Errorf("title %s not found", titleID)
	}

	// Reviews, comments and genre links cascade in the database
	if err := s.repo.Title.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		var err error
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			s.log.Warn("Failed to get category for title",
				zap.Error(err),
				zap.String("title_id", title.ID.String()),
			)
		}
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		s.log.Warn("Failed to get genres for title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
	}

	// Mean of review scores, recomputed on every read; nil when no reviews exist
	rating, err := s.repo.Review.GetTitleRating(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("compute title rating: %w", err)
	}

	resp := response.TitleToResponse(title, category, genres, rating)
	return &resp, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("unknown category %s", *slug)
	}

	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	genreIDs := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.repo.Genre.FindBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("check genre: %w", err)
		}
		if genre == nil {
			return nil, fmt.Errorf("unknown genre %s", slug)
		}
		genreIDs = append(genreIDs, genre.ID)
	}
	return genreIDs, nil
}

func (s *titleService) linkGenres(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID, now time.Time) error {
	if len(genreIDs) == 0 {
		return nil
	}

	links := make([]*entity.TitleGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		links[i] = &entity.TitleGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			TitleID: titleID,
			GenreID: genreID,
		}
	}

	if err := s.repo.TitleGenre.CreateBatch(ctx, links); err != nil {
		return fmt.Errorf("link title genres: %w", err)
	}

	return nil
}
