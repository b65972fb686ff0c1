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

type GenreService interface {
	GetGenres(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.GenreResponse], error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	log       *zap.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		log:       log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetGenres(ctx context.Context, req *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.genreRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}

	total, err := s.genreRepo.CountAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count genres: %w", err)
	}

	genreResponses := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = response.GenreToResponse(genre)
	}

	return response.NewPaginatedResponse(genreResponses, req.Page, req.Limit(), total), nil
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("duplicate genre slug %s", req.Slug)
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, slug string) error {
	deleted, err := s.genreRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if !deleted {
		return fmt.Errorf("genre %s not found", slug)
	}

	s.log.Info("Genre deleted", zap.String("slug", slug))
	return nil
}
