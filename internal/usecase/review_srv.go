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

type ReviewService interface {
	GetReviews(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, titleID string, actor Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, titleID, reviewID string, actor Actor, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, titleID, reviewID string, actor Actor) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetReviews(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.getTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.getReviewInTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, titleID string, actor Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	title, err := s.getTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	// One review per author per title
	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, actor.ID, title.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("review already exists for this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		// The unique constraint also guards against a concurrent duplicate
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("review already exists for this title")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", title.ID.String()),
		zap.String("author", actor.Username),
	)

	resp := response.ReviewToResponse(review, actor.Username)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, titleID, reviewID string, actor Actor, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.getReviewInTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if review.AuthorID != actor.ID && !actor.canModerate() {
		s.log.Warn("Review edit denied",
			zap.String("review_id", reviewID),
			zap.String("actor", actor.Username),
		)
		return nil, fmt.Errorf("forbidden: not the review author")
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	resp := response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, titleID, reviewID string, actor Actor) error {
	review, err := s.getReviewInTitle(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if review.AuthorID != actor.ID && !actor.canModerate() {
		s.log.Warn("Review delete denied",
			zap.String("review_id", reviewID),
			zap.String("actor", actor.Username),
		)
		return fmt.Errorf("forbidden: not the review author")
	}

	// Comments cascade in the database
	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) getTitle(ctx context.Context, titleID string) (*entity.Title, error) {
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

	return title, nil
}

// getReviewInTitle resolves the review within the given title path segment
func (s *reviewService) getReviewInTitle(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	title, err := s.getTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	return review, nil
}

func (s *reviewService) authorName(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
