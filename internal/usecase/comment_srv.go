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

type CommentService interface {
	GetComments(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	CreateComment(ctx context.Context, titleID, reviewID string, actor Actor, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, titleID, reviewID, commentID string, actor Actor, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, titleID, reviewID, commentID string, actor Actor) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) GetComments(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		commentResponses[i] = response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	}

	return response.NewPaginatedResponse(commentResponses, req.Page, req.Limit(), total), nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.getCommentInReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) CreateComment(ctx context.Context, titleID, reviewID string, actor Actor, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.String("author", actor.Username),
	)

	resp := response.CommentToResponse(comment, actor.Username)
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, titleID, reviewID, commentID string, actor Actor, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	comment, err := s.getCommentInReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actor.ID && !actor.canModerate() {
		s.log.Warn("Comment edit denied",
			zap.String("comment_id", commentID),
			zap.String("actor", actor.Username),
		)
		return nil, fmt.Errorf("forbidden: not the comment author")
	}

	comment.Text = req.Text

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	resp := response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, titleID, reviewID, commentID string, actor Actor) error {
	comment, err := s.getCommentInReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actor.ID && !actor.canModerate() {
		s.log.Warn("Comment delete denied",
			zap.String("comment_id", commentID),
			zap.String("actor", actor.Username),
		)
		return fmt.Errorf("forbidden: not the comment author")
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *commentService) getReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	title, err := s.repo.Title.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	return review, nil
}

func (s *commentService) getCommentInReview(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("comment %s not found", commentID)
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment %s not found", commentID)
	}

	return comment, nil
}

func (s *commentService) authorName(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
