package usecase

import (
	"reviews-api/internal/data/entity"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/email"
	"reviews-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(repo *repository.Repository, sender email.Sender, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, sender, config, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Title:    NewTitleService(repo, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}

// Actor is the authenticated caller, as loaded by the auth middleware
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     string
}

// canModerate reports whether the actor may edit someone else's content
func (a Actor) canModerate() bool {
	return a.Role == string(entity.RoleModerator) || a.Role == string(entity.RoleAdmin)
}
