package repository

import (
	"errors"

	"reviews-api/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Category   CategoryRepository
	Genre      GenreRepository
	Title      TitleRepository
	TitleGenre TitleGenreRepository
	Review     ReviewRepository
	Comment    CommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Category:   NewCategoryRepository(db, log),
		Genre:      NewGenreRepository(db, log),
		Title:      NewTitleRepository(db, log),
		TitleGenre: NewTitleGenreRepository(db, log),
		Review:     NewReviewRepository(db, log),
		Comment:    NewCommentRepository(db, log),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint error
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
