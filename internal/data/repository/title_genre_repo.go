package repository

import (
	"context"
	"fmt"

	"reviews-api/internal/data/entity"
	"reviews-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleGenreRepository interface {
	CreateBatch(ctx context.Context, links []*entity.TitleGenre) error
	DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "title_genre")),
	}
}

func (r *titleGenreRepository) CreateBatch(ctx context.Context, links []*entity.TitleGenre) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin title-genre batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	for _, link := range links {
		if _, err := tx.Exec(ctx, query,
			link.ID,
			link.TitleID,
			link.GenreID,
			link.CreatedAt,
		); err != nil {
			r.log.Error("Failed to link title and genre",
				zap.Error(err),
				zap.String("title_id", link.TitleID.String()),
				zap.String("genre_id", link.GenreID.String()),
			)
			return fmt.Errorf("create title-genre link: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit title-genre batch: %w", err)
	}

	return nil
}

func (r *titleGenreRepository) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	query := `DELETE FROM title_genres WHERE title_id = $1`

	_, err := r.db.Exec(ctx, query, titleID)
	if err != nil {
		r.log.Error("Failed to delete title-genre links",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("delete title-genre links for %s: %w", titleID.String(), err)
	}

	return nil
}
