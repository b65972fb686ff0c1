package repository

import (
	"context"
	"fmt"

	"reviews-api/internal/data/entity"
	"reviews-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindBySlug(ctx context.Context, slug string) (*entity.Genre, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error)
	FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error)
	CountAll(ctx context.Context, search string) (int64, error)
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `
		INSERT INTO genres (id, name, slug, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		genre.ID,
		genre.Name,
		genre.Slug,
		genre.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("slug", genre.Slug),
		)
		return fmt.Errorf("create genre %s: %w", genre.Slug, err)
	}

	return nil
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	query := `SELECT id, name, slug, created_at FROM genres WHERE slug = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&genre.ID,
		&genre.Name,
		&genre.Slug,
		&genre.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find genre by slug %s: %w", slug, err)
	}

	return &genre, nil
}

func (r *genreRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM genres
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("find all genres: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres rows: %w", err)
	}

	return genres, nil
}

// FindByTitleID retrieves the genres linked to a title, ordered by name
func (r *genreRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.created_at
		FROM genres g
		JOIN title_genres tg ON tg.genre_id = g.id
		WHERE tg.title_id = $1
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, titleID)
	if err != nil {
		r.log.Error("Failed to get genres for title",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find genres by title %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
			&genre.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM genres WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var count int64
	err := r.db.QueryRow(ctx, query, search).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count genres", zap.Error(err))
		return 0, fmt.Errorf("count genres: %w", err)
	}

	return count, nil
}

func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	query := `DELETE FROM genres WHERE slug = $1`

	result, err := r.db.Exec(ctx, query, slug)
	if err != nil {
		r.log.Error("Failed to delete genre",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return false, fmt.Errorf("delete genre %s: %w", slug, err)
	}

	return result.RowsAffected() > 0, nil
}
