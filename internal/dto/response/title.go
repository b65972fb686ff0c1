package response

import (
	"time"

	"reviews-api/internal/data/entity"
)

// TitleResponse is the read shape: nested category/genres plus the computed rating.
// Rating is null when the title has no reviews.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category"`
	Genres      []GenreResponse   `json:"genre"`
	CreatedAt   time.Time         `json:"created_at"`
}

func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genres:      make([]GenreResponse, len(genres)),
		CreatedAt:   title.CreatedAt,
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	for i, genre := range genres {
		resp.Genres[i] = GenreToResponse(genre)
	}

	return resp
}
