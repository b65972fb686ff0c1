package response

import (
	"reviews-api/internal/data/entity"
)

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		Name: genre.Name,
		Slug: genre.Slug,
	}
}
