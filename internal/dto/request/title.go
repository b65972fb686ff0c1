package request

// TitleRequest is the write shape: category and genres are slug references
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=255"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genre,omitempty" validate:"dive,slug"`
}

type TitleUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=255"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genre,omitempty" validate:"dive,slug"`
}
