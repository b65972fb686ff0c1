package request

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Slug string `json:"slug" validate:"required,slug,max=50"`
}
