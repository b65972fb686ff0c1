package request

type SignUpRequest struct {
	Username string `json:"username" validate:"required,slug,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

type TokenRequest struct {
	Username         string `json:"username" validate:"required,slug,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}
