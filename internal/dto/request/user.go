package request

type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,slug,max=150"`
	Email     string  `json:"email" validate:"required,email,max=254"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateMeRequest is the self-service subset: role and username are not editable here
type UpdateMeRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
}
