package response

// SignUpResponse echoes the registration request; it never carries the code
type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
