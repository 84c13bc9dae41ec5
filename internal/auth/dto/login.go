package dto

type LoginInput struct {
	// Username accepts either the username or the registered email.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
