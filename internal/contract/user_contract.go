package contract

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	// bcrypt rejects inputs over 72 bytes, so the cap is enforced up front.
	Password string `json:"password" validate:"required,max=72"`
}

type UserLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type UserLoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
