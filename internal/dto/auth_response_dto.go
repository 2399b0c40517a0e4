package dto

// LoginRequest carries user credentials for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed JWT for an authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
}
