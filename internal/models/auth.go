package models

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Password *string `json:"password"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
