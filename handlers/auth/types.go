package auth

import (
	"kidspace/middleware"
	"kidspace/models"
	"kidspace/services"
)

// Constants for error messages
const (
	ErrUserNotFound        = "User not found"
	ErrInvalidCredentials  = "Invalid credentials"
	ErrUserCreateFailed    = "Failed to create user"
	ErrTokenGenerateFailed = "Failed to generate token"
	ErrLogoutSuccess       = "Successfully logged out"
)

// LoginRequest model for login endpoints
type LoginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	// Password is only checked for admin accounts
	Password string `json:"password,omitempty"`
}

// RegisterRequest model for registration
type RegisterRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// AuthResponse model for authentication responses
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	User      models.User `json:"user"`
}

type Handler struct {
	Users         *services.UserService
	Auth          *middleware.Authenticator
	SecureCookies bool
}

func NewHandler(users *services.UserService, auth *middleware.Authenticator, secureCookies bool) *Handler {
	return &Handler{Users: users, Auth: auth, SecureCookies: secureCookies}
}
