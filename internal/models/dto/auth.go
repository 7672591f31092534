package dto

import "github.com/hvergara/auth-service/internal/models"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

// LoginUser omits createdAt; login only echoes identity fields.
type LoginUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// VerifyUser mirrors the token claims, not the stored record.
type VerifyUser struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

type VerifyResponse struct {
	Valid bool        `json:"valid"`
	User  *VerifyUser `json:"user,omitempty"`
	Error string      `json:"error,omitempty"`
}
