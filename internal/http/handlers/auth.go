package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hvergara/auth-service/internal/auth"
	"github.com/hvergara/auth-service/internal/http/respond"
	"github.com/hvergara/auth-service/internal/models/dto"
	"github.com/hvergara/auth-service/internal/service"
)

// AuthHandler exposes the register/login/verify endpoints.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/auth/register", h.handleRegister)
	mux.HandleFunc("/auth/login", h.handleLogin)
	mux.HandleFunc("/auth/verify", h.handleVerify)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	created, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var validation *service.ValidationError
		switch {
		case errors.As(err, &validation):
			respond.Error(w, http.StatusBadRequest, validation.Error())
		case errors.Is(err, service.ErrDuplicateEmail):
			respond.Error(w, http.StatusConflict, service.ErrDuplicateEmail.Error())
		default:
			log.Printf("register error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{
		Message: "user registered successfully",
		User:    created.Public(),
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var validation *service.ValidationError
		switch {
		case errors.As(err, &validation):
			respond.Error(w, http.StatusBadRequest, validation.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		default:
			log.Printf("login error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Message: "login successful",
		Token:   token,
		User:    dto.LoginUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

func (h *AuthHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := h.svc.VerifyToken(r.Header.Get("Authorization"))
	if err != nil {
		respond.JSON(w, http.StatusUnauthorized, dto.VerifyResponse{
			Valid: false,
			Error: verifyErrorMessage(err),
		})
		return
	}

	respond.JSON(w, http.StatusOK, dto.VerifyResponse{
		Valid: true,
		User:  &dto.VerifyUser{UserID: claims.UserID, Email: claims.Email},
	})
}

func verifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingToken):
		return "no token provided"
	case errors.Is(err, auth.ErrTokenExpired):
		return "token expired"
	default:
		return "invalid token"
	}
}
