package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/glutt28/ecommerce-prototype/internal/auth"
	"github.com/glutt28/ecommerce-prototype/internal/models"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(users repository.UserRepository, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		users:      users,
		jwtService: jwtService,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles user registration
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Name == "" {
		respondJSONError(w, "email and name are required", http.StatusBadRequest)
		return
	}

	// Check if email already exists
	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		respondJSONError(w, "email already registered", http.StatusConflict)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			respondJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[API] Failed to hash password: %v", err)
		respondJSONError(w, "registration failed", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         "customer",
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		log.Printf("[API] Failed to create user: %v", err)
		respondJSONError(w, "registration failed", http.StatusInternalServerError)
		return
	}

	h.respondWithToken(w, user, http.StatusCreated)
}

// Login handles user login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		respondJSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondJSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.respondWithToken(w, user, http.StatusOK)
}

func (h *AuthHandlers) respondWithToken(w http.ResponseWriter, user *models.User, status int) {
	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("[API] Failed to generate token for %s: %v", user.ID, err)
		respondJSONError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, status, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
	})
}
