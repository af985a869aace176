package handler

import (
	"time"

	"github.com/wishlistapp/accounts/internal/core/domain"
	"github.com/wishlistapp/accounts/internal/core/ports"
)

// --- Request types ---

type signupRequest struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty"`
}

type updateProfileRequest struct {
	Name                 *string `json:"name,omitempty"`
	Email                *string `json:"email,omitempty"`
	Password             *string `json:"password,omitempty"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty"`
}

type loginRequest struct {
	Email      string `json:"email" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,max=1024"`
	RememberMe bool   `json:"remember_me"`
}

type resumeRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	RememberToken string `json:"remember_token" validate:"required"`
}

// --- Response types ---

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type sessionResponse struct {
	AccessToken   string       `json:"access_token"`
	RememberToken string       `json:"remember_token,omitempty"`
	User          userResponse `json:"user"`
}

// validationErrorResponse documents the 422 body rendered by the error handler.
type validationErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toSessionResponse(s *ports.Session) sessionResponse {
	return sessionResponse{
		AccessToken:   s.AccessToken,
		RememberToken: s.RememberToken,
		User:          toUserResponse(s.User),
	}
}
