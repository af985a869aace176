package ports

import (
	"context"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

// SignupInput carries the raw form values of a new account.
type SignupInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation *string // nil when the form has no confirmation field
}

// LoginInput carries password login credentials.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// UpdateProfileInput is a partial update; nil fields are left unchanged.
// Password rules only run when Password is set.
type UpdateProfileInput struct {
	Name                 *string
	Email                *string
	Password             *string
	PasswordConfirmation *string
}

// Session is the result of a successful login.
type Session struct {
	User        *domain.User
	AccessToken string
	// RememberToken is the raw persistent-login token, empty unless the
	// login asked to be remembered.
	RememberToken string
}

// AccountService defines the account use cases.
type AccountService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	ResumeSession(ctx context.Context, userID, rememberToken string) (*Session, error)
	Logout(ctx context.Context, userID string) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error)
}
