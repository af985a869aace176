package ports

import (
	"context"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

// UserRepository is the persistence collaborator for accounts. Emails are
// passed already normalized. Implementations enforce a unique constraint on
// email and report a violation as domain.ErrUserExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID reloads a stored user. Missing users yield domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update writes name, email and password digest of an existing user.
	Update(ctx context.Context, user *domain.User) error
	// UpdateRememberDigest writes only the remember digest; nil clears it.
	UpdateRememberDigest(ctx context.Context, id string, digest *string) error
}
