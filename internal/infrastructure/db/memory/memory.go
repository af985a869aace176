// Package memory keeps accounts in process memory. It backs the development
// profile and tests; data is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

// UserRepository implements ports.UserRepository with a mutex-guarded map and
// an email index enforcing uniqueness.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, domain.ErrUserExists
	}

	created := *user
	created.ID = uuid.NewString()
	r.byID[created.ID] = created
	r.byEmail[created.Email] = created.ID
	return clone(created), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
		return domain.ErrUserExists
	}

	current.Name = user.Name
	current.PasswordDigest = user.PasswordDigest
	current.UpdatedAt = user.UpdatedAt
	if current.Email != user.Email {
		delete(r.byEmail, current.Email)
		current.Email = user.Email
		r.byEmail[current.Email] = current.ID
	}
	r.byID[current.ID] = current
	return nil
}

func (r *UserRepository) UpdateRememberDigest(_ context.Context, id string, digest *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RememberDigest = copyString(digest)
	r.byID[id] = u
	return nil
}

// Ping always succeeds.
func (r *UserRepository) Ping(context.Context) error { return nil }

func clone(u domain.User) *domain.User {
	u.RememberDigest = copyString(u.RememberDigest)
	return &u
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// AuditRepository keeps events in insertion order.
type AuditRepository struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := *event
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (r *AuditRepository) Events() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out
}
