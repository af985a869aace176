package ports

import (
	"context"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

// AuditRepository appends account events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
