package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	query :=
		`INSERT INTO auth_events (kind, user_id, email, occurred_at)
		 VALUES ($1, $2, $3, $4)`

	userID := sql.NullString{String: event.UserID, Valid: event.UserID != ""}
	if _, err := r.db.ExecContext(ctx, query, string(event.Kind), userID, event.Email, event.OccurredAt.UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
