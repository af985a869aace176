package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository implements ports.AuditRepository on the auth_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// InsertEvent appends one event. The user_id field is omitted for events
// that could not be tied to an account.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"kind":        string(event.Kind),
		"email":       event.Email,
		"occurred_at": event.OccurredAt.UTC(),
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
