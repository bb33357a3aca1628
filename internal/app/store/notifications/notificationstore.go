// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"errors"
	"time"

	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Create persists a notification row. Delivery is persistence only;
// clients poll ListFor.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()
	if n.ReadBy == nil {
		n.ReadBy = []primitive.ObjectID{}
	}
	n.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Notification, error) {
	var n models.Notification
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Notification{}, apperr.NotFound("notification not found")
		}
		return models.Notification{}, err
	}
	return n, nil
}

// ListFor returns the user's current view: rows targeted at them directly,
// at their role, or at everyone, excluding rows they have dismissed.
// Newest first. Rows are shared, not copied per user.
func (s *Store) ListFor(ctx context.Context, userID primitive.ObjectID, role string) ([]models.Notification, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"recipient": userID},
			{"role_target": role},
			{"role_target": models.RoleTargetAll},
		},
		"read_by": bson.M{"$ne": userID},
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead hides the row for one user only ($addToSet, so repeat calls
// are no-ops). Other recipients of a role broadcast keep seeing it.
func (s *Store) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{"read_by": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

// Delete removes the row for every recipient at once. Only the approval
// actions use this; ordinary dismissal goes through MarkRead.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}
