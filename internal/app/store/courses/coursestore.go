// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"errors"
	"time"

	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

// Bootstrap inserts a course for each missing name with is_available=true.
// Existing courses are never touched, so it is safe on every start.
func (s *Store) Bootstrap(ctx context.Context, names []string) error {
	now := time.Now().UTC()
	for _, name := range names {
		course := models.Course{
			ID:          primitive.NewObjectID(),
			Name:        name,
			NameCI:      text.Fold(name),
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		_, err := s.c.UpdateOne(ctx,
			bson.M{"name_ci": course.NameCI},
			bson.M{"$setOnInsert": course},
			options.Update().SetUpsert(true),
		)
		if err != nil && !wafflemongo.IsDup(err) {
			return err
		}
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var c models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Course{}, apperr.NotFound("course not found")
		}
		return models.Course{}, err
	}
	return c, nil
}

// ListAvailable returns courses open for a new group, name ascending.
func (s *Store) ListAvailable(ctx context.Context) ([]models.Course, error) {
	return s.list(ctx, bson.M{"is_available": true})
}

// ListAll returns every course, name ascending.
func (s *Store) ListAll(ctx context.Context) ([]models.Course, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Reserve binds the course to groupID with a single conditional update:
// it matches only while the course is still available, so two concurrent
// group creations against the same course cannot both succeed.
// Returns Conflict when the course exists but is already bound, and
// NotFound when the id does not resolve.
func (s *Store) Reserve(ctx context.Context, courseID, groupID primitive.ObjectID) (models.Course, error) {
	var c models.Course
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": courseID, "is_available": true},
		bson.M{"$set": bson.M{
			"is_available":     false,
			"current_group_id": groupID,
			"updated_at":       time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, err
	}
	// Distinguish "no such course" from "course already in use".
	n, cerr := s.c.CountDocuments(ctx, bson.M{"_id": courseID})
	if cerr != nil {
		return models.Course{}, cerr
	}
	if n == 0 {
		return models.Course{}, apperr.NotFound("course not found")
	}
	return models.Course{}, apperr.Conflict("course already in use")
}

// Release reopens the course. Best-effort: an absent id is not an error,
// since the deletion cascade may race with manual course edits.
func (s *Store) Release(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, courseID, bson.M{"$set": bson.M{
		"is_available":     true,
		"current_group_id": nil,
		"updated_at":       time.Now().UTC(),
	}})
	return err
}
