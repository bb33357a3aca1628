// internal/app/store/groups/groupstore.go
package groupstore

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
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, apperr.NotFound("group not found")
		}
		return models.Group{}, err
	}
	return g, nil
}

// GetByCurrentGroupID-style lookups live on the course store; groups are
// found by name only to back the pre-insert uniqueness check.
func (s *Store) ExistsByName(ctx context.Context, name string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"name_ci": text.Fold(name)})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert stores a fully-built group document. The caller (the lifecycle
// manager) allocates the ID up front so the course can be reserved for it
// before this insert runs.
func (s *Store) Insert(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.NameCI = text.Fold(g.Name)
	if g.CourseCost == 0 {
		g.CourseCost = models.DefaultCourseCost
	}
	if g.StudentIDs == nil {
		g.StudentIDs = []primitive.ObjectID{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, apperr.Conflict("group name already exists")
		}
		return models.Group{}, err
	}
	return g, nil
}

// Patch is the partial field update behind PUT /groups/{id}. Nil fields
// are untouched. Course rebinding is not modeled, so patch carries no
// course id; the lifecycle manager rejects attempts before calling here.
type Patch struct {
	Name        *string
	TeacherName *string
	StartDate   *string
	EndDate     *string
	CourseCost  *int
	IsApproved  *bool
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p Patch) (models.Group, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["name"] = *p.Name
		set["name_ci"] = text.Fold(*p.Name)
	}
	if p.TeacherName != nil {
		set["teacher_name"] = *p.TeacherName
	}
	if p.StartDate != nil {
		set["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		set["end_date"] = *p.EndDate
	}
	if p.CourseCost != nil {
		set["course_cost"] = *p.CourseCost
	}
	if p.IsApproved != nil {
		set["is_approved"] = *p.IsApproved
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, apperr.Conflict("group name already exists")
		}
		return models.Group{}, err
	}
	if res.MatchedCount == 0 {
		return models.Group{}, apperr.NotFound("group not found")
	}
	return s.GetByID(ctx, id)
}

// SetApproved flips the approval flag; used by the approve-group action.
func (s *Store) SetApproved(ctx context.Context, id primitive.ObjectID, approved bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_approved": approved,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("group not found")
	}
	return nil
}

// PushStudent appends a student id to the roster.
func (s *Store) PushStudent(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"student_ids": studentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("group not found")
	}
	return nil
}

// PullStudent removes a student id from the roster. Returns NotFound when
// the group exists but the id was not on its roster, so removal of a
// student cannot leave a dangling reference unnoticed.
func (s *Store) PullStudent(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"student_ids": studentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("group not found")
	}
	if res.ModifiedCount == 0 {
		return apperr.NotFound("student is not in this group")
	}
	return nil
}

// Delete removes the group row. The lifecycle manager releases the course
// and deletes students first, so a crash mid-sequence leaves this row as
// evidence of the incomplete deletion.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("group not found")
	}
	return nil
}

// ListByTeacher returns the teacher's groups, newest first.
func (s *Store) ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.Group, error) {
	return s.list(ctx, bson.M{"teacher_id": teacherID})
}

// ListAll returns every group, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Group, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
