// internal/app/store/students/studentstore.go
package studentstore

import (
	"context"
	"errors"
	"time"

	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("students")}
}

// Entry is the caller-supplied part of a new student.
type Entry struct {
	FullName      string
	MoneyProvided int
}

func newStudent(groupName string, e Entry, now time.Time) models.Student {
	return models.Student{
		ID:            primitive.NewObjectID(),
		FullName:      e.FullName,
		MoneyProvided: e.MoneyProvided,
		GroupName:     groupName,
		Attendance:    make([]bool, models.SessionCount),
		Activities:    make([]bool, models.SessionCount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CreateMany inserts one student per entry, all tagged with groupName.
// Attendance and activity arrays default to all-false. The store permits
// empty names; requiredness is a caller concern.
func (s *Store) CreateMany(ctx context.Context, groupName string, entries []Entry) ([]models.Student, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	students := make([]models.Student, 0, len(entries))
	docs := make([]any, 0, len(entries))
	for _, e := range entries {
		st := newStudent(groupName, e, now)
		students = append(students, st)
		docs = append(docs, st)
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return students, nil
}

// AppendOne inserts a single student. The caller is responsible for
// pushing the returned ID onto the owning group's roster.
func (s *Store) AppendOne(ctx context.Context, groupName, fullName string, moneyProvided int) (models.Student, error) {
	st := newStudent(groupName, Entry{FullName: fullName, MoneyProvided: moneyProvided}, time.Now().UTC())
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Student{}, apperr.NotFound("student not found")
		}
		return models.Student{}, err
	}
	return st, nil
}

// FindByIDs returns the students for ids, preserving the ids' order.
// Missing ids are skipped, not errors; the roster may briefly reference
// a student deleted by a concurrent request.
func (s *Store) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var found []models.Student
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Student, len(found))
	for _, st := range found {
		byID[st.ID] = st
	}
	ordered := make([]models.Student, 0, len(found))
	for _, id := range ids {
		if st, ok := byID[id]; ok {
			ordered = append(ordered, st)
		}
	}
	return ordered, nil
}

// UpdatePayment overwrites money_provided unconditionally. There is no
// delta or audit trail; the value is a running counter by convention.
func (s *Store) UpdatePayment(ctx context.Context, id primitive.ObjectID, moneyProvided int) (models.Student, error) {
	if moneyProvided < 0 {
		return models.Student{}, apperr.Invalid("moneyProvided must not be negative")
	}
	return s.patch(ctx, id, bson.M{"money_provided": moneyProvided})
}

// UpdateFields patches name and/or payment. Nil fields are left alone.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, fullName *string, moneyProvided *int) (models.Student, error) {
	set := bson.M{}
	if fullName != nil {
		set["full_name"] = *fullName
	}
	if moneyProvided != nil {
		if *moneyProvided < 0 {
			return models.Student{}, apperr.Invalid("moneyProvided must not be negative")
		}
		set["money_provided"] = *moneyProvided
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}
	return s.patch(ctx, id, set)
}

// UpdateAttendance overwrites both arrays. Slices of the wrong length are
// rejected rather than silently corrupting the remaining slots.
func (s *Store) UpdateAttendance(ctx context.Context, id primitive.ObjectID, attendance, activities []bool) (models.Student, error) {
	if len(attendance) != models.SessionCount || len(activities) != models.SessionCount {
		return models.Student{}, apperr.Invalid("attendance and activities must have exactly %d entries", models.SessionCount)
	}
	return s.patch(ctx, id, bson.M{"attendance": attendance, "activities": activities})
}

func (s *Store) patch(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Student, error) {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return models.Student{}, err
	}
	if res.MatchedCount == 0 {
		return models.Student{}, apperr.NotFound("student not found")
	}
	return s.GetByID(ctx, id)
}

// Remove hard-deletes one student.
func (s *Store) Remove(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("student not found")
	}
	return nil
}

// DeleteMany bulk-deletes students, used by the group deletion cascade.
func (s *Store) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
