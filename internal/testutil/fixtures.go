package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/aulahub/aulahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data directly in
// the collections, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCourse inserts an available course with the given name.
func (f *Fixtures) CreateCourse(ctx context.Context, name string) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("courses").InsertOne(ctx, course); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

// CreateUser inserts a user with the given role. The password hash is a
// placeholder; use the auth feature tests for real credential flows.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateStudent inserts a student tagged with groupName, with default
// attendance/activity arrays.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, groupName string, money int) models.Student {
	f.t.Helper()

	now := time.Now().UTC()
	st := models.Student{
		ID:            primitive.NewObjectID(),
		FullName:      fullName,
		MoneyProvided: money,
		GroupName:     groupName,
		Attendance:    make([]bool, models.SessionCount),
		Activities:    make([]bool, models.SessionCount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("students").InsertOne(ctx, st); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return st
}

// CreateNotification inserts a notification row.
func (f *Fixtures) CreateNotification(ctx context.Context, n models.Notification) models.Notification {
	f.t.Helper()

	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.ReadBy == nil {
		n.ReadBy = []primitive.ObjectID{}
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}
