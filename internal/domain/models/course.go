// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is one entry in the fixed catalog of offerable courses.
//
// NOTE:
//   - A course is either available or bound to exactly one active group.
//     IsAvailable is false iff CurrentGroupID is set.
//   - Courses are seeded at startup and never deleted.
type Course struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`

	IsAvailable    bool                `bson:"is_available" json:"isAvailable"`
	CurrentGroupID *primitive.ObjectID `bson:"current_group_id,omitempty" json:"currentGroupId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
