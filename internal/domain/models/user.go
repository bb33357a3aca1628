// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Teachers own groups; admins additionally manage
// notifications and approvals.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// User represents admins and teachers. Email is unique.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`

	PhotoURL  string `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	BirthDate string `bson:"birth_date,omitempty" json:"birthDate,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
