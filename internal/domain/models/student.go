// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionCount is the number of tracked class sessions per group.
// Attendance and activity arrays always hold exactly this many slots.
const SessionCount = 8

// Payment status values derived from MoneyProvided against the owning
// group's CourseCost. Never persisted.
const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Student is an enrolled student, owned by exactly one group.
//
// GroupName is a denormalized copy of the owning group's name taken at
// creation time; it is not kept in sync if the group is renamed.
type Student struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	FullName      string             `bson:"full_name" json:"fullName"`
	MoneyProvided int                `bson:"money_provided" json:"moneyProvided"`
	GroupName     string             `bson:"group_name" json:"groupName"`

	Attendance []bool `bson:"attendance" json:"attendance"`
	Activities []bool `bson:"activities" json:"activities"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PaymentStatus derives the student's payment state for a course cost.
func (s Student) PaymentStatus(courseCost int) string {
	switch {
	case s.MoneyProvided <= 0:
		return PaymentUnpaid
	case s.MoneyProvided < courseCost:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}
