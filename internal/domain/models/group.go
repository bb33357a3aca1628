// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCourseCost is applied when a group is created without a cost.
const DefaultCourseCost = 1000

// Group is an active cohort bound to exactly one course.
//
// NOTE:
//   - Name equals the course name at creation time and is unique.
//   - The bound course's CurrentGroupID must equal this group's ID
//     for the lifetime of the group.
//   - Student documents are referenced by ID, not embedded; TeacherName
//     is a point-in-time copy and may drift if the user is renamed.
type Group struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`

	CourseID    primitive.ObjectID `bson:"course_id" json:"courseId"`
	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacherId"`
	TeacherName string             `bson:"teacher_name" json:"teacherName"`

	StartDate  string `bson:"start_date" json:"startDate"`
	EndDate    string `bson:"end_date" json:"endDate"`
	CourseCost int    `bson:"course_cost" json:"courseCost"`

	IsApproved bool `bson:"is_approved" json:"isApproved"`

	StudentIDs []primitive.ObjectID `bson:"student_ids" json:"studentIds"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
