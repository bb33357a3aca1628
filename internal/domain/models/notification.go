// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationNewUser           NotificationType = "NEW_USER"
	NotificationNewGroup          NotificationType = "NEW_GROUP"
	NotificationWeeklyStats       NotificationType = "WEEKLY_STATS"
	NotificationAttendanceWarning NotificationType = "ATTENDANCE_WARNING"
	NotificationCourseStart       NotificationType = "COURSE_START"
	NotificationCourseEnding      NotificationType = "COURSE_ENDING"
	NotificationGeneral           NotificationType = "GENERAL"
)

// Role targets for notifications. RoleTargetAll broadcasts to every user.
const RoleTargetAll = "all"

// Notification is a single shared row visible to every matching user
// until that user's ID appears in ReadBy. Approval actions delete the
// row outright, removing it for all recipients at once.
//
// Recipient and RoleTarget may both be set; matching is a logical OR.
type Notification struct {
	ID         primitive.ObjectID  `bson:"_id" json:"id"`
	Recipient  *primitive.ObjectID `bson:"recipient,omitempty" json:"recipient,omitempty"`
	RoleTarget string              `bson:"role_target,omitempty" json:"roleTarget,omitempty"`

	Type    NotificationType  `bson:"type" json:"type"`
	Title   string            `bson:"title" json:"title"`
	Message string            `bson:"message" json:"message"`
	Data    map[string]string `bson:"data,omitempty" json:"data,omitempty"`

	ReadBy []primitive.ObjectID `bson:"read_by" json:"readBy"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
