// internal/app/features/notifications/handler.go
package notifications

import (
	coursestore "github.com/aulahub/aulahub/internal/app/store/courses"
	groupstore "github.com/aulahub/aulahub/internal/app/store/groups"
	notificationstore "github.com/aulahub/aulahub/internal/app/store/notifications"
	studentstore "github.com/aulahub/aulahub/internal/app/store/students"
	"github.com/aulahub/aulahub/internal/app/system/lifecycle"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the notification and approval endpoints. Approving a
// group touches the group record, so the handler carries the lifecycle
// manager alongside the notification store.
type Handler struct {
	Store     *notificationstore.Store
	Lifecycle *lifecycle.Manager
	Sanitizer *bluemonday.Policy
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	lm := lifecycle.NewManager(
		coursestore.New(db),
		groupstore.New(db),
		studentstore.New(db),
		notificationstore.New(db),
		logger,
	)
	return &Handler{
		Store:     notificationstore.New(db),
		Lifecycle: lm,
		Sanitizer: bluemonday.StrictPolicy(),
		Log:       logger,
	}
}
