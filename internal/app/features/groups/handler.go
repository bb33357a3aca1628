// internal/app/features/groups/handler.go
package groups

import (
	coursestore "github.com/aulahub/aulahub/internal/app/store/courses"
	groupstore "github.com/aulahub/aulahub/internal/app/store/groups"
	notificationstore "github.com/aulahub/aulahub/internal/app/store/notifications"
	studentstore "github.com/aulahub/aulahub/internal/app/store/students"
	"github.com/aulahub/aulahub/internal/app/system/lifecycle"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the group endpoints. All cross-collection writes go
// through the lifecycle manager; handlers only parse, authorize, and
// render.
type Handler struct {
	Lifecycle *lifecycle.Manager
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
	return &Handler{Lifecycle: lm, Log: logger}
}
