// internal/app/features/courses/handler.go
package courses

import (
	"context"
	"net/http"

	coursestore "github.com/aulahub/aulahub/internal/app/store/courses"
	groupstore "github.com/aulahub/aulahub/internal/app/store/groups"
	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
	"github.com/aulahub/aulahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the course catalog read endpoints. Courses are only ever
// mutated by the group lifecycle, so this feature is read-only.
type Handler struct {
	Courses *coursestore.Store
	Groups  *groupstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Courses: coursestore.New(db),
		Groups:  groupstore.New(db),
		Log:     logger,
	}
}

// ListAvailable handles GET /api/courses/available.
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := h.Courses.ListAvailable(ctx)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	httpx.WriteJSON(w, http.StatusOK, courses)
}

// courseView is a course with its bound group populated, if any.
type courseView struct {
	models.Course
	CurrentGroup *models.Group `json:"currentGroup,omitempty"`
}

// ListAll handles GET /api/courses: every course, bound group populated.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := h.Courses.ListAll(ctx)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	views := make([]courseView, 0, len(courses))
	for _, c := range courses {
		v := courseView{Course: c}
		if c.CurrentGroupID != nil {
			g, err := h.Groups.GetByID(ctx, *c.CurrentGroupID)
			switch {
			case err == nil:
				v.CurrentGroup = &g
			case apperr.Is(err, apperr.KindNotFound):
				// The bound group vanished out from under the course;
				// the next release will repair the flag.
			default:
				httpx.WriteError(w, r, h.Log, err)
				return
			}
		}
		views = append(views, v)
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}
