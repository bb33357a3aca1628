// internal/app/features/notifications/notifications.go
package notifications

import (
	"context"
	"net/http"
	"strings"

	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/app/system/authz"
	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
	"github.com/aulahub/aulahub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// List handles GET /api/notifications: the caller's current view over
// the shared rows, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, r, h.Log, apperr.Unauthorized("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.ListFor(ctx, userID, role)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

type createRequest struct {
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Data       map[string]string `json:"data"`
	RoleTarget string            `json:"roleTarget"`
	Recipient  string            `json:"recipient"`
}

// validRoleTargets mirrors the roles tokens can carry, plus the
// everyone-broadcast. A typo'd target would create a row no query ever
// matches, so it is rejected up front like an unknown type.
var validRoleTargets = map[string]bool{
	models.RoleAdmin:     true,
	models.RoleTeacher:   true,
	models.RoleTargetAll: true,
}

var validTypes = map[models.NotificationType]bool{
	models.NotificationNewUser:           true,
	models.NotificationNewGroup:          true,
	models.NotificationWeeklyStats:       true,
	models.NotificationAttendanceWarning: true,
	models.NotificationCourseStart:       true,
	models.NotificationCourseEnding:      true,
	models.NotificationGeneral:           true,
}

// Create handles POST /api/notifications (admin only, enforced by the
// route policy). Title and message pass through the strict sanitizer
// since they render in every targeted user's client.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	typ := models.NotificationType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if typ == "" {
		typ = models.NotificationGeneral
	}
	if !validTypes[typ] {
		httpx.WriteError(w, r, h.Log, apperr.Invalid("unknown notification type %q", req.Type))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		httpx.WriteError(w, r, h.Log, apperr.Invalid("title is required"))
		return
	}
	if req.RoleTarget == "" && req.Recipient == "" {
		httpx.WriteError(w, r, h.Log, apperr.Invalid("a roleTarget or recipient is required"))
		return
	}
	roleTarget := strings.ToLower(strings.TrimSpace(req.RoleTarget))
	if roleTarget != "" && !validRoleTargets[roleTarget] {
		httpx.WriteError(w, r, h.Log, apperr.Invalid("unknown roleTarget %q", req.RoleTarget))
		return
	}

	n := models.Notification{
		RoleTarget: roleTarget,
		Type:       typ,
		Title:      h.Sanitizer.Sanitize(req.Title),
		Message:    h.Sanitizer.Sanitize(req.Message),
		Data:       req.Data,
	}
	if req.Recipient != "" {
		rid, err := primitive.ObjectIDFromHex(req.Recipient)
		if err != nil {
			httpx.WriteError(w, r, h.Log, apperr.Invalid("recipient is not a valid id"))
			return
		}
		n.Recipient = &rid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, n)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

// Dismiss handles PUT /api/notifications/{id}/read: hides the row for the
// caller only. Other recipients of a role broadcast keep seeing it.
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, r, h.Log, apperr.Unauthorized("authentication required"))
		return
	}
	id, err := notificationID(r)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.MarkRead(ctx, id, userID); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "notification dismissed")
}

func notificationID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("notification id is not valid")
	}
	return id, nil
}
