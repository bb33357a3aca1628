// internal/app/features/notifications/approvals.go
package notifications

import (
	"context"
	"net/http"

	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
	"github.com/aulahub/aulahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// The approval actions resolve a pending notification globally: unlike
// Dismiss, the row is deleted for every recipient at once.

// ApproveUser handles PUT /api/notifications/{id}/approve-user.
//
// There is nothing durable to flip on the user record; approval means
// the pending alert goes away for all admins. Kept deliberately: an
// approved user and a never-flagged user are indistinguishable, pending
// product clarification on whether approval should persist.
func (h *Handler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := notificationID(r)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if n.Type != models.NotificationNewUser {
		httpx.WriteError(w, r, h.Log,
			apperr.Invalid("notification is not a user registration"))
		return
	}
	if err := h.Store.Delete(ctx, id); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	h.Log.Info("user registration approved",
		zap.String("notification_id", id.Hex()),
		zap.String("user_id", n.Data["userId"]))
	httpx.WriteMessage(w, http.StatusOK, "user approved")
}

// ApproveGroup handles PUT /api/notifications/{id}/approve-group: marks
// the referenced group approved, then removes the alert for everyone.
func (h *Handler) ApproveGroup(w http.ResponseWriter, r *http.Request) {
	id, err := notificationID(r)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if n.Type != models.NotificationNewGroup {
		httpx.WriteError(w, r, h.Log,
			apperr.Invalid("notification is not a group creation"))
		return
	}
	groupID, err := primitive.ObjectIDFromHex(n.Data["groupId"])
	if err != nil {
		httpx.WriteError(w, r, h.Log,
			apperr.Invalid("notification carries no valid group reference"))
		return
	}
	if err := h.Lifecycle.ApproveGroup(ctx, groupID); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if err := h.Store.Delete(ctx, id); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "group approved")
}
