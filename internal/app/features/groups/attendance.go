// internal/app/features/groups/attendance.go
package groups

import (
	"context"
	"net/http"

	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/lifecycle"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
)

// GetAttendance handles GET /api/groups/{groupId}/attendance: one row of
// 8-slot attendance/activity arrays per roster member.
func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Lifecycle.GetAttendance(ctx, groupID)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if rows == nil {
		rows = []lifecycle.AttendanceRow{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

type saveAttendanceRequest struct {
	Rows []lifecycle.AttendanceRow `json:"rows"`
}

// SaveAttendance handles POST /api/groups/{groupId}/attendance. Rows with
// short or missing arrays are rejected outright rather than corrupting
// the remaining slots.
func (h *Handler) SaveAttendance(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	var req saveAttendanceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Lifecycle.SaveAttendance(ctx, groupID, req.Rows); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "attendance saved")
}
