// internal/app/features/groups/students.go
package groups

import (
	"context"
	"net/http"

	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/lifecycle"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
)

type addStudentRequest struct {
	FullName      string `json:"fullName"`
	MoneyProvided int    `json:"moneyProvided"`
}

type studentResponse struct {
	Message string                `json:"message"`
	Student lifecycle.StudentView `json:"student"`
}

// AddStudent handles POST /api/groups/{groupId}/students.
func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	var req addStudentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Lifecycle.AddStudent(ctx, groupID, req.FullName, req.MoneyProvided)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, studentResponse{
		Message: "student added to group",
		Student: st,
	})
}

type updateStudentRequest struct {
	FullName      *string `json:"fullName"`
	MoneyProvided *int    `json:"moneyProvided"`
}

// UpdateStudent handles PUT /api/groups/{groupId}/students/{studentId}.
func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	studentID, err := pathID(r, "studentId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	var req updateStudentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Lifecycle.UpdateStudent(ctx, groupID, studentID, req.FullName, req.MoneyProvided)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, studentResponse{
		Message: "student updated",
		Student: st,
	})
}

// RemoveStudent handles DELETE /api/groups/{groupId}/students/{studentId}.
// The roster pull happens before the row delete so the group never points
// at a student that no longer exists.
func (h *Handler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	studentID, err := pathID(r, "studentId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Lifecycle.RemoveStudent(ctx, groupID, studentID); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "student removed from group")
}
