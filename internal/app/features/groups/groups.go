// internal/app/features/groups/groups.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/aulahub/aulahub/internal/app/store/groups"
	studentstore "github.com/aulahub/aulahub/internal/app/store/students"
	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"github.com/aulahub/aulahub/internal/app/system/authz"
	"github.com/aulahub/aulahub/internal/app/system/httpx"
	"github.com/aulahub/aulahub/internal/app/system/lifecycle"
	"github.com/aulahub/aulahub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListMine handles GET /api/groups: the caller's groups, newest first.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, r, h.Log, apperr.Unauthorized("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := h.Lifecycle.ListForTeacher(ctx, userID)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if views == nil {
		views = []lifecycle.GroupView{}
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

// ListAll handles GET /api/all-groups: every group, the admin view.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := h.Lifecycle.ListAll(ctx)
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if views == nil {
		views = []lifecycle.GroupView{}
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

type createGroupRequest struct {
	CourseID    string         `json:"courseId"`
	TeacherName string         `json:"teacherName"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	CourseCost  int            `json:"courseCost"`
	Students    []studentEntry `json:"students"`
}

type studentEntry struct {
	FullName      string `json:"fullName"`
	MoneyProvided int    `json:"moneyProvided"`
}

type groupResponse struct {
	Message string              `json:"message"`
	Group   lifecycle.GroupView `json:"group"`
}

// Create handles POST /api/groups. The caller becomes the group's
// teacher; the lifecycle manager does the reserve/insert/notify dance.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, _, teacherID, ok := authz.UserCtx(r)
	if !ok {
		httpx.WriteError(w, r, h.Log, apperr.Unauthorized("authentication required"))
		return
	}

	var req createGroupRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	var courseID primitive.ObjectID
	if req.CourseID != "" {
		var err error
		if courseID, err = primitive.ObjectIDFromHex(req.CourseID); err != nil {
			httpx.WriteError(w, r, h.Log, apperr.Invalid("courseId is not a valid id"))
			return
		}
	}

	entries := make([]studentstore.Entry, 0, len(req.Students))
	for _, s := range req.Students {
		entries = append(entries, studentstore.Entry{
			FullName:      s.FullName,
			MoneyProvided: s.MoneyProvided,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	view, err := h.Lifecycle.CreateGroup(ctx, lifecycle.CreateGroupInput{
		CourseID:    courseID,
		TeacherID:   teacherID,
		TeacherName: req.TeacherName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CourseCost:  req.CourseCost,
		Students:    entries,
	})
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, groupResponse{
		Message: "group created successfully",
		Group:   view,
	})
}

type updateGroupRequest struct {
	// CourseID is decoded only so rebinding attempts can be rejected
	// explicitly instead of silently ignored.
	CourseID    *string `json:"courseId"`
	Name        *string `json:"name"`
	TeacherName *string `json:"teacherName"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	CourseCost  *int    `json:"courseCost"`
	IsApproved  *bool   `json:"isApproved"`
}

// Update handles PUT /api/groups/{groupId}: partial field patch.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	var req updateGroupRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	if req.CourseID != nil {
		httpx.WriteError(w, r, h.Log,
			apperr.Unsupported("reassigning a group to a different course is not supported"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	view, err := h.Lifecycle.UpdateGroup(ctx, groupID, groupstore.Patch{
		Name:        req.Name,
		TeacherName: req.TeacherName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CourseCost:  req.CourseCost,
		IsApproved:  req.IsApproved,
	})
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, groupResponse{
		Message: "group updated successfully",
		Group:   view,
	})
}

// Delete handles DELETE /api/groups/{groupId}: releases the course,
// removes the students, then the group.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Lifecycle.DeleteGroup(ctx, groupID); err != nil {
		httpx.WriteError(w, r, h.Log, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "group and associated students deleted")
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("%s is not a valid id", name)
	}
	return id, nil
}
