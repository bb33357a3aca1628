// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/aulahub/aulahub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/notifications subrouter. Role requirements come
// from the authz policy table, not inline checks.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.With(authz.Require(authz.OpCreateNotification)).Post("/", h.Create)
	r.Put("/{id}/read", h.Dismiss)
	r.With(authz.Require(authz.OpApproveUser)).Put("/{id}/approve-user", h.ApproveUser)
	r.With(authz.Require(authz.OpApproveGroup)).Put("/{id}/approve-group", h.ApproveGroup)
	return r
}
