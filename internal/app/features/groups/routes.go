// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns the /api/groups subrouter. The caller mounts ListAll
// separately under /api/all-groups to match the client's admin view.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListMine)
	r.Post("/", h.Create)
	r.Put("/{groupId}", h.Update)
	r.Delete("/{groupId}", h.Delete)
	r.Post("/{groupId}/students", h.AddStudent)
	r.Put("/{groupId}/students/{studentId}", h.UpdateStudent)
	r.Delete("/{groupId}/students/{studentId}", h.RemoveStudent)
	r.Get("/{groupId}/attendance", h.GetAttendance)
	r.Post("/{groupId}/attendance", h.SaveAttendance)
	return r
}
