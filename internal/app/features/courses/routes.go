// internal/app/features/courses/routes.go
package courses

import "github.com/go-chi/chi/v5"

// Routes returns the course catalog subrouter. Mounted behind the auth
// middleware; any authenticated user may read the catalog.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListAll)
	r.Get("/available", h.ListAvailable)
	return r
}
