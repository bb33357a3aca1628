// internal/app/features/students/routes.go
package students

import "github.com/go-chi/chi/v5"

// Routes returns the /api/students subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Put("/{studentId}/payment", h.UpdatePayment)
	return r
}
