package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking routes. Submission role checks live in the service
// (via the role gate); approve/reject additionally sit behind the admin
// middleware.
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// All routes require authentication
	r.Use(authMiddleware)

	r.Post("/", h.Submit)
	r.Get("/", h.List)
	r.Get("/mine", h.ListMine)
	r.Get("/check-availability", h.CheckAvailability)
	r.Get("/{id}", h.GetByID)

	r.With(adminMiddleware).Patch("/{id}/approve", h.Approve)
	r.With(adminMiddleware).Patch("/{id}/reject", h.Reject)

	return r
}
