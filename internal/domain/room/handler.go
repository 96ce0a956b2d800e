package room

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusroom/campusroom-api/internal/pkg/response"
)

// Handler handles room catalog HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates room handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List lists active rooms
// GET /rooms
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, rooms)
}

// GetByCode returns a single room
// GET /rooms/{code}
func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	room, err := h.repo.GetByCode(r.Context(), code)
	if err != nil {
		response.InternalError(w)
		return
	}
	if room == nil {
		response.NotFound(w, "Room not found")
		return
	}

	response.OK(w, room)
}

// Routes returns room routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/{code}", h.GetByCode)

	return r
}
