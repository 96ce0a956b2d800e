package issue

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusroom/campusroom-api/internal/middleware"
	"github.com/campusroom/campusroom-api/internal/pkg/response"
	"github.com/campusroom/campusroom-api/internal/pkg/validator"
)

// Handler handles issue report HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates issue handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create files a new issue report
// POST /issues
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.CreateReport(r.Context(), actor, &req)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, report)
}

// ListMine lists reports filed by the current user
// GET /issues/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reports, err := h.service.ListMyReports(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// List lists all reports (admin only)
// GET /issues
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &ListFilter{
		Room:     q.Get("room"),
		Category: Category(q.Get("category")),
		Limit:    50,
	}

	reports, total, err := h.service.ListReports(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, reports, response.Meta{
		Total: total,
		Limit: filter.Limit,
	})
}

// GetByID returns a single report (admin only)
// GET /issues/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.service.GetReport(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Report not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, report)
}

// Routes returns issue report routes
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/mine", h.ListMine)

	r.With(adminMiddleware).Get("/", h.List)
	r.With(adminMiddleware).Get("/{id}", h.GetByID)

	return r
}
