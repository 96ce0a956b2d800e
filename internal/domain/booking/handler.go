package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusroom/campusroom-api/internal/middleware"
	"github.com/campusroom/campusroom-api/internal/pkg/response"
	"github.com/campusroom/campusroom-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit creates a booking request
// POST /bookings
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	created, err := h.service.SubmitBooking(r.Context(), actor, &req)
	if err != nil {
		var conflict *SlotConflictError
		switch {
		case errors.As(err, &conflict):
			response.ErrorWithData(w, http.StatusConflict, "SLOT_CONFLICT",
				"The requested slot is already booked",
				map[string]interface{}{"conflicting_booking": conflict.Conflicting})
		case errors.Is(err, ErrUnauthorized):
			response.Forbidden(w, "Only class representatives and admins may book rooms")
		case errors.Is(err, ErrInvalidWindow):
			response.ValidationError(w, map[string]string{"end_time": "End time must be after start time"})
		case errors.Is(err, ErrPastDate):
			response.ValidationError(w, map[string]string{"date": "Booking date must not be in the past"})
		case errors.Is(err, ErrUnknownRoom):
			response.ValidationError(w, map[string]string{"room": "Unknown room"})
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, created)
}

// CheckAvailability previews whether a slot is free
// GET /bookings/check-availability?room&date&start_time&end_time
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := AvailabilityQuery{
		Room:             q.Get("room"),
		Date:             q.Get("date"),
		StartTime:        q.Get("start_time"),
		EndTime:          q.Get("end_time"),
		ExcludeBookingID: q.Get("exclude_booking_id"),
	}

	if errs := validator.Validate(&query); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	date, _ := ParseDate(query.Date)
	start, _ := ParseTimeOfDay(query.StartTime)
	end, _ := ParseTimeOfDay(query.EndTime)

	excludeID := uuid.Nil
	if query.ExcludeBookingID != "" {
		excludeID, _ = uuid.Parse(query.ExcludeBookingID)
	}

	result, err := h.service.CheckAvailability(r.Context(), query.Room, date, start, end, excludeID)
	if err != nil {
		if errors.Is(err, ErrInvalidWindow) {
			response.ValidationError(w, map[string]string{"end_time": "End time must be after start time"})
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Approve approves a pending booking (admin only)
// PATCH /bookings/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req ApproveRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actor := middleware.GetActor(r.Context())
	updated, err := h.service.ApproveBooking(r.Context(), actor, bookingID, req.Notes)
	if err != nil {
		h.writeDecisionError(w, err)
		return
	}

	response.OK(w, updated)
}

// Reject rejects a pending booking (admin only)
// PATCH /bookings/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req RejectRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actor := middleware.GetActor(r.Context())
	updated, err := h.service.RejectBooking(r.Context(), actor, bookingID, req.Notes)
	if err != nil {
		h.writeDecisionError(w, err)
		return
	}

	response.OK(w, updated)
}

func (h *Handler) writeDecisionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrInvalidTransition):
		// Distinct from SLOT_CONFLICT so clients can show "already processed"
		response.Conflict(w, "ALREADY_PROCESSED", "Booking has already been processed")
	case errors.Is(err, ErrUnauthorized):
		response.Forbidden(w, "Only admins may process bookings")
	default:
		response.InternalError(w)
	}
}

// List lists bookings with filters
// GET /bookings?requester_id&room&status&date_from&date_to&limit&offset
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseListFilter(w, r)
	if !ok {
		return
	}

	h.writeList(w, r, filter)
}

// ListMine lists the current user's bookings
// GET /bookings/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseListFilter(w, r)
	if !ok {
		return
	}
	filter.RequesterID = middleware.GetUserID(r.Context())

	h.writeList(w, r, filter)
}

// GetByID returns a single booking
// GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Booking not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, b)
}

func (h *Handler) parseListFilter(w http.ResponseWriter, r *http.Request) (*ListFilter, bool) {
	q := r.URL.Query()
	filter := &ListFilter{
		Limit:  50,
		Offset: 0,
	}

	if raw := q.Get("requester_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid requester_id")
			return nil, false
		}
		filter.RequesterID = id
	}
	filter.Room = q.Get("room")
	filter.Status = Status(q.Get("status"))

	if raw := q.Get("date_from"); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "Invalid date_from")
			return nil, false
		}
		filter.DateFrom = &d
	}
	if raw := q.Get("date_to"); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "Invalid date_to")
			return nil, false
		}
		filter.DateTo = &d
	}

	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 200 {
			filter.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	return filter, true
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, filter *ListFilter) {
	bookings, total, err := h.service.ListBookings(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, bookings, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}
