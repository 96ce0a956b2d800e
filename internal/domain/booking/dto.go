package booking

import "github.com/google/uuid"

// CreateBookingRequest represents a booking submission
type CreateBookingRequest struct {
	Room      string `json:"room" validate:"required,room_code"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,time_hhmm"`
	EndTime   string `json:"end_time" validate:"required,time_hhmm"`
	Purpose   string `json:"purpose" validate:"required,min=10,max=500"`
}

// ApproveRequest represents an admin approval. Notes are optional.
type ApproveRequest struct {
	Notes string `json:"notes,omitempty" validate:"max=1000"`
}

// RejectRequest represents an admin rejection. A rejection without a stated
// reason is a product defect, so notes are required at this layer.
type RejectRequest struct {
	Notes string `json:"notes" validate:"required,max=1000"`
}

// AvailabilityQuery represents the check-availability preview parameters
type AvailabilityQuery struct {
	Room             string `json:"room" validate:"required,room_code"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime        string `json:"start_time" validate:"required,time_hhmm"`
	EndTime          string `json:"end_time" validate:"required,time_hhmm"`
	ExcludeBookingID string `json:"exclude_booking_id,omitempty" validate:"omitempty,uuid4"`
}

// AvailabilityResult is what the preview endpoint returns
type AvailabilityResult struct {
	Available            bool       `json:"available"`
	ConflictingBooking   *Booking   `json:"conflicting_booking,omitempty"`
	OtherBookingsSameDay []*Booking `json:"other_bookings_same_day"`
}

// ListFilter narrows booking listings
type ListFilter struct {
	RequesterID uuid.UUID
	Room        string
	Status      Status
	DateFrom    *Date
	DateTo      *Date
	Limit       int
	Offset      int
}
