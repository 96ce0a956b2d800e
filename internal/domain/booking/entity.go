package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents booking status (matches booking_status enum)
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal returns true once no further status change is permitted
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// OccupiesSlot returns true if a booking in this status blocks its time window.
// Rejected bookings free their slot.
func (s Status) OccupiesSlot() bool {
	return s == StatusPending || s == StatusApproved
}

// Booking represents a classroom reservation for a time window on a day
type Booking struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Room    string    `db:"room" json:"room"`
	Date    Date      `db:"date" json:"date"`
	Start   TimeOfDay `db:"start_time" json:"start_time"`
	End     TimeOfDay `db:"end_time" json:"end_time"`
	Purpose string    `db:"purpose" json:"purpose"`

	RequesterID         uuid.UUID `db:"requester_id" json:"requester_id"`
	RequesterName       string    `db:"requester_name" json:"requester_name"`
	RequesterRollNumber string    `db:"requester_roll_number" json:"requester_roll_number"`

	Status     Status         `db:"status" json:"status"`
	AdminNotes sql.NullString `db:"admin_notes" json:"admin_notes,omitempty"`

	ProcessedBy     uuid.NullUUID  `db:"processed_by" json:"processed_by,omitempty"`
	ProcessedByName sql.NullString `db:"processed_by_name" json:"processed_by_name,omitempty"`
	ProcessedAt     sql.NullTime   `db:"processed_at" json:"processed_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
