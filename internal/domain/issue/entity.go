package issue

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Category represents the kind of facility problem being reported
type Category string

const (
	CategoryElectrical Category = "electrical"
	CategoryFurniture  Category = "furniture"
	CategoryCleaning   Category = "cleaning"
	CategoryEquipment  Category = "equipment"
	CategoryOther      Category = "other"
)

// Report represents a facility issue report filed against a room.
// Admins track reports alongside reservations; triaging them is a separate
// workflow outside this service.
type Report struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Room         sql.NullString `db:"room" json:"room,omitempty"`
	Category     Category       `db:"category" json:"category"`
	Description  string         `db:"description" json:"description"`
	ReporterID   uuid.UUID      `db:"reporter_id" json:"reporter_id"`
	ReporterName string         `db:"reporter_name" json:"reporter_name"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
