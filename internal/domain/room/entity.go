package room

import "time"

// Room represents a bookable classroom. The code encodes block, floor and
// room number, e.g. "A304" = Block A, Floor 3, Room 04.
type Room struct {
	Code      string    `db:"code" json:"code"`
	Block     string    `db:"block" json:"block"`
	Floor     int       `db:"floor" json:"floor"`
	Number    string    `db:"number" json:"number"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
