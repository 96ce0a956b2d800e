package booking

import "errors"

var (
	ErrNotFound          = errors.New("booking not found")
	ErrUnauthorized      = errors.New("actor lacks the required role")
	ErrInvalidTransition = errors.New("booking already processed")
	ErrSlotConflict      = errors.New("slot already booked")
	ErrInvalidWindow     = errors.New("end time must be after start time")
	ErrPastDate          = errors.New("booking date must not be in the past")
	ErrUnknownRoom       = errors.New("room does not exist")
)

// SlotConflictError carries the booking occupying the requested window so
// callers can show it to the user. errors.Is(err, ErrSlotConflict) matches.
type SlotConflictError struct {
	Conflicting *Booking
}

func (e *SlotConflictError) Error() string {
	if e.Conflicting == nil {
		return ErrSlotConflict.Error()
	}
	return "slot already booked: " + e.Conflicting.Room + " " + e.Conflicting.Date.String() +
		" " + e.Conflicting.Start.String() + "-" + e.Conflicting.End.String()
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
