package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campusroom/campusroom-api/internal/pkg/rolegate"
)

// RoomDirectory answers whether a room code refers to a real, bookable room
type RoomDirectory interface {
	Exists(ctx context.Context, code string) (bool, error)
}

// Service is the scheduler: it validates booking submissions, runs the
// conflict check inside the serialized submit path, and exposes the
// approve/reject entry points.
type Service struct {
	repo  Repository
	rooms RoomDirectory // may be nil (room existence then unchecked)
	gate  rolegate.Gate
	cache *ScheduleCache // may be nil
}

// NewService creates booking service
func NewService(repo Repository, rooms RoomDirectory, gate rolegate.Gate, cache *ScheduleCache) *Service {
	return &Service{repo: repo, rooms: rooms, gate: gate, cache: cache}
}

// SubmitBooking validates the request, checks the slot and creates a pending
// booking. The conflict check and insert run serialized per (room, date), so
// of two racing submissions for overlapping windows exactly one wins.
func (s *Service) SubmitBooking(ctx context.Context, actor rolegate.Actor, req *CreateBookingRequest) (*Booking, error) {
	if !s.gate.HasAnyRole(actor, rolegate.RoleClassRepresentative, rolegate.RoleAdmin) {
		return nil, ErrUnauthorized
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}

	if end <= start {
		return nil, ErrInvalidWindow
	}
	if date.Before(Today()) {
		return nil, ErrPastDate
	}

	if s.rooms != nil {
		exists, err := s.rooms.Exists(ctx, req.Room)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUnknownRoom
		}
	}

	created, err := s.repo.CreateSerialized(ctx, req.Room, date, func(sameDay []*Booking) (*Booking, error) {
		if conflict := FindConflict(sameDay, start, end, uuid.Nil); conflict != nil {
			return nil, &SlotConflictError{Conflicting: conflict}
		}

		return &Booking{
			ID:                  uuid.New(),
			Room:                req.Room,
			Date:                date,
			Start:               start,
			End:                 end,
			Purpose:             req.Purpose,
			RequesterID:         actor.ID,
			RequesterName:       actor.Name,
			RequesterRollNumber: actor.RollNumber,
			Status:              StatusPending,
			CreatedAt:           time.Now(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, created.Room, created.Date)

	log.Info().
		Str("booking_id", created.ID.String()).
		Str("room", created.Room).
		Str("date", created.Date.String()).
		Str("window", created.Start.String()+"-"+created.End.String()).
		Str("requester_id", actor.ID.String()).
		Msg("booking submitted")

	return created, nil
}

// CheckAvailability is the read-only preview. It may serve a slightly stale
// schedule; submissions re-check authoritatively.
func (s *Service) CheckAvailability(ctx context.Context, room string, date Date, start, end TimeOfDay, excludeID uuid.UUID) (*AvailabilityResult, error) {
	if end <= start {
		return nil, ErrInvalidWindow
	}

	sameDay, ok := s.cache.GetDay(ctx, room, date)
	if !ok {
		var err error
		sameDay, err = s.repo.ListForDay(ctx, room, date)
		if err != nil {
			return nil, err
		}
		s.cache.SetDay(ctx, room, date, sameDay)
	}

	conflict := FindConflict(sameDay, start, end, excludeID)
	return &AvailabilityResult{
		Available:            conflict == nil,
		ConflictingBooking:   conflict,
		OtherBookingsSameDay: Occupying(sameDay),
	}, nil
}

// ApproveBooking drives the lifecycle to approved and persists the decision
func (s *Service) ApproveBooking(ctx context.Context, actor rolegate.Actor, id uuid.UUID, notes string) (*Booking, error) {
	return s.decide(ctx, actor, id, notes, StatusApproved)
}

// RejectBooking drives the lifecycle to rejected, freeing the slot
func (s *Service) RejectBooking(ctx context.Context, actor rolegate.Actor, id uuid.UUID, notes string) (*Booking, error) {
	return s.decide(ctx, actor, id, notes, StatusRejected)
}

func (s *Service) decide(ctx context.Context, actor rolegate.Actor, id uuid.UUID, notes string, to Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	if to == StatusApproved {
		err = Approve(b, actor, s.gate, notes, now)
	} else {
		err = Reject(b, actor, s.gate, notes, now)
	}
	if err != nil {
		return nil, err
	}

	// Guarded update: the loser of two concurrent decisions sees zero rows
	// and surfaces as an invalid transition, not a second terminal state.
	ok, err := s.repo.UpdateDecision(ctx, id, to, notes, actor.ID, actor.Name, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	s.cache.Invalidate(ctx, b.Room, b.Date)

	log.Info().
		Str("booking_id", id.String()).
		Str("status", string(to)).
		Str("admin_id", actor.ID.String()).
		Msg("booking decision recorded")

	return b, nil
}

// GetBooking returns a booking by id
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListBookings returns a filtered snapshot with the total count
func (s *Service) ListBookings(ctx context.Context, filter *ListFilter) ([]*Booking, int, error) {
	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}
