package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campusroom/campusroom-api/internal/pkg/rolegate"
)

// fakeRepo is an in-memory Repository. CreateSerialized holds a single mutex
// for the whole decide-and-insert step, mirroring the per-(room,date)
// advisory lock of the real repository.
type fakeRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func cloneBooking(b *Booking) *Booking {
	c := *b
	return &c
}

func (f *fakeRepo) seed(b *Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID] = cloneBooking(b)
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

func (f *fakeRepo) listForDayLocked(room string, date Date) []*Booking {
	var out []*Booking
	for _, b := range f.bookings {
		if b.Room == room && b.Date.Equal(date) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (f *fakeRepo) ListForDay(_ context.Context, room string, date Date) ([]*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listForDayLocked(room, date), nil
}

func (f *fakeRepo) matches(b *Booking, filter *ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.RequesterID != uuid.Nil && b.RequesterID != filter.RequesterID {
		return false
	}
	if filter.Room != "" && b.Room != filter.Room {
		return false
	}
	if filter.Status != "" && b.Status != filter.Status {
		return false
	}
	return true
}

func (f *fakeRepo) List(_ context.Context, filter *ListFilter) ([]*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Booking
	for _, b := range f.bookings {
		if f.matches(b, filter) {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context, filter *ListFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if f.matches(b, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CreateSerialized(_ context.Context, room string, date Date, decide func(sameDay []*Booking) (*Booking, error)) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := decide(f.listForDayLocked(room, date))
	if err != nil {
		return nil, err
	}
	f.bookings[b.ID] = cloneBooking(b)
	return b, nil
}

func (f *fakeRepo) UpdateDecision(_ context.Context, id uuid.UUID, to Status, notes string, actorID uuid.UUID, actorName string, processedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok || b.Status != StatusPending {
		return false, nil
	}
	b.Status = to
	b.AdminNotes.String = notes
	b.AdminNotes.Valid = notes != ""
	b.ProcessedBy.UUID = actorID
	b.ProcessedBy.Valid = true
	b.ProcessedByName.String = actorName
	b.ProcessedByName.Valid = actorName != ""
	b.ProcessedAt.Time = processedAt
	b.ProcessedAt.Valid = true
	return true, nil
}

type fakeRooms map[string]bool

func (f fakeRooms) Exists(_ context.Context, code string) (bool, error) {
	return f[code], nil
}

func repActor() rolegate.Actor {
	return rolegate.Actor{
		ID:         uuid.New(),
		Name:       "Asel Nurlanova",
		RollNumber: "CS21B042",
		Role:       rolegate.RoleClassRepresentative,
	}
}

func studentActor() rolegate.Actor {
	return rolegate.Actor{ID: uuid.New(), Name: "Timur", RollNumber: "CS21B099", Role: rolegate.RoleStudent}
}

func newTestService(repo Repository, rooms RoomDirectory) *Service {
	return NewService(repo, rooms, rolegate.ClaimsGate{}, nil)
}

func futureDate() string {
	return DateOf(time.Now().AddDate(0, 0, 7)).String()
}

func submitReq(room, date, start, end string) *CreateBookingRequest {
	return &CreateBookingRequest{
		Room:      room,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Purpose:   "Weekly robotics club meeting",
	}
}

func TestSubmitBookingCreatesPending(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeRooms{"A304": true})
	actor := repActor()

	created, err := svc.SubmitBooking(context.Background(), actor, submitReq("A304", futureDate(), "10:00", "11:00"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if created.Status != StatusPending {
		t.Errorf("expected pending, got %s", created.Status)
	}
	if created.RequesterID != actor.ID || created.RequesterRollNumber != actor.RollNumber {
		t.Error("expected requester identity from the actor")
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil || stored == nil {
		t.Fatalf("expected booking persisted, got %v / %v", stored, err)
	}
}

func TestSubmitBookingRoleDenied(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeRooms{"A304": true})

	_, err := svc.SubmitBooking(context.Background(), studentActor(), submitReq("A304", futureDate(), "10:00", "11:00"))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for student, got %v", err)
	}
}

func TestSubmitBookingInvalidWindow(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeRooms{"A304": true})

	for _, tt := range []struct{ start, end string }{
		{"11:00", "10:00"},
		{"10:00", "10:00"},
	} {
		_, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), tt.start, tt.end))
		if !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %s-%s: expected ErrInvalidWindow, got %v", tt.start, tt.end, err)
		}
	}
}

func TestSubmitBookingPastDate(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeRooms{"A304": true})
	yesterday := DateOf(time.Now().AddDate(0, 0, -1)).String()

	_, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", yesterday, "10:00", "11:00"))
	if !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
}

func TestSubmitBookingUnknownRoom(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeRooms{"A304": true})

	_, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("Z999", futureDate(), "10:00", "11:00"))
	if !errors.Is(err, ErrUnknownRoom) {
		t.Fatalf("expected ErrUnknownRoom, got %v", err)
	}
}

func TestSubmitBookingSlotConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeRooms{"A304": true})

	first, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "10:00", "11:00"))
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err = svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "10:30", "11:30"))
	if !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("expected slot conflict, got %v", err)
	}

	var conflict *SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError, got %T", err)
	}
	if conflict.Conflicting == nil || conflict.Conflicting.ID != first.ID {
		t.Error("expected the conflict to reference the existing booking")
	}
}

func TestSubmitBookingBackToBackAllowed(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeRooms{"A304": true})

	if _, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "10:00", "11:00")); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "11:00", "12:00")); err != nil {
		t.Fatalf("back-to-back submit should succeed, got %v", err)
	}
}

func TestSubmitAfterRejectionFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeRooms{"A304": true})
	admin := adminActor()

	first, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "10:00", "11:00"))
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	if _, err := svc.RejectBooking(context.Background(), admin, first.ID, "room needed for exams"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	second, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "10:00", "11:00"))
	if err != nil {
		t.Fatalf("slot freed by rejection should be bookable again, got %v", err)
	}
	if second.ID == first.ID {
		t.Error("resubmission must create a new booking")
	}
}

func TestConcurrentSubmitSameSlot(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeRooms{"A304": true})

	const attempts = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, conflicts := 0, 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "14:00", "16:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 winning submission, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestDecisionOnProcessedBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeRooms{"A304": true})
	admin := adminActor()

	b, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "10:00", "11:00"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := svc.ApproveBooking(context.Background(), admin, b.ID, "")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	if _, err := svc.RejectBooking(context.Background(), admin, b.ID, "changed my mind"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on processed booking, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), b.ID)
	if stored.Status != StatusApproved {
		t.Errorf("decision must stick, got %s", stored.Status)
	}
}

func TestDecisionUnauthorized(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeRooms{"A304": true})

	b, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", futureDate(), "10:00", "11:00"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.ApproveBooking(context.Background(), repActor(), b.ID, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin, got %v", err)
	}
}

func TestDecisionNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeRooms{"A304": true})

	if _, err := svc.ApproveBooking(context.Background(), adminActor(), uuid.New(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeRooms{"A304": true})
	date := DateOf(time.Now().AddDate(0, 0, 7))

	existing, err := svc.SubmitBooking(context.Background(), repActor(), submitReq("A304", date.String(), "10:00", "11:00"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	result, err := svc.CheckAvailability(context.Background(), "A304", date, mustTime(t, "10:30"), mustTime(t, "11:30"), uuid.Nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Available {
		t.Error("expected slot to be unavailable")
	}
	if result.ConflictingBooking == nil || result.ConflictingBooking.ID != existing.ID {
		t.Error("expected the existing booking to be reported")
	}

	result, err = svc.CheckAvailability(context.Background(), "A304", date, mustTime(t, "11:00"), mustTime(t, "12:00"), uuid.Nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Available {
		t.Error("back-to-back window should be available")
	}
	if len(result.OtherBookingsSameDay) != 1 {
		t.Errorf("expected 1 same-day booking, got %d", len(result.OtherBookingsSameDay))
	}

	// Excluding the existing booking frees its own window, the reschedule case.
	result, err = svc.CheckAvailability(context.Background(), "A304", date, mustTime(t, "10:00"), mustTime(t, "11:00"), existing.ID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Available {
		t.Error("window should be available when its own booking is excluded")
	}
}
