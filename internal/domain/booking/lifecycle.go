package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/campusroom/campusroom-api/internal/pkg/rolegate"
)

// Approve moves a pending booking to approved, recording the deciding admin.
// Approved is terminal: no further status change is permitted.
func Approve(b *Booking, actor rolegate.Actor, gate rolegate.Gate, notes string, now time.Time) error {
	return transition(b, actor, gate, StatusApproved, notes, now)
}

// Reject moves a pending booking to rejected, freeing its slot. Notes may be
// empty here; requiring a rejection reason is product policy enforced at the
// request layer.
func Reject(b *Booking, actor rolegate.Actor, gate rolegate.Gate, notes string, now time.Time) error {
	return transition(b, actor, gate, StatusRejected, notes, now)
}

func transition(b *Booking, actor rolegate.Actor, gate rolegate.Gate, to Status, notes string, now time.Time) error {
	if !gate.HasAnyRole(actor, rolegate.RoleAdmin) {
		return ErrUnauthorized
	}
	if b.Status != StatusPending {
		return ErrInvalidTransition
	}

	b.Status = to
	b.AdminNotes = sql.NullString{String: notes, Valid: notes != ""}
	b.ProcessedBy = uuid.NullUUID{UUID: actor.ID, Valid: true}
	b.ProcessedByName = sql.NullString{String: actor.Name, Valid: actor.Name != ""}
	b.ProcessedAt = sql.NullTime{Time: now, Valid: true}
	return nil
}
