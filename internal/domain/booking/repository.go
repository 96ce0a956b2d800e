package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines booking data access interface
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListForDay(ctx context.Context, room string, date Date) ([]*Booking, error)
	List(ctx context.Context, filter *ListFilter) ([]*Booking, error)
	Count(ctx context.Context, filter *ListFilter) (int, error)

	// CreateSerialized runs decide and the resulting insert while holding a
	// per-(room,date) lock, so concurrent submissions for the same room and
	// day cannot both pass the conflict check. decide receives that day's
	// bookings as seen inside the critical section and returns the booking
	// to insert, or an error to abort.
	CreateSerialized(ctx context.Context, room string, date Date, decide func(sameDay []*Booking) (*Booking, error)) (*Booking, error)

	// UpdateDecision persists a lifecycle transition guarded on the booking
	// still being pending. Returns false when another admin resolved the
	// booking first.
	UpdateDecision(ctx context.Context, id uuid.UUID, to Status, notes string, actorID uuid.UUID, actorName string, processedAt time.Time) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListForDay(ctx context.Context, room string, date Date) ([]*Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE room = $1 AND date = $2
		ORDER BY start_time ASC, created_at ASC
	`
	var bookings []*Booking
	err := r.db.SelectContext(ctx, &bookings, query, room, date)
	return bookings, err
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Booking, error) {
	query := `SELECT * FROM bookings WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		query, args, argPos = applyFilter(query, args, argPos, filter)

		query += ` ORDER BY date DESC, start_time ASC, created_at DESC`

		if filter.Limit > 0 {
			query += fmt.Sprintf(` LIMIT $%d`, argPos)
			args = append(args, filter.Limit)
			argPos++
		}

		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET $%d`, argPos)
			args = append(args, filter.Offset)
		}
	} else {
		query += ` ORDER BY date DESC, start_time ASC, created_at DESC LIMIT 50`
	}

	var bookings []*Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	return bookings, err
}

func (r *repository) Count(ctx context.Context, filter *ListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE 1=1`
	args := []interface{}{}

	if filter != nil {
		query, args, _ = applyFilter(query, args, 1, filter)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func applyFilter(query string, args []interface{}, argPos int, filter *ListFilter) (string, []interface{}, int) {
	if filter.RequesterID != uuid.Nil {
		query += fmt.Sprintf(` AND requester_id = $%d`, argPos)
		args = append(args, filter.RequesterID)
		argPos++
	}
	if filter.Room != "" {
		query += fmt.Sprintf(` AND room = $%d`, argPos)
		args = append(args, filter.Room)
		argPos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(` AND date >= $%d`, argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(` AND date <= $%d`, argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}
	return query, args, argPos
}

func (r *repository) CreateSerialized(ctx context.Context, room string, date Date, decide func(sameDay []*Booking) (*Booking, error)) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Per-(room,date) mutex held until commit. Everything between here and
	// Commit is the check-then-insert critical section.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, room+"|"+date.String()); err != nil {
		return nil, err
	}

	var sameDay []*Booking
	err = tx.SelectContext(ctx, &sameDay, `
		SELECT * FROM bookings
		WHERE room = $1 AND date = $2
		ORDER BY start_time ASC, created_at ASC
	`, room, date)
	if err != nil {
		return nil, err
	}

	b, err := decide(sameDay)
	if err != nil {
		return nil, err
	}

	if err := insertBooking(ctx, tx, b); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func insertBooking(ctx context.Context, tx *sqlx.Tx, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, room, date, start_time, end_time, purpose,
			requester_id, requester_name, requester_roll_number,
			status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`
	_, err := tx.ExecContext(ctx, query,
		b.ID,
		b.Room,
		b.Date,
		b.Start,
		b.End,
		b.Purpose,
		b.RequesterID,
		b.RequesterName,
		b.RequesterRollNumber,
		b.Status,
		b.CreatedAt,
	)
	if err != nil {
		// 23P01: the schema-level overlap EXCLUDE constraint fired. Only
		// reachable by a writer that bypassed the advisory lock, but the
		// caller still gets a conflict rather than a raw SQL error.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23P01" {
			return &SlotConflictError{}
		}
		return err
	}
	return nil
}

func (r *repository) UpdateDecision(ctx context.Context, id uuid.UUID, to Status, notes string, actorID uuid.UUID, actorName string, processedAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1, admin_notes = $2, processed_by = $3, processed_by_name = $4, processed_at = $5
		WHERE id = $6 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query,
		to,
		sql.NullString{String: notes, Valid: notes != ""},
		actorID,
		actorName,
		processedAt,
		id,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
