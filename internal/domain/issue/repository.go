package issue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines issue report data access interface
type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error)
	List(ctx context.Context, filter *ListFilter) ([]*Report, error)
	Count(ctx context.Context, filter *ListFilter) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new issue repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO issue_reports (id, room, category, description, reporter_id, reporter_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.Room,
		report.Category,
		report.Description,
		report.ReporterID,
		report.ReporterName,
		report.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM issue_reports WHERE id = $1`
	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	query := `
		SELECT * FROM issue_reports
		WHERE reporter_id = $1
		ORDER BY created_at DESC
	`
	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, reporterID)
	return reports, err
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Report, error) {
	query := `SELECT * FROM issue_reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Room != "" {
			query += fmt.Sprintf(` AND room = $%d`, argPos)
			args = append(args, filter.Room)
			argPos++
		}
		if filter.Category != "" {
			query += fmt.Sprintf(` AND category = $%d`, argPos)
			args = append(args, filter.Category)
			argPos++
		}

		query += ` ORDER BY created_at DESC`

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
		query += ` ORDER BY created_at DESC LIMIT 50`
	}

	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, args...)
	return reports, err
}

func (r *repository) Count(ctx context.Context, filter *ListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM issue_reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Room != "" {
			query += fmt.Sprintf(` AND room = $%d`, argPos)
			args = append(args, filter.Room)
			argPos++
		}
		if filter.Category != "" {
			query += fmt.Sprintf(` AND category = $%d`, argPos)
			args = append(args, filter.Category)
		}
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}
