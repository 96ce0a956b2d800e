package issue

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/campusroom/campusroom-api/internal/pkg/rolegate"
)

// Service handles issue report business logic
type Service struct {
	repo Repository
}

// NewService creates issue service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateReport files a new facility issue report
func (s *Service) CreateReport(ctx context.Context, reporter rolegate.Actor, req *CreateReportRequest) (*Report, error) {
	report := &Report{
		ID:           uuid.New(),
		Category:     req.Category,
		Description:  req.Description,
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		CreatedAt:    time.Now(),
	}
	if req.Room != "" {
		report.Room = sql.NullString{String: req.Room, Valid: true}
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListMyReports returns reports filed by the user
func (s *Service) ListMyReports(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	return s.repo.ListByReporter(ctx, reporterID)
}

// ListReports returns all reports (admin function)
func (s *Service) ListReports(ctx context.Context, filter *ListFilter) ([]*Report, int, error) {
	reports, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// GetReport returns a specific report
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	return report, nil
}
