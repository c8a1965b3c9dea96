package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

// ReportRepository implements port.ReportRepository over sqlite
type ReportRepository struct {
	db        *sql.DB
	expenses  port.ExpenseRepository
	narrative port.NarrativeRepository
	reviews   port.ReviewRepository
	logger    *zap.Logger
}

// NewReportRepository creates a new report repository. The sub-report
// repositories are used to assemble the full aggregate.
func NewReportRepository(
	db *sql.DB,
	expenses port.ExpenseRepository,
	narrative port.NarrativeRepository,
	reviews port.ReviewRepository,
	logger *zap.Logger,
) port.ReportRepository {
	return &ReportRepository{
		db:        db,
		expenses:  expenses,
		narrative: narrative,
		reviews:   reviews,
		logger:    logger,
	}
}

const reportColumns = `
	id, owner_id, assignment_id, travel_type, status, actual_duration,
	start_date, end_date, created_at, updated_at
`

// Create inserts a new report in draft status
func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (
			id, owner_id, assignment_id, travel_type, status, actual_duration,
			start_date, end_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		report.ID,
		report.OwnerID,
		report.AssignmentID,
		report.TravelType,
		report.Status,
		report.ActualDuration,
		report.StartDate,
		report.EndDate,
	)
	if err != nil {
		r.logger.Error("Failed to create report", zap.Error(err))
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// GetByID retrieves the bare report row
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`

	report, err := scanReport(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get report", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("get report: %w", err)
	}
	return report, nil
}

// GetAggregate retrieves the report with its expense sub-report, narrative
// and review set attached. Only the sub-report matching the travel type is
// loaded.
func (r *ReportRepository) GetAggregate(ctx context.Context, id string) (*entity.Report, error) {
	report, err := r.GetByID(ctx, id)
	if err != nil || report == nil {
		return report, err
	}

	switch report.TravelType {
	case entity.TravelTypeInCity:
		if report.InCityExpense, err = r.expenses.GetInCityByReportID(ctx, id); err != nil {
			return nil, err
		}
	case entity.TravelTypeOutCity:
		if report.OutCityExpense, err = r.expenses.GetOutCityByReportID(ctx, id); err != nil {
			return nil, err
		}
	}

	if report.Narrative, err = r.narrative.GetByReportID(ctx, id); err != nil {
		return nil, err
	}
	if report.Reviews, err = r.reviews.GetByReportID(ctx, id); err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateStatus updates the report status without touching updated_at: a
// status write is bookkeeping, not a content change, and must not satisfy
// the changed-since-rejection gate by itself.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE reports SET status = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update report status",
			zap.String("id", id), zap.String("status", status), zap.Error(err))
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// Touch bumps the last-mutation timestamp; sub-report writes call this so
// resubmission eligibility tracks real content changes
func (r *ReportRepository) Touch(ctx context.Context, id string) error {
	query := `UPDATE reports SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to touch report", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("touch report: %w", err)
	}
	return nil
}

// List retrieves a page of reports for an owner, newest first
func (r *ReportRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM reports WHERE owner_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list reports", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*entity.Report, error) {
	var report entity.Report
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&report.ID,
		&report.OwnerID,
		&report.AssignmentID,
		&report.TravelType,
		&report.Status,
		&report.ActualDuration,
		&startDate,
		&endDate,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		report.StartDate = &startDate.Time
	}
	if endDate.Valid {
		report.EndDate = &endDate.Time
	}
	return &report, nil
}

var _ port.ReportRepository = (*ReportRepository)(nil)
