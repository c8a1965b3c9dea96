package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

// ReviewRepository implements port.ReviewRepository over sqlite
type ReviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, logger *zap.Logger) port.ReviewRepository {
	return &ReviewRepository{db: db, logger: logger}
}

// Create inserts a review. The unique index on (report_id, reviewer_type)
// resolves the duplicate-review race: of two concurrent inserts exactly one
// succeeds and the other gets ErrDuplicateReview.
func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, report_id, reviewer_type, reviewer_id, status, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		review.ID, review.ReportID, review.ReviewerType,
		review.ReviewerID, review.Status, review.Notes,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return port.ErrDuplicateReview
		}
		r.logger.Error("Failed to create review",
			zap.String("report_id", review.ReportID),
			zap.String("reviewer_type", review.ReviewerType),
			zap.Error(err))
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// GetByReportID retrieves all reviews for a report
func (r *ReviewRepository) GetByReportID(ctx context.Context, reportID string) ([]*entity.Review, error) {
	query := `
		SELECT id, report_id, reviewer_type, reviewer_id, status, notes, created_at
		FROM reviews WHERE report_id = ? ORDER BY created_at
	`
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, reportID)
	if err != nil {
		r.logger.Error("Failed to list reviews",
			zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.ReportID, &rv.ReviewerType,
			&rv.ReviewerID, &rv.Status, &rv.Notes, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

// GetByReportAndType retrieves the review of one reviewer type for a report
func (r *ReviewRepository) GetByReportAndType(ctx context.Context, reportID, reviewerType string) (*entity.Review, error) {
	query := `
		SELECT id, report_id, reviewer_type, reviewer_id, status, notes, created_at
		FROM reviews WHERE report_id = ? AND reviewer_type = ?
	`
	var rv entity.Review
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, reportID, reviewerType).Scan(
		&rv.ID, &rv.ReportID, &rv.ReviewerType,
		&rv.ReviewerID, &rv.Status, &rv.Notes, &rv.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get review",
			zap.String("report_id", reportID),
			zap.String("reviewer_type", reviewerType),
			zap.Error(err))
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &rv, nil
}

// DeleteByReportID removes every review for a report, used by the
// resubmission flow inside its transaction
func (r *ReviewRepository) DeleteByReportID(ctx context.Context, reportID string) error {
	query := `DELETE FROM reviews WHERE report_id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, reportID)
	if err != nil {
		r.logger.Error("Failed to delete reviews",
			zap.String("report_id", reportID), zap.Error(err))
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

var _ port.ReviewRepository = (*ReviewRepository)(nil)
