package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

// NarrativeRepository implements port.NarrativeRepository over sqlite
type NarrativeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNarrativeRepository creates a new narrative repository
func NewNarrativeRepository(db *sql.DB, logger *zap.Logger) port.NarrativeRepository {
	return &NarrativeRepository{db: db, logger: logger}
}

// Upsert writes the narrative report for a report
func (r *NarrativeRepository) Upsert(ctx context.Context, n *entity.NarrativeReport) error {
	query := `
		INSERT INTO narrative_reports (
			id, report_id, title, background, purpose_and_objectives,
			scope, legal_basis, activities_conducted, achievements, conclusions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(report_id) DO UPDATE SET
			title = excluded.title,
			background = excluded.background,
			purpose_and_objectives = excluded.purpose_and_objectives,
			scope = excluded.scope,
			legal_basis = excluded.legal_basis,
			activities_conducted = excluded.activities_conducted,
			achievements = excluded.achievements,
			conclusions = excluded.conclusions,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		n.ID, n.ReportID, n.Title, n.Background, n.PurposeAndObjectives,
		n.Scope, n.LegalBasis, n.ActivitiesConducted, n.Achievements, n.Conclusions,
	)
	if err != nil {
		r.logger.Error("Failed to upsert narrative report",
			zap.String("report_id", n.ReportID), zap.Error(err))
		return fmt.Errorf("upsert narrative: %w", err)
	}
	return nil
}

// GetByReportID retrieves the narrative report for a report
func (r *NarrativeRepository) GetByReportID(ctx context.Context, reportID string) (*entity.NarrativeReport, error) {
	query := `
		SELECT id, report_id, title, background, purpose_and_objectives,
			scope, legal_basis, activities_conducted, achievements,
			conclusions, created_at, updated_at
		FROM narrative_reports WHERE report_id = ?
	`
	var n entity.NarrativeReport
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, reportID).Scan(
		&n.ID, &n.ReportID, &n.Title, &n.Background, &n.PurposeAndObjectives,
		&n.Scope, &n.LegalBasis, &n.ActivitiesConducted, &n.Achievements,
		&n.Conclusions, &n.CreatedAt, &n.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get narrative report",
			zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("get narrative: %w", err)
	}
	return &n, nil
}

var _ port.NarrativeRepository = (*NarrativeRepository)(nil)
