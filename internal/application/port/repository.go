package port

import (
	"context"
	"errors"

	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

// ErrDuplicateReview is returned by ReviewRepository.Create when a review of
// the same reviewer type already exists for the report. Backed by a storage
// uniqueness constraint so concurrent duplicates cannot both succeed.
var ErrDuplicateReview = errors.New("duplicate review for reviewer type")

// ReportRepository defines persistence operations for Report aggregates
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	// GetByID loads the bare report row without its sub-reports
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	// GetAggregate loads the report with its expense sub-report, narrative
	// and review set attached
	GetAggregate(ctx context.Context, id string) (*entity.Report, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Touch(ctx context.Context, id string) error
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Report, error)
}

// ExpenseRepository defines persistence operations for the expense
// sub-report variants. Upsert semantics: one sub-report per report.
type ExpenseRepository interface {
	UpsertInCity(ctx context.Context, e *entity.InCityExpense) error
	UpsertOutCity(ctx context.Context, e *entity.OutCityExpense) error
	GetInCityByReportID(ctx context.Context, reportID string) (*entity.InCityExpense, error)
	GetOutCityByReportID(ctx context.Context, reportID string) (*entity.OutCityExpense, error)
}

// NarrativeRepository defines persistence operations for NarrativeReport
type NarrativeRepository interface {
	Upsert(ctx context.Context, n *entity.NarrativeReport) error
	GetByReportID(ctx context.Context, reportID string) (*entity.NarrativeReport, error)
}

// ReviewRepository defines persistence operations for Review records
type ReviewRepository interface {
	// Create inserts a review. A second review of the same reviewer type
	// for the same report fails with ErrDuplicateReview.
	Create(ctx context.Context, review *entity.Review) error
	GetByReportID(ctx context.Context, reportID string) ([]*entity.Review, error)
	GetByReportAndType(ctx context.Context, reportID, reviewerType string) (*entity.Review, error)
	DeleteByReportID(ctx context.Context, reportID string) error
}

// FullboardPriceRepository resolves province daily allowance rates
type FullboardPriceRepository interface {
	GetByID(ctx context.Context, id string) (*entity.FullboardPrice, error)
	List(ctx context.Context) ([]*entity.FullboardPrice, error)
}

// TransactionManager provides transactional execution. The function runs
// with a transaction-scoped context; all repository calls made with it join
// the same transaction and commit or roll back together.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
