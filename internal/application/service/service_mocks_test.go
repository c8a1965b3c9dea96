package service

import (
	"context"
	"time"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
	"github.com/adiwidodo/perjadin/internal/domain/event"
)

// newReportService wires a ReportService over the in-memory mocks
func newReportService(reportRepo *mockReportRepo, reviewRepo *mockReviewRepo) ReportService {
	return NewReportService(reportRepo, &mockExpenseRepo{}, &mockNarrativeRepo{},
		reviewRepo, mockTxManager{}, &mockEventPublisher{}, noopLogger{})
}

// noopLogger implements Logger for tests
type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// mockReportRepo implements port.ReportRepository over an in-memory map
type mockReportRepo struct {
	reports   map[string]*entity.Report
	updateErr error
}

func newMockReportRepo(reports ...*entity.Report) *mockReportRepo {
	m := &mockReportRepo{reports: make(map[string]*entity.Report)}
	for _, r := range reports {
		m.reports[r.ID] = r
	}
	return m
}

func (m *mockReportRepo) Create(ctx context.Context, report *entity.Report) error {
	m.reports[report.ID] = report
	return nil
}

func (m *mockReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	return m.reports[id], nil
}

func (m *mockReportRepo) GetAggregate(ctx context.Context, id string) (*entity.Report, error) {
	return m.reports[id], nil
}

func (m *mockReportRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if r, ok := m.reports[id]; ok {
		r.Status = status
	}
	return nil
}

func (m *mockReportRepo) Touch(ctx context.Context, id string) error {
	if r, ok := m.reports[id]; ok {
		r.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockReportRepo) List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Report, error) {
	var out []*entity.Report
	for _, r := range m.reports {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// mockExpenseRepo implements port.ExpenseRepository, recording the last
// written sub-reports
type mockExpenseRepo struct {
	inCity  *entity.InCityExpense
	outCity *entity.OutCityExpense
}

func (m *mockExpenseRepo) UpsertInCity(ctx context.Context, e *entity.InCityExpense) error {
	m.inCity = e
	return nil
}

func (m *mockExpenseRepo) UpsertOutCity(ctx context.Context, e *entity.OutCityExpense) error {
	e.NormalizeAllowance()
	m.outCity = e
	return nil
}

func (m *mockExpenseRepo) GetInCityByReportID(ctx context.Context, reportID string) (*entity.InCityExpense, error) {
	return m.inCity, nil
}

func (m *mockExpenseRepo) GetOutCityByReportID(ctx context.Context, reportID string) (*entity.OutCityExpense, error) {
	return m.outCity, nil
}

// mockNarrativeRepo implements port.NarrativeRepository
type mockNarrativeRepo struct {
	narrative *entity.NarrativeReport
}

func (m *mockNarrativeRepo) Upsert(ctx context.Context, n *entity.NarrativeReport) error {
	m.narrative = n
	return nil
}

func (m *mockNarrativeRepo) GetByReportID(ctx context.Context, reportID string) (*entity.NarrativeReport, error) {
	return m.narrative, nil
}

// mockReviewRepo implements port.ReviewRepository and simulates the storage
// uniqueness constraint on (report, reviewer type)
type mockReviewRepo struct {
	reviews   []*entity.Review
	createErr error
}

func (m *mockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, rv := range m.reviews {
		if rv.ReportID == review.ReportID && rv.ReviewerType == review.ReviewerType {
			return port.ErrDuplicateReview
		}
	}
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewRepo) GetByReportID(ctx context.Context, reportID string) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, rv := range m.reviews {
		if rv.ReportID == reportID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) GetByReportAndType(ctx context.Context, reportID, reviewerType string) (*entity.Review, error) {
	for _, rv := range m.reviews {
		if rv.ReportID == reportID && rv.ReviewerType == reviewerType {
			return rv, nil
		}
	}
	return nil, nil
}

func (m *mockReviewRepo) DeleteByReportID(ctx context.Context, reportID string) error {
	kept := m.reviews[:0]
	for _, rv := range m.reviews {
		if rv.ReportID != reportID {
			kept = append(kept, rv)
		}
	}
	m.reviews = kept
	return nil
}

// mockTxManager runs the function directly; the real manager provides the
// transactional guarantee
type mockTxManager struct{}

func (mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mockEventPublisher implements port.EventPublisher, collecting events
type mockEventPublisher struct {
	events []*event.Event
}

func (m *mockEventPublisher) Publish(ctx context.Context, e *event.Event) {
	m.events = append(m.events, e)
}

// mockAuthorizer implements port.Authorizer with fixed answers
type mockAuthorizer struct {
	verifiers map[string]bool
	unitHeads map[string]string // actor -> owner they head
}

func (m *mockAuthorizer) HasVerifierCapability(ctx context.Context, actorID string) (bool, error) {
	return m.verifiers[actorID], nil
}

func (m *mockAuthorizer) IsUnitHeadOf(ctx context.Context, actorID, ownerID string) (bool, error) {
	return m.unitHeads[actorID] == ownerID, nil
}
