package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
	"github.com/adiwidodo/perjadin/internal/domain/event"
	"github.com/adiwidodo/perjadin/internal/domain/workflow"
	"github.com/adiwidodo/perjadin/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// CreateReportInput carries the fields of a new draft report
type CreateReportInput struct {
	OwnerID        string
	AssignmentID   string
	TravelType     string
	ActualDuration int
	StartDate      *time.Time
	EndDate        *time.Time
}

// ReportService manages the owner-side lifecycle of a report
type ReportService interface {
	// Create opens a new report in draft status
	Create(ctx context.Context, input CreateReportInput) (*entity.Report, error)

	// Submit moves a draft or rejected report to submitted. Only the owner
	// may submit, and both the expense sub-report and the narrative report
	// must exist. Resubmission from rejected additionally requires the
	// report to have changed after the rejecting review and atomically
	// clears all prior reviews.
	Submit(ctx context.Context, reportID, actorID string) (string, error)

	// Get loads the full report aggregate
	Get(ctx context.Context, reportID string) (*entity.Report, error)

	// List loads a page of an owner's reports, newest first
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Report, error)

	// SaveInCityExpense upserts the in-city expense sub-report. Only the
	// owner of a draft or rejected report may write it.
	SaveInCityExpense(ctx context.Context, reportID, actorID string, e *entity.InCityExpense) error

	// SaveOutCityExpense upserts the out-city expense sub-report
	SaveOutCityExpense(ctx context.Context, reportID, actorID string, e *entity.OutCityExpense) error

	// SaveNarrative upserts the narrative report
	SaveNarrative(ctx context.Context, reportID, actorID string, n *entity.NarrativeReport) error
}

type reportServiceImpl struct {
	reportRepo    port.ReportRepository
	expenseRepo   port.ExpenseRepository
	narrativeRepo port.NarrativeRepository
	reviewRepo    port.ReviewRepository
	txManager     port.TransactionManager
	events        port.EventPublisher
	logger        Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo port.ReportRepository,
	expenseRepo port.ExpenseRepository,
	narrativeRepo port.NarrativeRepository,
	reviewRepo port.ReviewRepository,
	txManager port.TransactionManager,
	events port.EventPublisher,
	logger Logger,
) ReportService {
	return &reportServiceImpl{
		reportRepo:    reportRepo,
		expenseRepo:   expenseRepo,
		narrativeRepo: narrativeRepo,
		reviewRepo:    reviewRepo,
		txManager:     txManager,
		events:        events,
		logger:        logger,
	}
}

// Create opens a new report in draft status
func (s *reportServiceImpl) Create(ctx context.Context, input CreateReportInput) (*entity.Report, error) {
	switch input.TravelType {
	case entity.TravelTypeInCity, entity.TravelTypeOutCity, entity.TravelTypeOutCountry:
	default:
		return nil, ErrInvalidTravelType
	}
	if input.StartDate != nil && input.EndDate != nil {
		if err := utils.ValidateDateRange(*input.StartDate, *input.EndDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
		}
	}

	report := &entity.Report{
		ID:             uuid.NewString(),
		OwnerID:        input.OwnerID,
		AssignmentID:   input.AssignmentID,
		TravelType:     input.TravelType,
		Status:         entity.StatusDraft,
		ActualDuration: input.ActualDuration,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to create report", "error", err)
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info("Report created",
		"report_id", report.ID,
		"owner_id", report.OwnerID,
		"travel_type", report.TravelType)
	s.events.Publish(ctx, event.NewEvent(event.TypeReportCreated, report.ID, report.OwnerID, map[string]interface{}{
		"travel_type": report.TravelType,
	}))
	return report, nil
}

// Submit transitions a report to submitted on behalf of its owner
func (s *reportServiceImpl) Submit(ctx context.Context, reportID, actorID string) (string, error) {
	report, err := s.reportRepo.GetAggregate(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to load report", "error", err, "report_id", reportID)
		return "", fmt.Errorf("load report: %w", err)
	}
	if report == nil {
		return "", ErrReportNotFound
	}

	if report.OwnerID != actorID {
		return "", ErrNotOwner
	}
	if !report.HasExpense() {
		return "", ErrMissingExpense
	}
	if !report.HasNarrative() {
		return "", ErrMissingNarrative
	}

	machine := workflow.BuildReportStateMachine(workflow.State(report.Status))

	switch report.Status {
	case entity.StatusDraft:
		if err := machine.Fire(ctx, workflow.TriggerSubmit); err != nil {
			return "", err
		}
		if err := s.reportRepo.UpdateStatus(ctx, reportID, machine.State().String()); err != nil {
			s.logger.Error("Failed to update status", "error", err, "report_id", reportID)
			return "", fmt.Errorf("update status: %w", err)
		}

	case entity.StatusRejected:
		if err := s.checkChangedSinceRejection(report); err != nil {
			return "", err
		}
		if err := machine.Fire(ctx, workflow.TriggerResubmit); err != nil {
			return "", err
		}
		// stale reviews and the status reset must land together; a caller
		// must never observe a submitted report with rejected reviews
		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.reviewRepo.DeleteByReportID(txCtx, reportID); err != nil {
				return fmt.Errorf("clear reviews: %w", err)
			}
			if err := s.reportRepo.UpdateStatus(txCtx, reportID, machine.State().String()); err != nil {
				return fmt.Errorf("update status: %w", err)
			}
			return nil
		})
		if err != nil {
			s.logger.Error("Failed to resubmit report", "error", err, "report_id", reportID)
			return "", err
		}

	default:
		// submitted and approved reports cannot be submitted again
		return "", fmt.Errorf("%w: trigger %s from state %s",
			workflow.ErrInvalidTransition, workflow.TriggerSubmit, report.Status)
	}

	s.logger.Info("Report submitted", "report_id", reportID, "previous_status", report.Status)

	eventType := event.TypeReportSubmitted
	if report.Status == entity.StatusRejected {
		eventType = event.TypeReportResubmitted
	}
	s.events.Publish(ctx, event.NewEvent(eventType, reportID, actorID, nil))

	return machine.State().String(), nil
}

// checkChangedSinceRejection enforces the resubmission gate: a rejecting
// review must exist and the report must have been touched after it.
func (s *reportServiceImpl) checkChangedSinceRejection(report *entity.Report) error {
	var latest *entity.Review
	for _, rv := range report.Reviews {
		if rv.Status == entity.ReviewRejected && (latest == nil || rv.CreatedAt.After(latest.CreatedAt)) {
			latest = rv
		}
	}
	if latest == nil {
		s.logger.Warn("Rejected report has no rejecting review", "report_id", report.ID)
		return ErrNoChangeSinceRejection
	}
	if !report.UpdatedAt.After(latest.CreatedAt) {
		return ErrNoChangeSinceRejection
	}
	return nil
}

// Get loads the full report aggregate
func (s *reportServiceImpl) Get(ctx context.Context, reportID string) (*entity.Report, error) {
	report, err := s.reportRepo.GetAggregate(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to load report", "error", err, "report_id", reportID)
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// List loads a page of an owner's reports
func (s *reportServiceImpl) List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Report, error) {
	return s.reportRepo.List(ctx, ownerID, limit, offset)
}

// SaveInCityExpense upserts the in-city expense sub-report
func (s *reportServiceImpl) SaveInCityExpense(ctx context.Context, reportID, actorID string, e *entity.InCityExpense) error {
	report, err := s.editableBy(ctx, reportID, actorID)
	if err != nil {
		return err
	}
	if report.TravelType != entity.TravelTypeInCity {
		return ErrWrongTravelType
	}
	for _, amount := range []int64{e.DailyAllowance, e.TransportationCost, e.VehicleRentalFee, e.ActualExpense} {
		if err := utils.ValidateAmount(amount); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.ReportID = reportID
	return s.saveContent(ctx, reportID, func(txCtx context.Context) error {
		return s.expenseRepo.UpsertInCity(txCtx, e)
	})
}

// SaveOutCityExpense upserts the out-city expense sub-report
func (s *reportServiceImpl) SaveOutCityExpense(ctx context.Context, reportID, actorID string, e *entity.OutCityExpense) error {
	report, err := s.editableBy(ctx, reportID, actorID)
	if err != nil {
		return err
	}
	if report.TravelType != entity.TravelTypeOutCity {
		return ErrWrongTravelType
	}
	amounts := []int64{e.ActualExpense}
	for _, opt := range []*int64{
		e.CustomDailyAllowance,
		e.OriginTransportCost, e.LocalTransportCost, e.LodgingCost,
		e.DestinationTransportCost, e.RoundTripTicketCost,
	} {
		if opt != nil {
			amounts = append(amounts, *opt)
		}
	}
	for _, amount := range amounts {
		if err := utils.ValidateAmount(amount); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.ReportID = reportID
	return s.saveContent(ctx, reportID, func(txCtx context.Context) error {
		return s.expenseRepo.UpsertOutCity(txCtx, e)
	})
}

// SaveNarrative upserts the narrative report
func (s *reportServiceImpl) SaveNarrative(ctx context.Context, reportID, actorID string, n *entity.NarrativeReport) error {
	if _, err := s.editableBy(ctx, reportID, actorID); err != nil {
		return err
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.ReportID = reportID
	return s.saveContent(ctx, reportID, func(txCtx context.Context) error {
		return s.narrativeRepo.Upsert(txCtx, n)
	})
}

// editableBy loads a report and checks that the actor owns it and that its
// status still accepts content changes
func (s *reportServiceImpl) editableBy(ctx context.Context, reportID, actorID string) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to load report", "error", err, "report_id", reportID)
		return nil, fmt.Errorf("load report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	if report.Status != entity.StatusDraft && report.Status != entity.StatusRejected {
		return nil, ErrNotEditable
	}
	return report, nil
}

// saveContent runs a content write and the updated_at bump in one
// transaction. The bump is what makes the report eligible for resubmission
// after a rejection.
func (s *reportServiceImpl) saveContent(ctx context.Context, reportID string, write func(ctx context.Context) error) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := write(txCtx); err != nil {
			return err
		}
		return s.reportRepo.Touch(txCtx, reportID)
	})
	if err != nil {
		s.logger.Error("Failed to save report content", "error", err, "report_id", reportID)
		return err
	}
	return nil
}
