package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
	"github.com/adiwidodo/perjadin/internal/domain/event"
	"github.com/adiwidodo/perjadin/internal/domain/workflow"
)

// ReviewService records reviewer decisions and keeps the derived report
// status in step with the review set.
type ReviewService interface {
	// Review records a decision by a pre-authorized reviewer. Only
	// submitted reports accept reviews, and each reviewer type reviews a
	// report at most once. Returns the report status derived from the
	// review set after the new review lands.
	Review(ctx context.Context, reportID, reviewerType, actorID, decision, notes string) (string, error)
}

type reviewServiceImpl struct {
	reportRepo port.ReportRepository
	reviewRepo port.ReviewRepository
	authorizer port.Authorizer
	txManager  port.TransactionManager
	events     port.EventPublisher
	logger     Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reportRepo port.ReportRepository,
	reviewRepo port.ReviewRepository,
	authorizer port.Authorizer,
	txManager port.TransactionManager,
	events port.EventPublisher,
	logger Logger,
) ReviewService {
	return &reviewServiceImpl{
		reportRepo: reportRepo,
		reviewRepo: reviewRepo,
		authorizer: authorizer,
		txManager:  txManager,
		events:     events,
		logger:     logger,
	}
}

func (s *reviewServiceImpl) Review(ctx context.Context, reportID, reviewerType, actorID, decision, notes string) (string, error) {
	if reviewerType != entity.ReviewerCommitmentOfficer && reviewerType != entity.ReviewerSectionHead {
		return "", ErrInvalidReviewerType
	}
	if decision != entity.ReviewApproved && decision != entity.ReviewRejected {
		return "", ErrInvalidDecision
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to load report", "error", err, "report_id", reportID)
		return "", fmt.Errorf("load report: %w", err)
	}
	if report == nil {
		return "", ErrReportNotFound
	}
	if report.Status != entity.StatusSubmitted {
		return "", ErrNotSubmitted
	}

	if err := s.authorize(ctx, reviewerType, actorID, report.OwnerID); err != nil {
		return "", err
	}

	existing, err := s.reviewRepo.GetByReportAndType(ctx, reportID, reviewerType)
	if err != nil {
		return "", fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return "", ErrAlreadyReviewed
	}

	review := &entity.Review{
		ID:           uuid.NewString(),
		ReportID:     reportID,
		ReviewerType: reviewerType,
		ReviewerID:   actorID,
		Status:       decision,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}

	var newStatus string
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.reviewRepo.Create(txCtx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		// re-read inside the transaction so the derivation folds over a
		// consistent snapshot that includes any concurrently landed review
		reviews, err := s.reviewRepo.GetByReportID(txCtx, reportID)
		if err != nil {
			return fmt.Errorf("load reviews: %w", err)
		}
		newStatus = entity.DeriveStatus(reviews)
		if newStatus == report.Status {
			return nil
		}
		if err := s.fireTransition(txCtx, report.Status, newStatus); err != nil {
			return err
		}
		return s.reportRepo.UpdateStatus(txCtx, reportID, newStatus)
	})
	if err != nil {
		// the uniqueness constraint catches the duplicate race the
		// existence check above cannot
		if errors.Is(err, port.ErrDuplicateReview) {
			return "", ErrAlreadyReviewed
		}
		s.logger.Error("Failed to record review", "error", err,
			"report_id", reportID, "reviewer_type", reviewerType)
		return "", err
	}

	s.logger.Info("Review recorded",
		"report_id", reportID,
		"reviewer_type", reviewerType,
		"decision", decision,
		"new_status", newStatus)

	s.events.Publish(ctx, event.NewEvent(event.TypeReviewRecorded, reportID, actorID, map[string]interface{}{
		"reviewer_type": reviewerType,
		"decision":      decision,
	}))
	switch newStatus {
	case entity.StatusApproved:
		s.events.Publish(ctx, event.NewEvent(event.TypeReportApproved, reportID, actorID, nil))
	case entity.StatusRejected:
		s.events.Publish(ctx, event.NewEvent(event.TypeReportRejected, reportID, actorID, nil))
	}
	return newStatus, nil
}

func (s *reviewServiceImpl) authorize(ctx context.Context, reviewerType, actorID, ownerID string) error {
	var allowed bool
	var err error
	switch reviewerType {
	case entity.ReviewerCommitmentOfficer:
		allowed, err = s.authorizer.HasVerifierCapability(ctx, actorID)
	case entity.ReviewerSectionHead:
		allowed, err = s.authorizer.IsUnitHeadOf(ctx, actorID, ownerID)
	}
	if err != nil {
		return fmt.Errorf("resolve authorization: %w", err)
	}
	if !allowed {
		return ErrUnauthorized
	}
	return nil
}

// fireTransition validates the derived status change against the lifecycle
// state machine before it is written.
func (s *reviewServiceImpl) fireTransition(ctx context.Context, from, to string) error {
	machine := workflow.BuildReportStateMachine(workflow.State(from))
	var trigger workflow.Trigger
	switch to {
	case entity.StatusApproved:
		trigger = workflow.TriggerApprove
	case entity.StatusRejected:
		trigger = workflow.TriggerReject
	default:
		return fmt.Errorf("%w: derived status %s", workflow.ErrInvalidState, to)
	}
	return machine.Fire(ctx, trigger)
}
