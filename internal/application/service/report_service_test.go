package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiwidodo/perjadin/internal/domain/entity"
	"github.com/adiwidodo/perjadin/internal/domain/workflow"
)

func completeDraftReport() *entity.Report {
	return &entity.Report{
		ID:            "rpt-1",
		OwnerID:       "user-1",
		TravelType:    entity.TravelTypeInCity,
		Status:        entity.StatusDraft,
		InCityExpense: &entity.InCityExpense{DailyAllowance: 100000},
		Narrative:     &entity.NarrativeReport{Title: "Laporan"},
		UpdatedAt:     time.Now(),
	}
}

func TestReportService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("draft with complete parts submits", func(t *testing.T) {
		report := completeDraftReport()
		reportRepo := newMockReportRepo(report)
		svc := newReportService(reportRepo, &mockReviewRepo{})

		status, err := svc.Submit(ctx, "rpt-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusSubmitted, status)
		assert.Equal(t, entity.StatusSubmitted, report.Status)
	})

	t.Run("unknown report", func(t *testing.T) {
		svc := newReportService(newMockReportRepo(), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "missing", "user-1")
		assert.ErrorIs(t, err, ErrReportNotFound)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		report := completeDraftReport()
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "rpt-1", "intruder")
		assert.ErrorIs(t, err, ErrNotOwner)
		assert.Equal(t, entity.StatusDraft, report.Status)
	})

	t.Run("missing expense is refused with its own reason", func(t *testing.T) {
		report := completeDraftReport()
		report.InCityExpense = nil
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, ErrMissingExpense)
	})

	t.Run("expense of the wrong travel type counts as missing", func(t *testing.T) {
		report := completeDraftReport()
		report.TravelType = entity.TravelTypeOutCity // in-city expense loaded
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, ErrMissingExpense)
	})

	t.Run("missing narrative is refused with its own reason", func(t *testing.T) {
		report := completeDraftReport()
		report.Narrative = nil
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, ErrMissingNarrative)
	})

	t.Run("submitted report cannot be submitted again", func(t *testing.T) {
		report := completeDraftReport()
		report.Status = entity.StatusSubmitted
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})

	t.Run("approved report is terminal", func(t *testing.T) {
		report := completeDraftReport()
		report.Status = entity.StatusApproved
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})
}

func TestReportService_Resubmission(t *testing.T) {
	ctx := context.Background()
	rejectedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rejectedReport := func(updatedAt time.Time) (*entity.Report, *mockReviewRepo) {
		report := completeDraftReport()
		report.Status = entity.StatusRejected
		report.UpdatedAt = updatedAt
		rejection := &entity.Review{
			ID:           "rev-1",
			ReportID:     report.ID,
			ReviewerType: entity.ReviewerSectionHead,
			Status:       entity.ReviewRejected,
			CreatedAt:    rejectedAt,
		}
		report.Reviews = []*entity.Review{rejection}
		return report, &mockReviewRepo{reviews: []*entity.Review{rejection}}
	}

	t.Run("changed after rejection resubmits and clears reviews", func(t *testing.T) {
		report, reviewRepo := rejectedReport(rejectedAt.Add(time.Hour))
		svc := newReportService(newMockReportRepo(report), reviewRepo)

		status, err := svc.Submit(ctx, "rpt-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusSubmitted, status)
		assert.Equal(t, entity.StatusSubmitted, report.Status)

		remaining, _ := reviewRepo.GetByReportID(ctx, "rpt-1")
		assert.Empty(t, remaining)
	})

	t.Run("unchanged since rejection is refused", func(t *testing.T) {
		report, reviewRepo := rejectedReport(rejectedAt)
		svc := newReportService(newMockReportRepo(report), reviewRepo)

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, ErrNoChangeSinceRejection)
		assert.Equal(t, entity.StatusRejected, report.Status)

		remaining, _ := reviewRepo.GetByReportID(ctx, "rpt-1")
		assert.Len(t, remaining, 1)
	})

	t.Run("mutated before rejection is refused", func(t *testing.T) {
		report, reviewRepo := rejectedReport(rejectedAt.Add(-time.Hour))
		svc := newReportService(newMockReportRepo(report), reviewRepo)

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, ErrNoChangeSinceRejection)
	})

	t.Run("rejected status without rejecting review is refused", func(t *testing.T) {
		report := completeDraftReport()
		report.Status = entity.StatusRejected
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.ErrorIs(t, err, ErrNoChangeSinceRejection)
	})

	t.Run("transaction failure leaves status untouched", func(t *testing.T) {
		report, reviewRepo := rejectedReport(rejectedAt.Add(time.Hour))
		reportRepo := newMockReportRepo(report)
		reportRepo.updateErr = errors.New("disk full")
		svc := newReportService(reportRepo, reviewRepo)

		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		assert.Error(t, err)
		assert.Equal(t, entity.StatusRejected, report.Status)
	})

	t.Run("content save after rejection reopens resubmission", func(t *testing.T) {
		report, reviewRepo := rejectedReport(rejectedAt)
		reportRepo := newMockReportRepo(report)
		svc := newReportService(reportRepo, reviewRepo)

		// unchanged report is refused first
		_, err := svc.Submit(ctx, "rpt-1", "user-1")
		require.ErrorIs(t, err, ErrNoChangeSinceRejection)

		err = svc.SaveNarrative(ctx, "rpt-1", "user-1", &entity.NarrativeReport{Title: "Revisi"})
		require.NoError(t, err)

		status, err := svc.Submit(ctx, "rpt-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusSubmitted, status)
	})
}

func TestReportService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input creates a draft", func(t *testing.T) {
		reportRepo := newMockReportRepo()
		svc := newReportService(reportRepo, &mockReviewRepo{})

		start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 2)
		report, err := svc.Create(ctx, CreateReportInput{
			OwnerID:      "user-1",
			AssignmentID: "st-42",
			TravelType:   entity.TravelTypeOutCity,
			StartDate:    &start,
			EndDate:      &end,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, report.ID)
		assert.Equal(t, entity.StatusDraft, report.Status)
		stored, _ := reportRepo.GetByID(ctx, report.ID)
		assert.NotNil(t, stored)
	})

	t.Run("unknown travel type is refused", func(t *testing.T) {
		svc := newReportService(newMockReportRepo(), &mockReviewRepo{})

		_, err := svc.Create(ctx, CreateReportInput{OwnerID: "user-1", TravelType: "ABROAD"})
		assert.ErrorIs(t, err, ErrInvalidTravelType)
	})

	t.Run("inverted date range is refused", func(t *testing.T) {
		svc := newReportService(newMockReportRepo(), &mockReviewRepo{})

		start := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)
		_, err := svc.Create(ctx, CreateReportInput{
			OwnerID:    "user-1",
			TravelType: entity.TravelTypeInCity,
			StartDate:  &start,
			EndDate:    &end,
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestReportService_SaveContent(t *testing.T) {
	ctx := context.Background()

	t.Run("owner saves expense on a draft", func(t *testing.T) {
		report := completeDraftReport()
		before := report.UpdatedAt
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		err := svc.SaveInCityExpense(ctx, "rpt-1", "user-1", &entity.InCityExpense{
			DailyAllowance:     150000,
			TransportationCost: 50000,
		})
		require.NoError(t, err)
		assert.True(t, report.UpdatedAt.After(before) || report.UpdatedAt.Equal(before))
	})

	t.Run("non-owner cannot write content", func(t *testing.T) {
		report := completeDraftReport()
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		err := svc.SaveInCityExpense(ctx, "rpt-1", "intruder", &entity.InCityExpense{})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("submitted report refuses content writes", func(t *testing.T) {
		report := completeDraftReport()
		report.Status = entity.StatusSubmitted
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		err := svc.SaveNarrative(ctx, "rpt-1", "user-1", &entity.NarrativeReport{})
		assert.ErrorIs(t, err, ErrNotEditable)
	})

	t.Run("sub-report must match the travel type", func(t *testing.T) {
		report := completeDraftReport() // IN_CITY
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		err := svc.SaveOutCityExpense(ctx, "rpt-1", "user-1", &entity.OutCityExpense{})
		assert.ErrorIs(t, err, ErrWrongTravelType)
	})

	t.Run("negative amounts are refused", func(t *testing.T) {
		report := completeDraftReport()
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		err := svc.SaveInCityExpense(ctx, "rpt-1", "user-1", &entity.InCityExpense{
			DailyAllowance: -100,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("negative out-city amounts are refused", func(t *testing.T) {
		report := completeDraftReport()
		report.TravelType = entity.TravelTypeOutCity
		svc := newReportService(newMockReportRepo(report), &mockReviewRepo{})

		neg := int64(-250000)
		err := svc.SaveOutCityExpense(ctx, "rpt-1", "user-1", &entity.OutCityExpense{
			OriginTransportCost: &neg,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		err = svc.SaveOutCityExpense(ctx, "rpt-1", "user-1", &entity.OutCityExpense{
			ActualExpense: -500000,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		err = svc.SaveOutCityExpense(ctx, "rpt-1", "user-1", &entity.OutCityExpense{
			CustomDailyAllowance: &neg,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
