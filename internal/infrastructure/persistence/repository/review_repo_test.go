package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

func setupMockReviewDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, port.ReviewRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewReviewRepository(db, zap.NewNop())
	return db, mock, repo
}

func TestCreateReview_Success(t *testing.T) {
	db, mock, repo := setupMockReviewDB(t)
	defer db.Close()

	review := &entity.Review{
		ID:           uuid.New().String(),
		ReportID:     "r-1",
		ReviewerType: entity.ReviewerCommitmentOfficer,
		ReviewerID:   "officer-1",
		Status:       entity.ReviewApproved,
		Notes:        "lengkap",
	}

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(review.ID, review.ReportID, review.ReviewerType,
			review.ReviewerID, review.Status, review.Notes).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), review)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_DuplicateMapsToSentinel(t *testing.T) {
	db, mock, repo := setupMockReviewDB(t)
	defer db.Close()

	review := &entity.Review{
		ID:           uuid.New().String(),
		ReportID:     "r-1",
		ReviewerType: entity.ReviewerSectionHead,
		ReviewerID:   "head-1",
		Status:       entity.ReviewApproved,
	}

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(review.ID, review.ReportID, review.ReviewerType,
			review.ReviewerID, review.Status, review.Notes).
		WillReturnError(sqlite3.Error{
			Code:         sqlite3.ErrConstraint,
			ExtendedCode: sqlite3.ErrConstraintUnique,
		})

	err := repo.Create(context.Background(), review)

	assert.ErrorIs(t, err, port.ErrDuplicateReview)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReviewsByReportID(t *testing.T) {
	db, mock, repo := setupMockReviewDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "report_id", "reviewer_type", "reviewer_id", "status", "notes", "created_at",
	}).
		AddRow("rv-1", "r-1", entity.ReviewerCommitmentOfficer, "officer-1",
			entity.ReviewApproved, "", now).
		AddRow("rv-2", "r-1", entity.ReviewerSectionHead, "head-1",
			entity.ReviewRejected, "bukti kurang", now.Add(time.Minute))

	mock.ExpectQuery(`FROM reviews`).WithArgs("r-1").WillReturnRows(rows)

	reviews, err := repo.GetByReportID(context.Background(), "r-1")

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, entity.ReviewApproved, reviews[0].Status)
	assert.Equal(t, "bukti kurang", reviews[1].Notes)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReviewByReportAndType_NotFound(t *testing.T) {
	db, mock, repo := setupMockReviewDB(t)
	defer db.Close()

	mock.ExpectQuery(`FROM reviews`).
		WithArgs("r-1", entity.ReviewerSectionHead).
		WillReturnError(sql.ErrNoRows)

	review, err := repo.GetByReportAndType(context.Background(), "r-1", entity.ReviewerSectionHead)

	require.NoError(t, err)
	assert.Nil(t, review)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewsByReportID(t *testing.T) {
	db, mock, repo := setupMockReviewDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reviews WHERE report_id = \?`).
		WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.DeleteByReportID(context.Background(), "r-1")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
