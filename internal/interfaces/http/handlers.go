package http

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adiwidodo/perjadin/internal/application/service"
	"github.com/adiwidodo/perjadin/internal/document"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
	"github.com/adiwidodo/perjadin/internal/domain/workflow"
	"github.com/adiwidodo/perjadin/internal/storage"
	"github.com/adiwidodo/perjadin/pkg/utils"
)

// FullboardLister lists the fullboard rate tiers, satisfied by the
// fullboard price repository
type FullboardLister interface {
	List(ctx context.Context) ([]*entity.FullboardPrice, error)
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	reportService service.ReportService
	reviewService service.ReviewService
	compiler      *document.Compiler
	writer        *document.StatementWriter
	fullboard     FullboardLister
	store         *storage.DocumentStore
	logger        Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	reportService service.ReportService,
	reviewService service.ReviewService,
	compiler *document.Compiler,
	writer *document.StatementWriter,
	fullboard FullboardLister,
	store *storage.DocumentStore,
	logger Logger,
) *Handlers {
	return &Handlers{
		reportService: reportService,
		reviewService: reviewService,
		compiler:      compiler,
		writer:        writer,
		fullboard:     fullboard,
		store:         store,
		logger:        logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateReportRequest is the body of POST /api/v1/reports
type CreateReportRequest struct {
	OwnerNIP       string `json:"owner_nip" binding:"required"`
	AssignmentID   string `json:"assignment_id" binding:"required"`
	TravelType     string `json:"travel_type" binding:"required"`
	ActualDuration int    `json:"actual_duration"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

// SaveExpenseRequest is the body of PUT /api/v1/reports/:id/expense. Exactly
// one of the two sub-report variants must be present.
type SaveExpenseRequest struct {
	ActorID string                 `json:"actor_id" binding:"required"`
	InCity  *entity.InCityExpense  `json:"in_city,omitempty"`
	OutCity *entity.OutCityExpense `json:"out_city,omitempty"`
}

// SaveNarrativeRequest is the body of PUT /api/v1/reports/:id/narrative
type SaveNarrativeRequest struct {
	ActorID   string                 `json:"actor_id" binding:"required"`
	Narrative entity.NarrativeReport `json:"narrative" binding:"required"`
}

// SubmitRequest is the body of POST /api/v1/reports/:id/submit
type SubmitRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

// ReviewRequest is the body of POST /api/v1/reports/:id/reviews
type ReviewRequest struct {
	ReviewerType string `json:"reviewer_type" binding:"required"`
	ActorID      string `json:"actor_id" binding:"required"`
	Decision     string `json:"decision" binding:"required"`
	Notes        string `json:"notes"`
}

// StatusResponse reports the report status after a lifecycle operation
type StatusResponse struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// CreateReport handles POST /api/v1/reports
func (h *Handlers) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}
	if err := utils.ValidateNIP(req.OwnerNIP); err != nil {
		h.badRequest(c, err.Error(), err)
		return
	}

	input := service.CreateReportInput{
		OwnerID:        req.OwnerNIP,
		AssignmentID:   req.AssignmentID,
		TravelType:     req.TravelType,
		ActualDuration: req.ActualDuration,
	}
	var err error
	if input.StartDate, err = parseDate(req.StartDate); err != nil {
		h.badRequest(c, "invalid start_date", err)
		return
	}
	if input.EndDate, err = parseDate(req.EndDate); err != nil {
		h.badRequest(c, "invalid end_date", err)
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: report})
}

// ListReports handles GET /api/v1/reports
func (h *Handlers) ListReports(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		h.badRequest(c, "owner_id is required", nil)
		return
	}

	limit, offset := pagination(c)
	reports, err := h.reportService.List(c.Request.Context(), ownerID, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: reports})
}

// GetReport handles GET /api/v1/reports/:id
func (h *Handlers) GetReport(c *gin.Context) {
	report, err := h.reportService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// SaveExpense handles PUT /api/v1/reports/:id/expense
func (h *Handlers) SaveExpense(c *gin.Context) {
	var req SaveExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	reportID := c.Param("id")
	ctx := c.Request.Context()

	var err error
	switch {
	case req.InCity != nil && req.OutCity == nil:
		err = h.reportService.SaveInCityExpense(ctx, reportID, req.ActorID, req.InCity)
	case req.OutCity != nil && req.InCity == nil:
		err = h.reportService.SaveOutCityExpense(ctx, reportID, req.ActorID, req.OutCity)
	default:
		h.badRequest(c, "exactly one of in_city or out_city must be set", nil)
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// SaveNarrative handles PUT /api/v1/reports/:id/narrative
func (h *Handlers) SaveNarrative(c *gin.Context) {
	var req SaveNarrativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	err := h.reportService.SaveNarrative(c.Request.Context(), c.Param("id"), req.ActorID, &req.Narrative)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// SubmitReport handles POST /api/v1/reports/:id/submit
func (h *Handlers) SubmitReport(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	reportID := c.Param("id")
	status, err := h.reportService.Submit(c.Request.Context(), reportID, req.ActorID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    StatusResponse{ReportID: reportID, Status: status},
	})
}

// ReviewReport handles POST /api/v1/reports/:id/reviews
func (h *Handlers) ReviewReport(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	reportID := c.Param("id")
	status, err := h.reviewService.Review(c.Request.Context(),
		reportID, req.ReviewerType, req.ActorID, req.Decision,
		utils.SanitizeString(req.Notes))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    StatusResponse{ReportID: reportID, Status: status},
	})
}

// ExpenseSummary handles GET /api/v1/reports/:id/expense-summary
func (h *Handlers) ExpenseSummary(c *gin.Context) {
	stmt, err := h.compiler.CompileStatement(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: stmt})
}

// ActivityReport handles GET /api/v1/reports/:id/activity-report
func (h *Handlers) ActivityReport(c *gin.Context) {
	report, err := h.compiler.CompileActivityReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// DownloadStatement handles GET /api/v1/reports/:id/statement. The compiled
// statement is rendered to an xlsx workbook and returned as an attachment.
func (h *Handlers) DownloadStatement(c *gin.Context) {
	reportID := c.Param("id")
	stmt, err := h.compiler.CompileStatement(c.Request.Context(), reportID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	outputPath, err := h.store.StatementPath(reportID)
	if err != nil {
		h.badRequest(c, "invalid report id", err)
		return
	}
	if err := h.writer.Write(stmt, outputPath); err != nil {
		h.logger.Error("Failed to write statement workbook", "report_id", reportID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "statement generation failed"})
		return
	}

	c.FileAttachment(outputPath, filepath.Base(outputPath))
}

// ListFullboardPrices handles GET /api/v1/fullboard-prices
func (h *Handlers) ListFullboardPrices(c *gin.Context) {
	prices, err := h.fullboard.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: prices})
}

func (h *Handlers) badRequest(c *gin.Context, msg string, err error) {
	if err != nil {
		h.logger.Error("Bad request", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// respondError maps service errors to HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, document.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidReviewerType),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidTravelType),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrWrongTravelType):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrMissingExpense),
		errors.Is(err, service.ErrMissingNarrative):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrNotSubmitted),
		errors.Is(err, service.ErrNotEditable),
		errors.Is(err, service.ErrNoChangeSinceRejection),
		errors.Is(err, workflow.ErrInvalidTransition):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(status, Response{Success: false, Error: "internal error"})
		return
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
