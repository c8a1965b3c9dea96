package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/domain/entity"
	"github.com/adiwidodo/perjadin/internal/domain/expense"
	"github.com/adiwidodo/perjadin/internal/domain/narrative"
	"github.com/adiwidodo/perjadin/internal/domain/terbilang"
)

// ErrReportNotFound is returned when the requested report does not exist
var ErrReportNotFound = errors.New("report not found")

// ReportLoader loads the report aggregate the compiler reads from
type ReportLoader interface {
	GetAggregate(ctx context.Context, id string) (*entity.Report, error)
}

// Compiler assembles statement and activity-report content from a report
// aggregate, the expense aggregator, the terbilang converter and the
// narrative normalizer.
type Compiler struct {
	reports    ReportLoader
	aggregator *expense.Aggregator
	logger     *zap.Logger
}

// NewCompiler creates a new document compiler
func NewCompiler(reports ReportLoader, aggregator *expense.Aggregator, logger *zap.Logger) *Compiler {
	return &Compiler{
		reports:    reports,
		aggregator: aggregator,
		logger:     logger,
	}
}

// CompileStatement builds the expense statement content for a report
func (c *Compiler) CompileStatement(ctx context.Context, reportID string) (*Statement, error) {
	report, err := c.load(ctx, reportID)
	if err != nil {
		return nil, err
	}

	items := c.aggregator.LineItems(report)
	total := c.aggregator.Total(report)
	actual := c.aggregator.ActualExpenseTotal(report)

	stmt := &Statement{
		ReportID:             report.ID,
		OwnerID:              report.OwnerID,
		AssignmentID:         report.AssignmentID,
		TravelType:           report.TravelType,
		DurationDays:         report.Duration(),
		Items:                items,
		Total:                total,
		TotalInWords:         terbilang.ToWords(total),
		ActualExpenseTotal:   actual,
		ActualExpenseInWords: terbilang.ToWords(actual),
		GeneratedAt:          time.Now(),
	}

	c.logger.Debug("Statement compiled",
		zap.String("report_id", reportID),
		zap.Int("item_count", len(items)),
		zap.Int64("total", total))
	return stmt, nil
}

// CompileActivityReport builds the activity report content. Every section
// goes through the narrative normalizer, so even blank sections render a
// placeholder instead of disappearing.
func (c *Compiler) CompileActivityReport(ctx context.Context, reportID string) (*ActivityReport, error) {
	report, err := c.load(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Narrative == nil {
		return nil, fmt.Errorf("report %s has no narrative report", reportID)
	}

	sections := make([]Section, 0, 7)
	for _, src := range report.Narrative.Sections() {
		sections = append(sections, Section{
			Heading: src.Heading,
			Blocks:  narrative.Normalize(src.Content),
		})
	}

	return &ActivityReport{
		ReportID:    report.ID,
		Title:       report.Narrative.Title,
		Sections:    sections,
		GeneratedAt: time.Now(),
	}, nil
}

func (c *Compiler) load(ctx context.Context, reportID string) (*entity.Report, error) {
	report, err := c.reports.GetAggregate(ctx, reportID)
	if err != nil {
		c.logger.Error("Failed to load report aggregate",
			zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("load report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	return report, nil
}
