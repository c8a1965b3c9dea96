// Package document compiles finalized reports into the structured content
// of the two compliance documents: the expense statement and the activity
// report.
package document

import (
	"time"

	"github.com/adiwidodo/perjadin/internal/domain/expense"
	"github.com/adiwidodo/perjadin/internal/domain/narrative"
)

// Statement is the structured content of the expense statement document
type Statement struct {
	ReportID     string             `json:"report_id"`
	OwnerID      string             `json:"owner_id"`
	AssignmentID string             `json:"assignment_id"`
	TravelType   string             `json:"travel_type"`
	DurationDays int                `json:"duration_days"`
	Items        []expense.LineItem `json:"items"`
	Total        int64              `json:"total"`
	TotalInWords string             `json:"total_in_words"`

	// statement-of-actual-expenditure section
	ActualExpenseTotal   int64  `json:"actual_expense_total"`
	ActualExpenseInWords string `json:"actual_expense_in_words"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Section is one normalized activity-report section
type Section struct {
	Heading string            `json:"heading"`
	Blocks  []narrative.Block `json:"blocks"`
}

// ActivityReport is the structured content of the activity report document
type ActivityReport struct {
	ReportID    string    `json:"report_id"`
	Title       string    `json:"title"`
	Sections    []Section `json:"sections"`
	GeneratedAt time.Time `json:"generated_at"`
}
