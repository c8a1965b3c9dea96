package entity

import "time"

// Review records one reviewer decision on a report. At most one review may
// exist per (report, reviewer type) pair; the storage layer enforces this
// with a unique index so that concurrent duplicate submissions cannot both
// succeed.
type Review struct {
	ID           string    `json:"id"`
	ReportID     string    `json:"report_id"`
	ReviewerType string    `json:"reviewer_type"`
	ReviewerID   string    `json:"reviewer_id"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DeriveStatus computes the report status implied by a review set. It is a
// pure fold over the snapshot: any rejection wins, enough approvals mean
// approved, an empty set means the report was never submitted. The result
// does not depend on insertion order.
func DeriveStatus(reviews []*Review) string {
	if len(reviews) == 0 {
		return StatusDraft
	}
	approvals := 0
	for _, rv := range reviews {
		switch rv.Status {
		case ReviewRejected:
			return StatusRejected
		case ReviewApproved:
			approvals++
		}
	}
	if approvals >= ApprovalsRequired {
		return StatusApproved
	}
	return StatusSubmitted
}
