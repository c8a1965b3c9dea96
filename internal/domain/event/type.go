package event

// Type identifies the type of lifecycle event
type Type string

const (
	TypeReportCreated     Type = "report.created"
	TypeReportSubmitted   Type = "report.submitted"
	TypeReportResubmitted Type = "report.resubmitted"
	TypeReviewRecorded    Type = "review.recorded"
	TypeReportApproved    Type = "report.approved"
	TypeReportRejected    Type = "report.rejected"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeReportCreated,
		TypeReportSubmitted,
		TypeReportResubmitted,
		TypeReviewRecorded,
		TypeReportApproved,
		TypeReportRejected:
		return true
	default:
		return false
	}
}
