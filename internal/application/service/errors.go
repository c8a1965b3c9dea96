package service

import "errors"

// Submission refusal reasons. Callers distinguish these to route the user
// to the incomplete section or surface the right localized message.
var (
	ErrReportNotFound         = errors.New("report not found")
	ErrNotOwner               = errors.New("actor is not the report owner")
	ErrMissingExpense         = errors.New("report has no expense sub-report")
	ErrMissingNarrative       = errors.New("report has no narrative report")
	ErrNoChangeSinceRejection = errors.New("no changes since rejection")
)

// Content write refusal reasons
var (
	ErrInvalidTravelType = errors.New("unknown travel type")
	ErrInvalidDateRange  = errors.New("invalid travel date range")
	ErrWrongTravelType   = errors.New("sub-report does not match the report travel type")
	ErrNotEditable       = errors.New("report status does not accept content changes")
	ErrInvalidAmount     = errors.New("invalid expense amount")
)

// Review refusal reasons
var (
	ErrNotSubmitted        = errors.New("report is not in submitted status")
	ErrAlreadyReviewed     = errors.New("reviewer type has already reviewed this report")
	ErrUnauthorized        = errors.New("actor is not authorized for this reviewer type")
	ErrInvalidReviewerType = errors.New("unknown reviewer type")
	ErrInvalidDecision     = errors.New("unknown review decision")
)
