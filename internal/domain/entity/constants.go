package entity

// Status constants for Report
const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusRejected  = "REJECTED"
	StatusApproved  = "APPROVED"
)

// Travel type constants for Report
const (
	TravelTypeInCity     = "IN_CITY"     // dalam kota
	TravelTypeOutCity    = "OUT_CITY"    // luar kota
	TravelTypeOutCountry = "OUT_COUNTRY" // luar negeri (computation stubbed)
)

// Reviewer type constants for Review
const (
	ReviewerCommitmentOfficer = "COMMITMENT_OFFICER" // pejabat pembuat komitmen
	ReviewerSectionHead       = "SECTION_HEAD"       // kepala seksi
)

// Review decision constants
const (
	ReviewApproved = "APPROVED"
	ReviewRejected = "REJECTED"
)

// ApprovalsRequired is the number of distinct approving reviewers needed
// before a report is considered approved.
const ApprovalsRequired = 2
