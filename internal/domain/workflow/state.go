package workflow

// State represents a report lifecycle state
type State string

const (
	StateDraft     State = "DRAFT"
	StateSubmitted State = "SUBMITTED"
	StateRejected  State = "REJECTED"
	StateApproved  State = "APPROVED"
)

var validStates = map[State]bool{
	StateDraft:     true,
	StateSubmitted: true,
	StateRejected:  true,
	StateApproved:  true,
}

// IsTerminal returns true if no further transitions are allowed from the
// state. Rejected is not terminal: a rejected report may be resubmitted.
func (s State) IsTerminal() bool {
	return s == StateApproved
}

// IsValid returns true if the state is a known lifecycle state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
