package workflow

// BuildReportStateMachine creates a state machine configured for the travel
// report lifecycle. A report leaves draft only by owner submission, leaves
// submitted only by reviewer consensus, and leaves rejected only by
// resubmission. Approved is terminal.
func BuildReportStateMachine(initial State) StateMachine {
	return NewBuilder().
		Permit(StateDraft, TriggerSubmit, StateSubmitted).
		Permit(StateSubmitted, TriggerApprove, StateApproved).
		Permit(StateSubmitted, TriggerReject, StateRejected).
		Permit(StateRejected, TriggerResubmit, StateSubmitted).
		Build(initial)
}
