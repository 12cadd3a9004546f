package step

// Outcome classifies how a step concluded within a run.
type Outcome string

const (
	// OutcomeAlreadySatisfied indicates the probe reported the goal met;
	// the action was never invoked.
	OutcomeAlreadySatisfied Outcome = "already-satisfied"
	// OutcomeApplied indicates the action ran and succeeded.
	OutcomeApplied Outcome = "applied"
	// OutcomeSimulated indicates a dry run reported the commands without
	// executing them.
	OutcomeSimulated Outcome = "simulated"
	// OutcomeFailed indicates the action or its verification failed.
	OutcomeFailed Outcome = "failed"
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	return string(o)
}

// Success returns true unless the step failed.
func (o Outcome) Success() bool {
	return o != OutcomeFailed
}

// Changed returns true if the outcome implies the host was (or would be)
// modified.
func (o Outcome) Changed() bool {
	switch o {
	case OutcomeApplied, OutcomeSimulated:
		return true
	case OutcomeAlreadySatisfied, OutcomeFailed:
		return false
	}
	return false
}
