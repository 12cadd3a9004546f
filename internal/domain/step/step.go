package step

// Criticality decides how the pipeline reacts when a step fails.
type Criticality string

const (
	// Fatal aborts the whole run on failure; later steps cannot proceed
	// without this one.
	Fatal Criticality = "fatal"
	// Recoverable records the failure and lets the run continue.
	Recoverable Criticality = "recoverable"
)

// String returns the string representation of the criticality.
func (c Criticality) String() string {
	return string(c)
}

// Step is a named provisioning unit: an existence probe, the action that
// establishes the probed condition, an optional post-action verification,
// and a criticality.
//
// The action must be safe to skip entirely when the probe reports
// satisfied, and safe to re-run after an interrupted partial run; that is
// what makes repeating the whole pipeline the recovery mechanism.
type Step struct {
	id          StepID
	title       string
	probe       Probe
	action      Action
	verify      Probe
	criticality Criticality
	remedy      string
}

// New creates a Step with Recoverable criticality and no verification.
func New(id StepID, title string, probe Probe, action Action) Step {
	return Step{
		id:          id,
		title:       title,
		probe:       probe,
		action:      action,
		criticality: Recoverable,
	}
}

// WithVerify returns a copy of the step with a post-action verification
// probe.
func (s Step) WithVerify(probe Probe) Step {
	s.verify = probe
	return s
}

// WithCriticality returns a copy of the step with the given criticality.
func (s Step) WithCriticality(c Criticality) Step {
	s.criticality = c
	return s
}

// WithRemedy returns a copy of the step with a manual remediation hint,
// shown when the step fails.
func (s Step) WithRemedy(hint string) Step {
	s.remedy = hint
	return s
}

// ID returns the step identifier.
func (s Step) ID() StepID {
	return s.id
}

// Title returns the human-readable step title.
func (s Step) Title() string {
	return s.title
}

// Probe returns the existence probe.
func (s Step) Probe() Probe {
	return s.probe
}

// Action returns the step's action.
func (s Step) Action() Action {
	return s.action
}

// Verify returns the verification probe, if any.
func (s Step) Verify() (Probe, bool) {
	return s.verify, s.verify != nil
}

// Criticality returns the step's criticality.
func (s Step) Criticality() Criticality {
	return s.criticality
}

// Remedy returns the manual remediation hint, if any.
func (s Step) Remedy() string {
	return s.remedy
}
