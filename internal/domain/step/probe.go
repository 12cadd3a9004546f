package step

import "context"

// Probe answers whether a step's goal is already met.
//
// Probes must be side-effect free: they may inspect the host (look up a
// binary, query a service, list containers, read a config file) but never
// mutate it. A probe whose own check cannot run returns an error; the
// pipeline treats that as not satisfied rather than as a step failure,
// because "the checked tool is entirely absent" is the expected
// not-satisfied case, not an exceptional one.
type Probe interface {
	IsSatisfied(ctx context.Context) (bool, error)

	// Describe names the condition the probe checks, for plan output.
	Describe() string
}
