package health

import "fmt"

// Checker queries the health of a running relay.
type Checker interface {
	Check() Status
}

// Status is the result of a health-check.
type Status struct {
	IsHealthy bool
	Message   string
}

func (status Status) String() string {
	outcome := "failed"
	if status.IsHealthy {
		outcome = "passed"
	}

	return fmt.Sprintf("Health-check %s: %s", outcome, status.Message)
}
