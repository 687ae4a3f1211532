package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type namedProbe struct {
	name   string
	prober Prober
}

// Service coordinates health checks.
type Service struct {
	probes []namedProbe
}

// New creates a Service with no checks. An empty service always reports Healthy.
func New() *Service {
	return &Service{}
}

// WithCheck registers a prober under name. Nil probers are ignored.
func (s *Service) WithCheck(name string, p Prober) *Service {
	if p != nil {
		s.probes = append(s.probes, namedProbe{name: name, prober: p})
	}
	return s
}

// Check runs every registered prober.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.probes))

	failed := 0
	for _, p := range s.probes {
		if err := p.prober.Probe(ctx); err != nil {
			checks[p.name] = CheckError
			failed++
		} else {
			checks[p.name] = CheckOK
		}
	}

	status := Healthy
	switch {
	case failed == 0:
	case failed == len(s.probes):
		status = Unhealthy
	default:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
