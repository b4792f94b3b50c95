package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped marks a check not run because a dependency failed.
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	// Icons is the catalog size, -1 when unknown.
	Icons int
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	icons IconCounter
}

// New creates a Service. icons can be nil.
func New(db DBPinger, icons IconCounter) *Service {
	return &Service{db: db, icons: icons}
}

// Check pings the store and, if it answers, counts the catalog.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Status: Healthy, Checks: make(map[string]CheckResult), Icons: -1}

	dbErr := s.db.Ping(ctx)
	if dbErr != nil {
		r.Checks["database"] = CheckError
	} else {
		r.Checks["database"] = CheckOK
	}

	if s.icons != nil {
		if dbErr != nil {
			r.Checks["catalog"] = CheckSkipped
		} else if n, err := s.icons.Count(ctx); err != nil {
			r.Checks["catalog"] = CheckError
		} else {
			r.Checks["catalog"] = CheckOK
			r.Icons = n
		}
	}

	for _, v := range r.Checks {
		if v == CheckError {
			r.Status = Degraded
			break
		}
	}
	return r
}
