package iconhub

import (
	"context"
	"time"
)

// Health checks the store and counts the catalog.
func (c *Client) Health(ctx context.Context) HealthStatus {
	defer c.obs.observe("health", time.Now(), nil)

	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
		Icons:  report.Icons,
	}
}
