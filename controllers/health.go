package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"frozo-api/logger"
	"frozo-api/responses"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	Checks  map[string]HealthCheck
	Timeout time.Duration
	Log     *logger.Logger
}

func NewHealthController(checks map[string]HealthCheck, log *logger.Logger) *HealthController {
	return &HealthController{Checks: checks, Timeout: 2 * time.Second, Log: log}
}

// Health reports "ok" when every dependency answers, otherwise 503 with the failing ones.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), hc.Timeout)
	defer cancel()

	names := make([]string, 0, len(hc.Checks))
	for name := range hc.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := hc.Checks[name](ctx); err != nil {
			healthy = false
			deps[name] = "down"
			hc.Log.Warn(hc.Log.WithField(ctx, "dependency", name), "health check failed", err)
			continue
		}
		deps[name] = "up"
	}

	if !healthy {
		responses.WriteFailureStatus(w, http.StatusServiceUnavailable, responses.Payload{"status": "degraded", "dependencies": deps})
		return
	}
	responses.WriteSuccess(w, responses.Payload{"status": "ok", "dependencies": deps})
}
