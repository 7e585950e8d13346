package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is anything whose connectivity can be probed.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// readyzTimeout bounds the combined dependency checks.
const readyzTimeout = 5 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	deps []healthDep
}

type healthDep struct {
	name    string
	checker HealthChecker
}

// NewHealthHandler creates a HealthHandler probing Postgres and Redis.
// Nil checkers are reported as "not configured" rather than failing.
func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		deps: []healthDep{
			{name: "postgres", checker: db},
			{name: "redis", checker: cache},
		},
	}
}

// HealthResponse is the body of both probe endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is the liveness probe: 200 whenever the process serves requests.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is the readiness probe: 200 only when every dependency answers.
// Failure details stay in logs; the body reports only per-dependency state.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	ready := true

	for _, dep := range h.deps {
		switch {
		case dep.checker == nil:
			checks[dep.name] = "not configured"
		case dep.checker.Ping(ctx) != nil:
			checks[dep.name] = "unavailable"
			ready = false
		default:
			checks[dep.name] = "ok"
		}
	}

	status := "ok"
	code := http.StatusOK
	if !ready {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{Status: status, Checks: checks})
}
