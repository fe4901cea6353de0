package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/response"
)

const pingTimeout = 2 * time.Second

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports process uptime and dependency status.
type HealthHandler struct {
	startTime time.Time
	checks    map[string]Pinger
	log       zerolog.Logger
}

// NewHealthHandler creates a HealthHandler. checks maps a dependency name to its probe.
func NewHealthHandler(checks map[string]Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		checks:    checks,
		log:       log.With().Str("component", "health_handler").Logger(),
	}
}

type healthStatus struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Goroutines   int               `json:"goroutines"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health godoc
// GET /health
// Responds 200 when every dependency answers, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status := healthStatus{
		Status:       "ok",
		Uptime:       time.Since(h.startTime).Truncate(time.Second).String(),
		Goroutines:   runtime.NumGoroutine(),
		Dependencies: make(map[string]string, len(h.checks)),
	}

	code := http.StatusOK
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			status.Dependencies[name] = "down"
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Dependencies[name] = "up"
	}

	response.Success(c, code, status)
}
