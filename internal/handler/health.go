package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/employee-directory/internal/middleware"
	"github.com/deppfellow/employee-directory/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// Pinger is a dependency that can be pinged for reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// HealthCheck is the outcome of probing one dependency.
type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Database    string                 `json:"database"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// HealthHandler reports whether the service and its store are reachable.
// Only the database decides the overall status; redis is reported but
// never fails the check.
//
// Concurrent requests share one round of pings.
type HealthHandler struct {
	Handler
	db    Pinger
	redis Pinger
	group singleflight.Group
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	if s.DB != nil {
		h.db = s.DB
	}
	if s.Redis != nil {
		h.redis = redisPinger{client: s.Redis}
	}
	return h
}

func (h *HealthHandler) checkDependency(logger zerolog.Logger, name string, p Pinger) HealthCheck {
	ctx, cancel := context.WithTimeout(context.Background(), h.server.Config.Observability.HealthCheckTimeout())
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(name, elapsed, err)

		return HealthCheck{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	logger.Debug().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return HealthCheck{Status: StatusHealthy, ResponseTime: elapsed.String()}
}

func (h *HealthHandler) recordFailure(name string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       name,
		"operation":        "health_check",
		"error_type":       name + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}

func (h *HealthHandler) check(logger zerolog.Logger) HealthResponse {
	response := HealthResponse{
		Status:      StatusHealthy,
		Database:    DatabaseConnected,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]HealthCheck),
	}

	if h.db == nil {
		response.Checks["database"] = HealthCheck{Status: StatusUnhealthy, Error: "database not configured"}
	} else {
		response.Checks["database"] = h.checkDependency(logger, "database", h.db)
	}

	if response.Checks["database"].Status != StatusHealthy {
		response.Status = StatusUnhealthy
		response.Database = DatabaseDisconnected
	}

	if h.redis != nil && h.server.Config.Observability.HealthCheckEnabled("redis") {
		response.Checks["redis"] = h.checkDependency(logger, "redis", h.redis)
	}

	return response
}

// CheckHealth answers 200 when the database answers a ping and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	v, _, shared := h.group.Do("health", func() (any, error) {
		return h.check(logger), nil
	})
	response := v.(HealthResponse)

	if response.Status != StatusHealthy {
		logger.Warn().
			Bool("shared", shared).
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}
