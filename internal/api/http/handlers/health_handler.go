package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/queueshq/queues-service/internal/observability"
	"github.com/queueshq/queues-service/internal/persistence"
)

// HealthHandler exposes liveness, readiness and metrics endpoints.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
	metrics  *observability.Metrics
	version  string
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics, version string) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis, metrics: metrics, version: version}
}

// Live handles GET /healthz.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": h.version})
}

// Ready handles GET /readyz. Redis is optional; only the database gates
// readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := fiber.StatusOK

	if err := h.postgres.Ping(c.UserContext()); err != nil {
		checks["postgres"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}
	if err := h.redis.Ping(c.UserContext()); err != nil {
		checks["redis"] = err.Error()
	}

	return c.Status(status).JSON(fiber.Map{"checks": checks})
}

// Metrics handles GET /metrics.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"requests": requests, "errors": errs})
}
