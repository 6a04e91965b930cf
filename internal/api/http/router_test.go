package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/queueshq/queues-service/internal/api/http/handlers"
	"github.com/queueshq/queues-service/internal/auth"
	"github.com/queueshq/queues-service/internal/observability"
)

func newTestApp() *fiber.App {
	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(zap.NewNop(), metrics),
	})
	RegisterRoutes(app, RouteConfig{
		Auth:      auth.NewMiddleware(auth.NewTokenManager("test-secret", 60)),
		Health:    handlers.NewHealthHandler(nil, nil, metrics, "test"),
		Tickets:   &handlers.TicketsHandler{},
		Taxonomy:  &handlers.TaxonomyHandler{},
		Directory: &handlers.DirectoryHandler{},
		KB:        &handlers.KnowledgebaseHandler{},
	})
	return app
}

func TestHealthRoutes(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{"/health/live", "/health/metrics"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}

	// readiness degrades, it does not vanish
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthRoutesLiveUnderHealthPrefixOnly(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
	}
}

func TestTicketRoutesRequireAuth(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/admin/categories", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
