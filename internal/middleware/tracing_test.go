package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracedApp() (*fiber.App, *string) {
	var seen string
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error {
		seen = GetTraceID(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &seen
}

func TestTracing_AssignsFreshID(t *testing.T) {
	app, seen := setupTracedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	echoed := resp.Header.Get("X-Trace-Id")
	require.NotEmpty(t, echoed)
	_, err = uuid.Parse(echoed)
	assert.NoError(t, err)
	assert.Equal(t, echoed, *seen, "handler and response must see the same id")
}

func TestTracing_KeepsCallerSuppliedID(t *testing.T) {
	app, seen := setupTracedApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "proxy-assigned-id")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "proxy-assigned-id", resp.Header.Get("X-Trace-Id"))
	assert.Equal(t, "proxy-assigned-id", *seen)
}
