package fiber_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/fieldcms/fieldcms/internal/logger/adapter/fiber"
	"github.com/fieldcms/fieldcms/internal/logger"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Admin  *bool  `json:"Admin"`
	Error  string `json:"error"`
}

func newApp(cfg adapter.Config) *fiber.App {
	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})
	app.Use(adapter.New(cfg))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("hello test")
	})
	app.Get("/admin", func(c *fiber.Ctx) error {
		c.Locals("Admin", true)
		return c.SendString("admin")
	})
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func request(t *testing.T, app *fiber.App, target string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name   string
		target string
		status int
	}{
		{name: "root", target: "/", status: fiber.StatusOK},
		{name: "double slash keeps raw path", target: "//test", status: fiber.StatusNotFound},
		{name: "query string", target: "/?test=123", status: fiber.StatusOK},
		{name: "nested double slash and query", target: "/no_path//?test=123", status: fiber.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			request(t, newApp(adapter.Config{Output: &buf}), tc.target)

			var line accessLine
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
			assert.Equal(t, tc.status, line.Status)
			assert.Equal(t, tc.target, line.URI)
			assert.Equal(t, fiber.MethodGet, line.Method)
			assert.Equal(t, "example.com", line.Host)
			assert.Equal(t, "0.0.0.0", line.IP)
		})
	}
}

func TestNew_NoWriters(t *testing.T) {
	app := newApp(adapter.Config{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))
}

func TestNew_Locals(t *testing.T) {
	var buf bytes.Buffer

	request(t, newApp(adapter.Config{Output: &buf, Locals: []string{"Admin"}}), "/admin")

	var line accessLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.NotNil(t, line.Admin)
	assert.True(t, *line.Admin)

	buf.Reset()
	request(t, newApp(adapter.Config{Output: &buf, Locals: []string{"Admin"}}), "/")

	var public accessLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &public))
	assert.Nil(t, public.Admin)
}

func TestNew_CheckAlive(t *testing.T) {
	var buf bytes.Buffer

	cfg := adapter.Config{
		Output:        &buf,
		CheckAliveURI: "/checkalive",
		Config:        logger.Log{DisableCheckAlive: true},
	}

	request(t, newApp(cfg), "/checkalive")
	assert.Empty(t, buf.String())

	request(t, newApp(cfg), "/")
	assert.NotEmpty(t, buf.String())
}

func TestNew_Next(t *testing.T) {
	var buf bytes.Buffer

	cfg := adapter.Config{
		Output: &buf,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/"
		},
	}

	request(t, newApp(cfg), "/")
	assert.Empty(t, buf.String())
}
