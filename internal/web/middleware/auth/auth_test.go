package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcms/fieldcms/internal/web/handler"
	"github.com/fieldcms/fieldcms/internal/web/handler/login"
	"github.com/fieldcms/fieldcms/internal/web/session"
)

func newTestApp() *fiber.App {
	session.Init(nil)

	app := fiber.New()
	app.Use(handler.AdminContext("/admin"))
	app.Use(New("/admin"))
	app.Get("/*", func(c *fiber.Ctx) error {
		if u, ok := CurrentUser(c); ok {
			return c.SendString(u.Username)
		}

		return c.SendString("anonymous")
	})

	return app
}

func request(t *testing.T, app *fiber.App, path, sessionID string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

func TestMiddleware_Anonymous(t *testing.T) {
	app := newTestApp()

	resp := request(t, app, "/admin/content", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get("Location"))

	resp = request(t, app, "/admin", "unknown-session")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	assert.Equal(t, http.StatusOK, request(t, app, "/content/party", "").StatusCode)
	assert.Equal(t, http.StatusOK, request(t, app, login.Path, "").StatusCode)
	assert.Equal(t, http.StatusOK, request(t, app, "/static/css/fieldcms.css", "").StatusCode)
}

func TestMiddleware_LoggedIn(t *testing.T) {
	app := newTestApp()

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{User: session.User{ID: 1, Username: "admin"}}).Write(id, time.Minute))

	resp := request(t, app, "/admin/content", id)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, login.Path, id)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}
