package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcms/fieldcms/internal/field"
)

func TestAdminContext(t *testing.T) {
	app := fiber.New()
	app.Use(AdminContext("/admin"))
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatBool(IsAdmin(c)))
	})

	testCases := map[string]string{
		"/admin":              "true",
		"/admin/content/1":    "true",
		"/administrator":      "false",
		"/content/hello-word": "false",
		"/":                   "false",
	}

	for path, expected := range testCases {
		t.Run(path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
			require.NoError(t, err)

			defer func() {
				_ = resp.Body.Close()
			}()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, expected, string(body))
		})
	}
}

func TestFieldPosts(t *testing.T) {
	var got map[string]field.Post

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		got = FieldPosts(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	form := url.Values{
		"title":                      {"Party"},
		"fields.event_date.date":     {"2024-01-15"},
		"fields.event_date.format":   {"Y-m-d"},
		"fields.publish.from.string": {"2024-01-01"},
		"fields.publish.from.format": {"Y-m-d"},
		"fields..broken":             {"x"},
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, map[string]field.Post{
		"event_date": {"date": "2024-01-15", "format": "Y-m-d"},
		"publish":    {"from.string": "2024-01-01", "from.format": "Y-m-d"},
	}, got)
}
