// Package handlertest holds the fixtures shared by the web handler tests.
package handlertest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/field"
	"github.com/fieldcms/fieldcms/internal/field/builtin"
	"github.com/fieldcms/fieldcms/internal/field/datefield"
	"github.com/fieldcms/fieldcms/internal/field/publishdate"
	"github.com/fieldcms/fieldcms/internal/web/handler"
)

// Now is the clock of the content service built by Setup: 2024-03-01 00:00:00 UTC.
var Now = time.Unix(1709251200, 0).UTC()

// Views is a fiber views engine that writes the template name and keeps the
// last binding of every template.
type Views struct {
	mu       sync.Mutex
	bindings map[string]any
}

// Load implements fiber.Views.
func (v *Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.bindings == nil {
		v.bindings = make(map[string]any)
	}

	v.bindings[name] = data

	_, err := fmt.Fprintf(w, "[%s]", name)

	return err
}

// Binding returns the last data rendered with a page template.
func (v *Views) Binding(t *testing.T, name string) fiber.Map {
	t.Helper()

	v.mu.Lock()
	defer v.mu.Unlock()

	m, ok := v.bindings[name].(fiber.Map)
	require.True(t, ok, "template %s was not rendered with a fiber.Map", name)

	return m
}

// Fixture is a database with an article type and an app to mount handlers on.
type Fixture struct {
	DB       *gorm.DB
	Config   *config.Config
	Contents *content.Service
	App      *fiber.App
	Views    *Views
	Article  *models.ContentType
	Event    *models.FieldInstance
	Publish  *models.FieldInstance
}

// Setup builds a Fixture. The article type holds a required "event_date"
// DateField and a "publish" PublishDateField.
func Setup(t *testing.T) *Fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	cfg := &config.Config{
		Title: "FieldCMS",
		Webserver: config.Webserver{
			URL:         "http://localhost",
			Port:        3000,
			AdminPrefix: "/admin",
		},
		Field: config.Field{DateFormat: "Y-m-d", TimeFormat: "H:i"},
	}

	contents := content.New(db, builtin.Registry(time.UTC),
		content.WithClock(func() time.Time { return Now }),
		content.WithFieldDefaults(cfg.Field),
	)

	article := &models.ContentType{Slug: "article", Name: "Article", TitleLabel: "Title"}
	require.NoError(t, db.Create(article).Error)

	event := &models.FieldInstance{
		ContentTypeID: article.ID, Slug: "event_date", Label: "Event date",
		Handler: datefield.Name, Required: true,
	}
	require.NoError(t, contents.Instances().Attach(event))

	publish := &models.FieldInstance{
		ContentTypeID: article.ID, Slug: "publish", Label: "Publish", Handler: publishdate.Name,
	}
	require.NoError(t, contents.Instances().Attach(publish))

	views := &Views{}
	app := fiber.New(fiber.Config{Views: views})
	app.Use(handler.AdminContext(cfg.Webserver.AdminPrefix))

	return &Fixture{
		DB: db, Config: cfg, Contents: contents, App: app, Views: views,
		Article: article, Event: event, Publish: publish,
	}
}

// Window returns the posted publish window.
func Window(from, to string) field.Post {
	return field.Post{
		"from.string": from, "from.format": "Y-m-d",
		"to.string": to, "to.format": "Y-m-d",
	}
}

// SaveArticle saves an article and returns it.
func (f *Fixture) SaveArticle(t *testing.T, title, eventDate string, window field.Post) *models.Content {
	t.Helper()

	c := &models.Content{ContentTypeID: f.Article.ID, Title: title}
	require.NoError(t, f.Contents.Save(c, map[string]field.Post{
		"event_date": {"date": eventDate, "format": "Y-m-d"},
		"publish":    window,
	}))

	return c
}

// Get performs a GET request.
func (f *Fixture) Get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()

	return f.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

// PostForm performs a form POST request.
func (f *Fixture) PostForm(t *testing.T, target string, form url.Values) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return f.do(t, req)
}

func (f *Fixture) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := f.App.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}
