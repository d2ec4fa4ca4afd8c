package login

import (
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/models"
	websess "github.com/fieldcms/fieldcms/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "error" field from the provided fiber.Map (if any)
// so tests can assert error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{Views: noOpViews{}})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")
	require.NoError(t, db.AutoMigrate(&models.User{}), "failed to migrate user model")

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		DevMode: false,
		Title:   "FieldCMS",
		Webserver: config.Webserver{
			URL:         "http://localhost",
			Port:        3000,
			AdminPrefix: "/admin",
			Session:     config.Session{ExpiryTime: time.Minute},
		},
	}
}

func createUser(t *testing.T, db *gorm.DB, username, password string, active bool) {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: models.HashPassword(password),
		Active:   active,
	}
	require.NoError(t, db.Create(user).Error)
}

// testStorage is a minimal in-memory implementation of fiber.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ fiber.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func initSessionStore() *testStorage {
	// Initialize a fresh in-memory session store for each test.
	st := &testStorage{data: make(map[string][]byte)}
	websess.Init(st)

	return st
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}

func setup(t *testing.T, cfg *config.Config) (*fiber.App, *gorm.DB, *testStorage) {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	st := initSessionStore()

	var s Service
	s.Init(app, cfg, db, nil)

	return app, db, st
}

func TestGet_RendersLogin(t *testing.T) {
	app, _, _ := setup(t, newTestConfig())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil), -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, body(t, resp))
}

func TestPost_Success_SetsCookieAndRedirects(t *testing.T) {
	cfg := newTestConfig()
	app, db, st := setup(t, cfg)

	createUser(t, db, "bob", "s3cr3t", true)

	resp := performPost(t, app, Path+"/", url.Values{
		"username": {"bob"},
		"password": {"s3cr3t"},
	})

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, cfg.Webserver.AdminPrefix, resp.Header.Get("Location"))

	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, websess.CookieName+"=")
	assert.Contains(t, strings.ToLower(setCookie), "secure", "Secure flag expected when DevMode=false")

	// the session holds the user
	require.Len(t, st.data, 1)

	for id := range st.data {
		data := new(websess.Data)
		require.NoError(t, data.Read(id))
		assert.Equal(t, "bob", data.User.Username)
	}
}

func TestPost_DevModeDisablesSecure(t *testing.T) {
	cfg := newTestConfig()
	cfg.DevMode = true
	app, db, _ := setup(t, cfg)

	createUser(t, db, "carol", "pass", true)

	resp := performPost(t, app, Path+"/", url.Values{
		"username": {"carol"},
		"password": {"pass"},
	})

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.NotContains(t, strings.ToLower(resp.Header.Get("Set-Cookie")), "secure")
}

func TestPost_RendersErrors(t *testing.T) {
	app, db, st := setup(t, newTestConfig())

	createUser(t, db, "alice", "secret", true)
	createUser(t, db, "eve", "secret", false)

	testCases := []struct {
		name     string
		form     url.Values
		expected error
	}{
		{"wrong password", url.Values{"username": {"alice"}, "password": {"wrong"}}, ErrInvalidCredentials},
		{"unknown user", url.Values{"username": {"mallory"}, "password": {"secret"}}, ErrInvalidCredentials},
		{"empty form", url.Values{}, ErrInvalidCredentials},
		{"inactive user", url.Values{"username": {"eve"}, "password": {"secret"}}, ErrUserInactive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := performPost(t, app, Path+"/", tc.form)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.expected.Error(), body(t, resp))
		})
	}

	assert.Empty(t, st.data, "no session is written for failed logins")
}

func TestPost_InvalidForm_RendersError(t *testing.T) {
	app, _, _ := setup(t, newTestConfig())

	// Malformed JSON to force BodyParser error
	req := httptest.NewRequest(http.MethodPost, Path+"/", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ErrInvalidFormData.Error(), body(t, resp))
}
