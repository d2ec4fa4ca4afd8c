package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldcms/fieldcms/internal/web/handler"
	"github.com/fieldcms/fieldcms/internal/web/handler/login"
	"github.com/fieldcms/fieldcms/internal/web/session"
)

// New returns the authentication middleware. It must run after
// handler.AdminContext; adminPrefix is where logged in users land.
func New(adminPrefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		originalURL := strings.ToLower(c.OriginalURL())
		if strings.HasPrefix(originalURL, "/static") {
			return c.Next()
		}

		sessData := new(session.Data)
		sessDataValid := sessData.Read(c.Cookies(session.CookieName)) == nil && sessData.User.ID > 0

		if sessDataValid {
			// Add the current user to locals for template access
			c.Locals(handler.LocalsCurrentUser, sessData.User)
		}

		switch {
		case handler.IsAdmin(c) && !sessDataValid:
			return c.Redirect(login.Path)
		case IsLoginPage(c) && sessDataValid:
			return c.Redirect(adminPrefix)
		}

		return c.Next()
	}
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, login.Path)
}

// CurrentUser returns the logged in user, if any.
func CurrentUser(c *fiber.Ctx) (session.User, bool) {
	u, ok := c.Locals(handler.LocalsCurrentUser).(session.User)
	return u, ok
}
