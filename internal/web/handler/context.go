package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminContext flags requests below the administration prefix, so content
// finds made for them see unpublished entities.
func AdminContext(prefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		c.Locals(LocalsAdmin, path == prefix || strings.HasPrefix(path, prefix+"/"))

		return c.Next()
	}
}

// IsAdmin reports whether the request belongs to the administration.
func IsAdmin(c *fiber.Ctx) bool {
	admin, _ := c.Locals(LocalsAdmin).(bool)
	return admin
}
