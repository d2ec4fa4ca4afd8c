package handler

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldcms/fieldcms/internal/field"
)

// field inputs are named fields.<slug>.<key>, e.g. fields.publish.from.string
var fieldKeyRegex = regexp.MustCompile(`^fields\.([A-Za-z0-9_-]+)\.(.+)$`)

// FieldPosts groups the posted field inputs by field slug.
func FieldPosts(c *fiber.Ctx) map[string]field.Post {
	posts := make(map[string]field.Post)

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		matches := fieldKeyRegex.FindStringSubmatch(string(key))
		if len(matches) != 3 {
			return
		}

		post, ok := posts[matches[1]]
		if !ok {
			post = field.Post{}
			posts[matches[1]] = post
		}

		post[matches[2]] = string(value)
	})

	return posts
}
