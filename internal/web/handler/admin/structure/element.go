package structure

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fieldcms/fieldcms/internal/field"
	"github.com/fieldcms/fieldcms/internal/web/render"
)

func renderElement(c *fiber.Ctx, el field.Element) (template.HTML, error) {
	html, err := render.Element(c.App().Config().Views, el)
	if err != nil {
		log.Error().Err(err).Str("template", el.Template).Msg("failed to render field form")
		return "", fiber.ErrInternalServerError
	}

	return html, nil
}
