// Package public renders the published content for visitors.
package public

import (
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/controller/contenttype"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/field"
	"github.com/fieldcms/fieldcms/internal/web/handler"
	"github.com/fieldcms/fieldcms/internal/web/render"
)

const (
	// ContentPath is the path prefix of content pages.
	ContentPath = handler.RootPath + "content"

	// TemplateIndex lists the teasers of published content.
	TemplateIndex = "public/index"
	// TemplateContent shows one entity in the full view mode.
	TemplateContent = "public/content"
	// TemplateNotFound is shown for unknown or unpublished content.
	TemplateNotFound = "public/not_found"
)

// Service is the public handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	contents *content.Service
}

// Handler is the public handler.
var Handler = Service{}

// Teaser is an entity with its rendered fields.
type Teaser struct {
	Content models.Content
	Fields  []template.HTML
}

// Init initializes the public handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *gorm.DB, contents *content.Service) {
	if app == nil || cfg == nil || contents == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.contents = contents

	app.Get(handler.RootPath, s.Index)
	app.Get(ContentPath+"/:slug", s.Content)
}

// Index lists the teasers of published content, optionally of one type.
func (s *Service) Index(c *fiber.Ctx) error {
	typeSlug := c.Query("type", "")

	list, err := s.contents.List(typeSlug, content.FindOptions{Admin: handler.IsAdmin(c)})
	if err != nil {
		if errors.Is(err, contenttype.ErrNotFound) {
			return s.notFound(c)
		}

		log.Error().Err(err).Msg("failed to list content")

		return fiber.ErrInternalServerError
	}

	teasers := make([]Teaser, 0, len(list))

	for i := range list {
		fields, err := s.display(c, &list[i], field.ViewModeTeaser)
		if err != nil {
			return err
		}

		teasers = append(teasers, Teaser{Content: list[i], Fields: fields})
	}

	return c.Render(TemplateIndex, fiber.Map{
		"Title":   s.cfg.Title,
		"Teasers": teasers,
	}, handler.PublicLayout)
}

// Content shows one entity. Content outside its publishing window is not found.
func (s *Service) Content(c *fiber.Ctx) error {
	entity, err := s.contents.GetBySlug(c.Params("slug"), content.FindOptions{Admin: handler.IsAdmin(c)})
	if err != nil {
		if errors.Is(err, content.ErrContentNotFound) {
			return s.notFound(c)
		}

		log.Error().Err(err).Str("slug", c.Params("slug")).Msg("failed to load content")

		return fiber.ErrInternalServerError
	}

	fields, err := s.display(c, entity, field.ViewModeFull)
	if err != nil {
		return err
	}

	return c.Render(TemplateContent, fiber.Map{
		"Title":   s.cfg.Title,
		"Content": entity,
		"Fields":  fields,
	}, handler.PublicLayout)
}

func (s *Service) display(c *fiber.Ctx, entity *models.Content, viewMode string) ([]template.HTML, error) {
	elements, err := s.contents.Display(entity, viewMode)
	if err != nil {
		log.Error().Err(err).Str("slug", entity.Slug).Msg("failed to build display")
		return nil, fiber.ErrInternalServerError
	}

	fields, err := render.Elements(c.App().Config().Views, elements)
	if err != nil {
		log.Error().Err(err).Str("slug", entity.Slug).Msg("failed to render fields")
		return nil, fiber.ErrInternalServerError
	}

	return fields, nil
}

func (s *Service) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render(TemplateNotFound, fiber.Map{
		"Title": s.cfg.Title,
	}, handler.PublicLayout)
}
