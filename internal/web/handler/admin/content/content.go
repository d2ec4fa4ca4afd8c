// Package content provides the content editor of the administration.
package content

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	contentsvc "github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/controller/contenttype"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/field"
	"github.com/fieldcms/fieldcms/internal/web/handler"
	"github.com/fieldcms/fieldcms/internal/web/navigation"
	"github.com/fieldcms/fieldcms/internal/web/render"
)

const (
	// SubPath is the path of the content editor below the admin prefix.
	SubPath = "/content"

	// TemplateList is the template for listing content.
	TemplateList = "admin/content/list"
	// TemplateForm is the template for creating/updating content.
	TemplateForm = "admin/content/form"
	// TemplateView is the template of the content preview.
	TemplateView = "admin/content/view"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25
)

// Service is the content editor handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	contents *contentsvc.Service
	path     string
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, contents *contentsvc.Service) {
	if app == nil || cfg == nil || db == nil || contents == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.contents = contents
	s.path = cfg.Webserver.AdminPrefix + SubPath

	app.Get(cfg.Webserver.AdminPrefix, s.List)
	app.Get(s.path, s.List)
	app.Get(s.path+"/new/:type", s.New)
	app.Post(s.path+"/new/:type", s.Create)
	app.Get(s.path+"/:id", s.View)
	app.Get(s.path+"/:id/edit", s.Edit)
	app.Post(s.path+"/:id/edit", s.Update)
	app.Post(s.path+"/:id/delete", s.Delete)
}

// Path returns the editor path of an entity.
func (s *Service) Path(c *models.Content) string {
	return s.path + "/" + strconv.FormatUint(c.ID, 10)
}

// List shows all content, unpublished included, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, "Content", navigation.SectionContent, "list").
		AddBreadcrumb("Content", s.path, true)

	typeSlug := c.Query("type", "")

	contents, err := s.contents.List(typeSlug, contentsvc.FindOptions{Admin: true})
	if err != nil {
		if errors.Is(err, contenttype.ErrNotFound) {
			return fiber.ErrNotFound
		}

		log.Error().Err(err).Msg("failed to list content")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to list content")
	}

	types, err := contenttype.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list content types")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to list content types")
	}

	totalPages := (len(contents) + DefaultPageSize - 1) / DefaultPageSize

	// clamped before multiplying, a huge page number would overflow
	page := min(max(c.QueryInt("page", 1), 1), max(totalPages, 1))
	start := (page - 1) * DefaultPageSize
	end := min(start+DefaultPageSize, len(contents))

	return c.Render(TemplateList, fiber.Map{
		"Navigation": nav,
		"Contents":   contents[start:end],
		"Types":      types,
		"Type":       typeSlug,
		"Page":       page,
		"TotalPages": totalPages,
		"Path":       s.path,
	}, handler.BaseLayout)
}

// New renders an empty form for a content type.
func (s *Service) New(c *fiber.Ctx) error {
	ct, err := contenttype.GetBySlug(s.db, c.Params("type"))
	if err != nil {
		return s.typeError(c, err)
	}

	return s.renderForm(c, &models.Content{ContentTypeID: ct.ID, ContentType: *ct}, nil, nil)
}

// Create saves new content.
func (s *Service) Create(c *fiber.Ctx) error {
	ct, err := contenttype.GetBySlug(s.db, c.Params("type"))
	if err != nil {
		return s.typeError(c, err)
	}

	entity := &models.Content{ContentTypeID: ct.ID, ContentType: *ct}

	return s.save(c, entity)
}

// View previews content in the full view mode, regardless of its publishing window.
func (s *Service) View(c *fiber.Ctx) error {
	entity, err := s.load(c)
	if err != nil {
		return err
	}

	elements, err := s.contents.Display(entity, field.ViewModeFull)
	if err != nil {
		log.Error().Err(err).Uint64("content", entity.ID).Msg("failed to build display")
		return fiber.ErrInternalServerError
	}

	fields, err := render.Elements(c.App().Config().Views, elements)
	if err != nil {
		log.Error().Err(err).Uint64("content", entity.ID).Msg("failed to render fields")
		return fiber.ErrInternalServerError
	}

	nav := navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, entity.Title, navigation.SectionContent, "view").
		AddBreadcrumb("Content", s.path, false).
		AddBreadcrumb(entity.Title, s.Path(entity), true)

	return c.Render(TemplateView, fiber.Map{
		"Navigation": nav,
		"Content":    entity,
		"Fields":     fields,
		"Path":       s.Path(entity),
	}, handler.BaseLayout)
}

// Edit renders the form of existing content.
func (s *Service) Edit(c *fiber.Ctx) error {
	entity, err := s.load(c)
	if err != nil {
		return err
	}

	return s.renderForm(c, entity, nil, nil)
}

// Update saves existing content.
func (s *Service) Update(c *fiber.Ctx) error {
	entity, err := s.load(c)
	if err != nil {
		return err
	}

	return s.save(c, entity)
}

// Delete removes content.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	if err = s.contents.Delete(id); err != nil {
		if errors.Is(err, contentsvc.ErrContentNotFound) {
			return fiber.ErrNotFound
		}

		log.Error().Err(err).Uint64("content", id).Msg("failed to delete content")

		return fiber.ErrInternalServerError
	}

	return c.Redirect(s.path)
}

func (s *Service) save(c *fiber.Ctx, entity *models.Content) error {
	entity.Title = c.FormValue(contentsvc.KeyTitle)
	entity.Slug = c.FormValue(contentsvc.KeySlug)

	posts := handler.FieldPosts(c)

	err := s.contents.Save(entity, posts)
	if err == nil {
		log.Info().Uint64("content", entity.ID).Str("slug", entity.Slug).Msg("content saved")
		return c.Redirect(s.Path(entity) + "/edit?saved=1")
	}

	messages := contentsvc.Messages(err)
	if messages == nil {
		log.Error().Err(err).Str("slug", entity.Slug).Msg("failed to save content")
		return fiber.ErrInternalServerError
	}

	c.Status(fiber.StatusUnprocessableEntity)

	return s.renderForm(c, entity, posts, messages)
}

func (s *Service) renderForm(c *fiber.Ctx, entity *models.Content, posts map[string]field.Post, messages map[string][]string) error {
	elements, err := s.contents.Edit(entity, posts, messages)
	if err != nil {
		log.Error().Err(err).Msg("failed to build form")
		return fiber.ErrInternalServerError
	}

	fields, err := render.Elements(c.App().Config().Views, elements)
	if err != nil {
		log.Error().Err(err).Msg("failed to render form fields")
		return fiber.ErrInternalServerError
	}

	title, action := "New "+entity.ContentType.Name, s.path+"/new/"+entity.ContentType.Slug
	if entity.ID != 0 {
		title, action = "Edit "+entity.Title, s.Path(entity)+"/edit"
	}

	nav := navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, title, navigation.SectionContent, "form").
		AddBreadcrumb("Content", s.path, false).
		AddBreadcrumb(title, action, true)

	return c.Render(TemplateForm, fiber.Map{
		"Navigation": nav,
		"Content":    entity,
		"Fields":     fields,
		"Errors":     messages,
		"Action":     action,
		"Saved":      c.Query("saved") != "",
	}, handler.BaseLayout)
}

// load finds the entity of the :id parameter for the administration.
func (s *Service) load(c *fiber.Ctx) (*models.Content, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, fiber.ErrBadRequest
	}

	entity, err := s.contents.Get(id, contentsvc.FindOptions{Admin: handler.IsAdmin(c)})
	if err != nil {
		if errors.Is(err, contentsvc.ErrContentNotFound) {
			return nil, fiber.ErrNotFound
		}

		log.Error().Err(err).Uint64("content", id).Msg("failed to load content")

		return nil, fiber.ErrInternalServerError
	}

	return entity, nil
}

func (s *Service) typeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, contenttype.ErrNotFound) || errors.Is(err, contenttype.ErrSlugEmpty) {
		return fiber.ErrNotFound
	}

	log.Error().Err(err).Str("type", c.Params("type")).Msg("failed to load content type")

	return fiber.ErrInternalServerError
}
