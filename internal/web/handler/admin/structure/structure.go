// Package structure provides the administration of content types and their
// field instances: attaching field types, instance settings and view modes.
package structure

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/controller/contenttype"
	"github.com/fieldcms/fieldcms/internal/db/controller/fieldinstance"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/field"
	"github.com/fieldcms/fieldcms/internal/web/handler"
	"github.com/fieldcms/fieldcms/internal/web/navigation"
)

const (
	// SubPath is the path of the structure pages below the admin prefix.
	SubPath = "/structure"

	// TemplateTypes lists the content types.
	TemplateTypes = "admin/structure/types"
	// TemplateFields lists the fields of a content type.
	TemplateFields = "admin/structure/fields"
	// TemplateSettings wraps the settings form of a field type.
	TemplateSettings = "admin/structure/settings"
	// TemplateViewMode wraps the view mode form of a field type.
	TemplateViewMode = "admin/structure/view_mode"
)

// Service is the structure handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	instances *fieldinstance.Service
	path      string
}

// Handler is the exported instance.
var Handler = Service{}

// typeForm is the form to create a content type.
type typeForm struct {
	Slug        string `form:"slug"`
	Name        string `form:"name"`
	Description string `form:"description"`
	TitleLabel  string `form:"title_label"`
}

// attachForm is the form to attach a field type.
type attachForm struct {
	Slug        string `form:"slug"`
	Label       string `form:"label"`
	Description string `form:"description"`
	Handler     string `form:"handler"`
	Required    bool   `form:"required"`
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, contents *content.Service) {
	if app == nil || cfg == nil || db == nil || contents == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.instances = contents.Instances()
	s.path = cfg.Webserver.AdminPrefix + SubPath

	app.Get(s.path, s.Types)
	app.Post(s.path, s.CreateType)
	app.Get(s.path+"/types/:type/fields", s.Fields)
	app.Post(s.path+"/types/:type/fields", s.Attach)
	app.Get(s.path+"/fields/:id", s.Settings)
	app.Post(s.path+"/fields/:id", s.UpdateSettings)
	app.Post(s.path+"/fields/:id/delete", s.Detach)
	app.Get(s.path+"/fields/:id/view-modes/:mode", s.ViewMode)
	app.Post(s.path+"/fields/:id/view-modes/:mode", s.UpdateViewMode)
}

func (s *Service) typePath(ct *models.ContentType) string {
	return s.path + "/types/" + ct.Slug + "/fields"
}

func (s *Service) fieldPath(fi *models.FieldInstance) string {
	return s.path + "/fields/" + strconv.FormatUint(fi.ID, 10)
}

// Types lists the content types.
func (s *Service) Types(c *fiber.Ctx) error {
	return s.renderTypes(c, "")
}

func (s *Service) renderTypes(c *fiber.Ctx, formError string) error {
	nav := navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, "Content types", navigation.SectionStructure, "types").
		AddBreadcrumb("Structure", s.path, true)

	types, err := contenttype.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list content types")
		return fiber.ErrInternalServerError
	}

	return c.Render(TemplateTypes, fiber.Map{
		"Navigation": nav,
		"Types":      types,
		"Path":       s.path,
		"Error":      formError,
	}, handler.BaseLayout)
}

// CreateType creates a content type.
func (s *Service) CreateType(c *fiber.Ctx) error {
	in := new(typeForm)
	if err := c.BodyParser(in); err != nil {
		return fiber.ErrBadRequest
	}

	ct := &models.ContentType{
		Slug:        strings.TrimSpace(in.Slug),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		TitleLabel:  strings.TrimSpace(in.TitleLabel),
	}

	if err := contenttype.Create(s.db, ct); err != nil {
		switch {
		case errors.Is(err, contenttype.ErrSlugEmpty),
			errors.Is(err, contenttype.ErrNameEmpty),
			errors.Is(err, contenttype.ErrAlreadyExists):
			c.Status(fiber.StatusUnprocessableEntity)
			return s.renderTypes(c, err.Error())
		default:
			log.Error().Err(err).Msg("failed to create content type")
			return fiber.ErrInternalServerError
		}
	}

	log.Info().Str("type", ct.Slug).Msg("content type created")

	return c.Redirect(s.typePath(ct))
}

// Fields lists the field instances of a content type.
func (s *Service) Fields(c *fiber.Ctx) error {
	ct, err := s.contentType(c)
	if err != nil {
		return err
	}

	return s.renderFields(c, ct, nil, "")
}

func (s *Service) renderFields(c *fiber.Ctx, ct *models.ContentType, in *attachForm, formError string) error {
	nav := navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, ct.Name+" fields", navigation.SectionStructure, "fields").
		AddBreadcrumb("Structure", s.path, false).
		AddBreadcrumb(ct.Name, s.typePath(ct), true)

	if in == nil {
		in = &attachForm{}
	}

	return c.Render(TemplateFields, fiber.Map{
		"Navigation": nav,
		"Type":       ct,
		"FieldTypes": s.instances.Registry().List(),
		"ViewModes":  field.ViewModes,
		"Path":       s.path,
		"Form":       in,
		"Error":      formError,
	}, handler.BaseLayout)
}

// Attach adds a field type to a content type.
func (s *Service) Attach(c *fiber.Ctx) error {
	ct, err := s.contentType(c)
	if err != nil {
		return err
	}

	in := new(attachForm)
	if err = c.BodyParser(in); err != nil {
		return fiber.ErrBadRequest
	}

	fi := &models.FieldInstance{
		ContentTypeID: ct.ID,
		Slug:          strings.TrimSpace(in.Slug),
		Label:         strings.TrimSpace(in.Label),
		Description:   strings.TrimSpace(in.Description),
		Handler:       in.Handler,
		Required:      in.Required,
	}

	if fi.Label == "" {
		fi.Label = fi.Slug
	}

	if err = s.instances.Attach(fi); err != nil {
		var vErrs field.ValidationErrors

		switch {
		case errors.Is(err, fieldinstance.ErrSlugEmpty),
			errors.Is(err, fieldinstance.ErrSlugTaken),
			errors.Is(err, fieldinstance.ErrMaxInstances),
			errors.Is(err, field.ErrUnknownHandler),
			errors.As(err, &vErrs):
			c.Status(fiber.StatusUnprocessableEntity)
			return s.renderFields(c, ct, in, err.Error())
		default:
			log.Error().Err(err).Str("type", ct.Slug).Msg("failed to attach field")
			return fiber.ErrInternalServerError
		}
	}

	log.Info().Str("type", ct.Slug).Str("field", fi.Slug).Str("handler", fi.Handler).Msg("field attached")

	return c.Redirect(s.fieldPath(fi))
}

// Settings renders the settings form of a field instance.
func (s *Service) Settings(c *fiber.Ctx) error {
	fi, h, err := s.fieldInstance(c)
	if err != nil {
		return err
	}

	return s.renderSettings(c, fi, h, fi.Instance(), nil)
}

func (s *Service) renderSettings(c *fiber.Ctx, fi *models.FieldInstance, h field.Handler, instance field.Instance, errs field.ValidationErrors) error {
	ct, err := contenttype.Get(s.db, fi.ContentTypeID)
	if err != nil {
		log.Error().Err(err).Uint64("field", fi.ID).Msg("failed to load content type")
		return fiber.ErrInternalServerError
	}

	nav := navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, fi.Label+" settings", navigation.SectionStructure, "settings").
		AddBreadcrumb("Structure", s.path, false).
		AddBreadcrumb(ct.Name, s.typePath(ct), false).
		AddBreadcrumb(fi.Label, s.fieldPath(fi), true)

	el := h.SettingsForm(instance)
	el.Data["Errors"] = errs.Messages()

	form, err := renderElement(c, el)
	if err != nil {
		return err
	}

	return c.Render(TemplateSettings, fiber.Map{
		"Navigation": nav,
		"Instance":   fi,
		"Info":       h.Info(),
		"Form":       form,
		"Action":     s.fieldPath(fi),
		"ViewModes":  field.ViewModes,
		"Saved":      c.Query("saved") != "",
	}, handler.BaseLayout)
}

// UpdateSettings validates and stores the settings of a field instance.
func (s *Service) UpdateSettings(c *fiber.Ctx) error {
	fi, h, err := s.fieldInstance(c)
	if err != nil {
		return err
	}

	settings := field.InstanceSettings{}
	if err = c.BodyParser(&settings); err != nil {
		return fiber.ErrBadRequest
	}

	if _, err = s.instances.UpdateSettings(fi.ID, settings); err != nil {
		var vErrs field.ValidationErrors
		if !errors.As(err, &vErrs) {
			log.Error().Err(err).Uint64("field", fi.ID).Msg("failed to update field settings")
			return fiber.ErrInternalServerError
		}

		instance := fi.Instance()
		instance.Settings = settings

		c.Status(fiber.StatusUnprocessableEntity)

		return s.renderSettings(c, fi, h, instance, vErrs)
	}

	return c.Redirect(s.fieldPath(fi) + "?saved=1")
}

// Detach removes a field instance and its values.
func (s *Service) Detach(c *fiber.Ctx) error {
	fi, _, err := s.fieldInstance(c)
	if err != nil {
		return err
	}

	ct, err := contenttype.Get(s.db, fi.ContentTypeID)
	if err != nil {
		log.Error().Err(err).Uint64("field", fi.ID).Msg("failed to load content type")
		return fiber.ErrInternalServerError
	}

	if err = s.instances.Delete(fi.ID); err != nil {
		log.Error().Err(err).Uint64("field", fi.ID).Msg("failed to delete field")
		return fiber.ErrInternalServerError
	}

	log.Info().Str("type", ct.Slug).Str("field", fi.Slug).Msg("field detached")

	return c.Redirect(s.typePath(ct))
}

// ViewMode renders the view mode form of a field instance.
func (s *Service) ViewMode(c *fiber.Ctx) error {
	fi, h, err := s.fieldInstance(c)
	if err != nil {
		return err
	}

	mode := c.Params("mode")
	if !field.IsViewMode(mode) {
		return fiber.ErrNotFound
	}

	settings, err := s.instances.ViewMode(fi, mode)
	if err != nil {
		log.Error().Err(err).Uint64("field", fi.ID).Msg("failed to load view mode")
		return fiber.ErrInternalServerError
	}

	return s.renderViewMode(c, fi, h, mode, settings, nil)
}

func (s *Service) renderViewMode(
	c *fiber.Ctx,
	fi *models.FieldInstance,
	h field.Handler,
	mode string,
	settings field.ViewModeSettings,
	errs field.ValidationErrors,
) error {
	nav := navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, fi.Label+" view modes", navigation.SectionStructure, "view-modes").
		AddBreadcrumb("Structure", s.path, false).
		AddBreadcrumb(fi.Label, s.fieldPath(fi), false).
		AddBreadcrumb(mode, s.fieldPath(fi)+"/view-modes/"+mode, true)

	el := h.ViewModeForm(fi.Instance(), mode)
	el.Data["Settings"] = settings
	el.Data["Errors"] = errs.Messages()
	el.Data["LabelOptions"] = []string{field.LabelAbove, field.LabelInline, field.LabelHidden}

	form, err := renderElement(c, el)
	if err != nil {
		return err
	}

	return c.Render(TemplateViewMode, fiber.Map{
		"Navigation": nav,
		"Instance":   fi,
		"ViewMode":   mode,
		"ViewModes":  field.ViewModes,
		"FieldPath":  s.fieldPath(fi),
		"Form":       form,
		"Action":     s.fieldPath(fi) + "/view-modes/" + mode,
		"Saved":      c.Query("saved") != "",
	}, handler.BaseLayout)
}

// UpdateViewMode validates and stores the settings of one view mode.
func (s *Service) UpdateViewMode(c *fiber.Ctx) error {
	fi, h, err := s.fieldInstance(c)
	if err != nil {
		return err
	}

	mode := c.Params("mode")

	settings := field.ViewModeSettings{}
	if err = c.BodyParser(&settings); err != nil {
		return fiber.ErrBadRequest
	}

	if _, err = s.instances.UpdateViewMode(fi.ID, mode, settings); err != nil {
		var vErrs field.ValidationErrors

		switch {
		case errors.Is(err, fieldinstance.ErrUnknownViewMode):
			return fiber.ErrNotFound
		case errors.As(err, &vErrs):
			c.Status(fiber.StatusUnprocessableEntity)
			return s.renderViewMode(c, fi, h, mode, settings, vErrs)
		default:
			log.Error().Err(err).Uint64("field", fi.ID).Msg("failed to update view mode")
			return fiber.ErrInternalServerError
		}
	}

	return c.Redirect(s.fieldPath(fi) + "/view-modes/" + mode + "?saved=1")
}

func (s *Service) contentType(c *fiber.Ctx) (*models.ContentType, error) {
	ct, err := contenttype.GetBySlug(s.db, c.Params("type"))
	if err != nil {
		if errors.Is(err, contenttype.ErrNotFound) {
			return nil, fiber.ErrNotFound
		}

		log.Error().Err(err).Str("type", c.Params("type")).Msg("failed to load content type")

		return nil, fiber.ErrInternalServerError
	}

	return ct, nil
}

func (s *Service) fieldInstance(c *fiber.Ctx) (*models.FieldInstance, field.Handler, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, nil, fiber.ErrBadRequest
	}

	fi, err := s.instances.Get(id)
	if err != nil {
		if errors.Is(err, fieldinstance.ErrNotFound) {
			return nil, nil, fiber.ErrNotFound
		}

		log.Error().Err(err).Uint64("field", id).Msg("failed to load field")

		return nil, nil, fiber.ErrInternalServerError
	}

	h, err := s.instances.Handler(fi)
	if err != nil {
		log.Warn().Err(err).Uint64("field", id).Msg("field type is not registered")
		return nil, nil, fiber.ErrNotFound
	}

	return fi, h, nil
}
