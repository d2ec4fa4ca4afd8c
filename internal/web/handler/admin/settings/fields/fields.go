// Package fields provides the form for the site wide date and time formats.
package fields

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/controller/fielddefaults"
	"github.com/fieldcms/fieldcms/internal/web/handler"
	"github.com/fieldcms/fieldcms/internal/web/navigation"
)

const (
	// SubPath is the path of the form below the admin prefix.
	SubPath = "/settings/fields"

	// TemplateName is the name of the field defaults template.
	TemplateName = "admin/settings/fields"
)

// Service is the field defaults handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	db   *gorm.DB
	path string
}

// Handler is the field defaults handler.
var Handler = Service{}

// Init initializes the field defaults handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *content.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.path = cfg.Webserver.AdminPrefix + SubPath

	app.Get(s.path, s.Get)
	app.Post(s.path, s.Post)
	app.Post(s.path+"/reset", s.Reset)
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewAdminContext(s.cfg.Webserver.AdminPrefix, "Date and time formats", navigation.SectionSettings, "fields").
		AddBreadcrumb("Settings", "#", false).
		AddBreadcrumb("Date and time formats", s.path, true)
}

// Get renders the stored defaults, or the configured ones if none were saved.
func (s *Service) Get(c *fiber.Ctx) error {
	defaults, err := fielddefaults.Resolve(s.db, s.cfg.Field)
	if err != nil {
		log.Error().Err(err).Msg("failed to load field defaults")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": s.nav(),
		"Settings":   defaults,
		"Config":     fielddefaults.FromConfig(s.cfg.Field),
		"Path":       s.path,
		"Saved":      c.Query("saved") != "",
	}, handler.BaseLayout)
}

// Post validates and stores the defaults.
func (s *Service) Post(c *fiber.Ctx) error {
	defaults := &fielddefaults.Defaults{}
	if err := c.BodyParser(defaults); err != nil {
		return fiber.ErrBadRequest
	}

	if errs := defaults.Validate(); len(errs) > 0 {
		log.Debug().Err(errs).Msg("validation failed for field defaults")

		return c.Status(fiber.StatusUnprocessableEntity).Render(TemplateName, fiber.Map{
			"Navigation": s.nav(),
			"Settings":   defaults,
			"Config":     fielddefaults.FromConfig(s.cfg.Field),
			"Path":       s.path,
			"Errors":     errs.Messages(),
		}, handler.BaseLayout)
	}

	if err := defaults.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save field defaults")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save settings")
	}

	log.Info().Str("date_format", defaults.DateFormat).Str("time_format", defaults.TimeFormat).Msg("field defaults saved")

	return c.Redirect(s.path + "?saved=1")
}

// Reset drops the stored defaults so the configured ones apply again.
func (s *Service) Reset(c *fiber.Ctx) error {
	if err := fielddefaults.Reset(s.db); err != nil {
		log.Error().Err(err).Msg("failed to reset field defaults")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to reset settings")
	}

	return c.Redirect(s.path + "?saved=1")
}
